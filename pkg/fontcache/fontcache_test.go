package fontcache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defactra/fontprep/pkg/sysexec"
)

const sampleListing = `/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf: Noto Sans:style=Regular
/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf: DejaVu Sans:style=Book
/usr/share/fonts/truetype/noto/NotoSansMalayalam-Regular.ttf: Noto Sans Malayalam:style=Regular
/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf: Liberation Sans:style=Regular
/usr/share/fonts/truetype/noto/NotoSansDevanagari-Regular.ttf: Noto Sans Devanagari:style=Regular
/usr/share/fonts/opentype/urw-base35/NimbusRoman-Regular.otf: Nimbus Roman:style=Regular`

func TestRebuild(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "/usr/share/fonts: caching, new cache contents\nfc-cache: succeeded\n", nil
		},
	}
	cache := NewWithExecutor(exec)

	output, err := cache.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Contains(t, output, "succeeded")

	require.Len(t, exec.Calls, 1)
	assert.Equal(t, []string{"fc-cache", "-f", "-v"}, exec.Calls[0])
}

func TestRebuild_WithSudo(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "fc-cache: succeeded\n", nil
		},
	}
	cache := NewWithExecutor(exec).WithSudo(true)

	assert.Equal(t, []string{"sudo", "fc-cache", "-f", "-v"}, cache.RebuildCommand())

	_, err := cache.Rebuild(context.Background())
	require.NoError(t, err)

	require.Len(t, exec.Calls, 1)
	assert.Equal(t, []string{"sudo", "fc-cache", "-f", "-v"}, exec.Calls[0])
}

func TestRebuild_Failure(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "fc-cache: \"/bogus\": skipping, no such directory\n", errors.New("exit status 1")
		},
	}
	cache := NewWithExecutor(exec)

	_, err := cache.Rebuild(context.Background())
	assert.ErrorContains(t, err, "no such directory")
}

func TestList_DefaultFilters(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return sampleListing, nil
		},
	}
	cache := NewWithExecutor(exec)

	lines, err := cache.List(context.Background(), nil, 0)
	require.NoError(t, err)

	// Nimbus and DejaVu do not match any default filter
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NotoSans-Regular")
	assert.Contains(t, lines[1], "Malayalam")
	assert.Contains(t, lines[2], "Liberation")
	assert.Contains(t, lines[3], "Devanagari")
}

func TestList_Truncation(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return sampleListing, nil
		},
	}
	cache := NewWithExecutor(exec)

	lines, err := cache.List(context.Background(), []string{"regular"}, 2)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestFilterLines_CaseInsensitive(t *testing.T) {
	lines := FilterLines("FOO Malayalam bar\nplain line\nNOTO something", []string{"malayalam", "noto"}, 10)
	assert.Equal(t, []string{"FOO Malayalam bar", "NOTO something"}, lines)
}

func TestMatch(t *testing.T) {
	exec := &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "NotoSansMalayalam-Regular.ttf: \"Noto Sans Malayalam\" \"Regular\"\n", nil
		},
	}
	cache := NewWithExecutor(exec)

	family, err := cache.Match(context.Background(), ":lang=ml")
	require.NoError(t, err)
	assert.Contains(t, family, "Noto Sans Malayalam")

	require.Len(t, exec.Calls, 1)
	assert.Equal(t, []string{"fc-match", ":lang=ml"}, exec.Calls[0])
}

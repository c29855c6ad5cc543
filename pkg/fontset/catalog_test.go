package fontset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	catalog, err := LoadBuiltin()
	require.NoError(t, err)

	assert.Equal(t, []string{"noto-core", "malayalam", "devanagari", "fallback"}, catalog.Names())

	for _, set := range catalog.Sets {
		assert.True(t, set.Default, "built-in set %s should be default", set.Name)
		assert.NotEmpty(t, set.PackagesFor("apt"), "set %s has no apt packages", set.Name)
	}
}

func TestLoadBuiltin_MalayalamSet(t *testing.T) {
	catalog, err := LoadBuiltin()
	require.NoError(t, err)

	set := catalog.Get("malayalam")
	require.NotNil(t, set)

	assert.Equal(t, CategoryMalayalam, set.Category)
	assert.Contains(t, set.PackagesFor("apt"), "fonts-smc-meera")
	assert.Contains(t, set.Probes, "NotoSansMalayalam-Regular.ttf")
}

func TestLoad_MissingOverlayIsIgnored(t *testing.T) {
	catalog, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Len(t, catalog.Sets, 4)
}

func TestLoad_OverlayReplacesAndAdds(t *testing.T) {
	overlay := `
sets:
  - name: malayalam
    display_name: Custom Malayalam
    category: Malayalam
    default: false
    packages:
      apt: [fonts-smc]
  - name: tamil
    display_name: Tamil Script
    category: General Unicode
    default: true
    packages:
      apt: [fonts-taml]
`
	path := filepath.Join(t.TempDir(), "fontsets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	catalog, err := Load(path)
	require.NoError(t, err)

	// Replaced set keeps its position, new set appends
	assert.Equal(t, []string{"noto-core", "malayalam", "devanagari", "fallback", "tamil"}, catalog.Names())

	set := catalog.Get("malayalam")
	require.NotNil(t, set)
	assert.Equal(t, "Custom Malayalam", set.DisplayName)
	assert.Equal(t, []string{"fonts-smc"}, set.PackagesFor("apt"))
	assert.False(t, set.Default)

	// Category index no longer holds the old definition
	mlSets := catalog.ByCategory[CategoryMalayalam]
	require.Len(t, mlSets, 1)
	assert.Equal(t, "Custom Malayalam", mlSets[0].DisplayName)
}

func TestLoad_OverlayWithoutPackagesRejected(t *testing.T) {
	overlay := `
sets:
  - name: broken
    display_name: Broken
`
	path := filepath.Join(t.TempDir(), "fontsets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "lists no packages")
}

func TestSelect(t *testing.T) {
	catalog, err := LoadBuiltin()
	require.NoError(t, err)

	tests := []struct {
		name      string
		request   []string
		want      []string
		wantError bool
	}{
		{
			name:    "empty request selects defaults",
			request: nil,
			want:    []string{"noto-core", "malayalam", "devanagari", "fallback"},
		},
		{
			name:    "subset preserves catalog order",
			request: []string{"fallback", "malayalam"},
			want:    []string{"malayalam", "fallback"},
		},
		{
			name:      "unknown set",
			request:   []string{"klingon"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, err := catalog.Select(tt.request)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			names := make([]string, len(sets))
			for i, set := range sets {
				names[i] = set.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCategories_Order(t *testing.T) {
	catalog, err := LoadBuiltin()
	require.NoError(t, err)

	assert.Equal(t, []Category{CategoryGeneral, CategoryMalayalam, CategoryDevanagari, CategoryFallback}, catalog.Categories())
}

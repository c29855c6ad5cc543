package provision

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/defactra/fontprep/pkg/fontcache"
	"github.com/defactra/fontprep/pkg/fontprobe"
	"github.com/defactra/fontprep/pkg/fontset"
	"github.com/defactra/fontprep/pkg/pkgmgr"
	"github.com/defactra/fontprep/pkg/sysexec"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testSets() []fontset.FontSet {
	return []fontset.FontSet{
		{
			Name:     "malayalam",
			Packages: map[string][]string{"apt": {"fonts-smc-meera"}},
			Probes:   []string{"NotoSansMalayalam-Regular.ttf"},
		},
		{
			Name:     "fallback",
			Packages: map[string][]string{"apt": {"fonts-liberation"}},
			Probes:   []string{"LiberationSans-Regular.ttf"},
		},
	}
}

// happyExecutor answers every command a full run issues.
func happyExecutor() *sysexec.MockExecutor {
	return &sysexec.MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			switch name {
			case "fc-list":
				return "/usr/share/fonts/truetype/noto/NotoSansMalayalam-Regular.ttf: Noto Sans Malayalam:style=Regular\n" +
					"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf: Liberation Sans:style=Regular\n", nil
			case "fc-match":
				return "NotoSansMalayalam-Regular.ttf: \"Noto Sans Malayalam\" \"Regular\"", nil
			}
			return "", nil
		},
		FileExistsFunc: func(path string) bool {
			return strings.HasPrefix(path, "/usr/share/fonts/truetype/")
		},
	}
}

func newTestProvisioner(exec *sysexec.MockExecutor) *Provisioner {
	return New(
		pkgmgr.NewAptGet(exec, false),
		fontcache.NewWithExecutor(exec),
		fontprobe.NewWithExecutor(exec),
		zap.NewNop(),
	)
}

func stepNames(result *Result) []string {
	names := make([]string, len(result.Steps))
	for i, step := range result.Steps {
		names[i] = step.Name
	}
	return names
}

func TestRun_FullSequence(t *testing.T) {
	exec := happyExecutor()
	p := newTestProvisioner(exec)
	tracker := NewProgressTracker()

	result, err := p.Run(context.Background(), &Options{Sets: testSets()}, tracker.Callback())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"update index", "install malayalam", "install fallback", "rebuild font cache", "verify"},
		stepNames(result))
	assert.True(t, result.Success())
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "apt", result.Manager)
	assert.Len(t, result.Listing, 2)
	assert.Contains(t, result.Matches["Malayalam"], "Noto Sans Malayalam")
	assert.True(t, fontprobe.Satisfied(result.Probes))

	// apt-get update ran before any install
	require.NotEmpty(t, exec.Calls)
	assert.Equal(t, []string{"apt-get", "update"}, exec.Calls[0])

	// Final event reports completion
	events := tracker.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, StageComplete, events[len(events)-1].Stage)
	assert.Equal(t, 100, events[len(events)-1].Percent)
	assert.False(t, tracker.HasErrors())
}

func TestRun_DryRunExecutesNothing(t *testing.T) {
	exec := happyExecutor()
	p := newTestProvisioner(exec)

	result, err := p.Run(context.Background(), &Options{Sets: testSets(), DryRun: true}, nil)
	require.NoError(t, err)

	assert.Empty(t, exec.Calls)
	for _, step := range result.Steps {
		assert.True(t, step.Skipped, "step %s should be skipped in dry run", step.Name)
	}
	assert.Equal(t, "env DEBIAN_FRONTEND=noninteractive apt-get install -y -q fonts-smc-meera", result.Steps[1].Command)
	assert.True(t, result.Success())
}

func TestRun_ContinuesAfterInstallFailure(t *testing.T) {
	exec := happyExecutor()
	exec.RunFunc = func(name string, args ...string) (string, error) {
		if name == "env" && strings.Contains(strings.Join(args, " "), "fonts-smc-meera") {
			return "E: Unable to locate package fonts-smc-meera", errors.New("exit status 100")
		}
		return happyExecutor().RunFunc(name, args...)
	}
	p := newTestProvisioner(exec)
	tracker := NewProgressTracker()

	result, err := p.Run(context.Background(), &Options{Sets: testSets()}, tracker.Callback())
	require.NoError(t, err)

	// The failed install is recorded and later steps still ran
	assert.False(t, result.Success())
	require.Len(t, result.Failures(), 1)
	assert.Equal(t, "install malayalam", result.Failures()[0].Name)
	assert.Equal(t, "verify", result.Steps[len(result.Steps)-1].Name)
	assert.True(t, tracker.HasErrors())
}

func TestRun_StrictStopsAtFirstFailure(t *testing.T) {
	exec := happyExecutor()
	exec.RunFunc = func(name string, args ...string) (string, error) {
		if name == "apt-get" {
			return "", errors.New("exit status 100")
		}
		return "", nil
	}
	p := newTestProvisioner(exec)

	result, err := p.Run(context.Background(), &Options{Sets: testSets(), Strict: true}, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "update index")

	// Only the failed step was recorded
	require.Len(t, result.Steps, 1)
}

func TestRun_SkipUpdate(t *testing.T) {
	exec := happyExecutor()
	p := newTestProvisioner(exec)

	result, err := p.Run(context.Background(), &Options{Sets: testSets(), SkipUpdate: true}, nil)
	require.NoError(t, err)

	assert.True(t, result.Steps[0].Skipped)
	for _, call := range exec.Calls {
		assert.NotEqual(t, []string{"apt-get", "update"}, call)
	}
}

func TestRun_SetWithoutPackagesForManagerIsSkipped(t *testing.T) {
	sets := testSets()
	sets[0].Packages = map[string][]string{"pacman": {"noto-fonts"}}

	exec := happyExecutor()
	p := newTestProvisioner(exec)

	result, err := p.Run(context.Background(), &Options{Sets: sets}, nil)
	require.NoError(t, err)

	assert.True(t, result.Steps[1].Skipped)
	assert.Equal(t, "install malayalam", result.Steps[1].Name)
}

func TestRun_ExtraPackagesAppended(t *testing.T) {
	exec := happyExecutor()
	p := newTestProvisioner(exec)

	opts := &Options{
		Sets:          testSets(),
		ExtraPackages: map[string][]string{"malayalam": {"fonts-smc-rachana"}},
		DryRun:        true,
	}
	result, err := p.Run(context.Background(), opts, nil)
	require.NoError(t, err)

	assert.Contains(t, result.Steps[1].Command, "fonts-smc-meera fonts-smc-rachana")
}

func TestRun_NoSets(t *testing.T) {
	p := newTestProvisioner(happyExecutor())
	_, err := p.Run(context.Background(), &Options{}, nil)
	assert.ErrorContains(t, err, "no font sets")
}

func TestRun_VerifyFailsWhenProbesMissing(t *testing.T) {
	exec := happyExecutor()
	exec.FileExistsFunc = func(path string) bool { return false }
	p := newTestProvisioner(exec)

	result, err := p.Run(context.Background(), &Options{Sets: testSets()}, nil)
	require.NoError(t, err)

	assert.False(t, result.Success())
	last := result.Steps[len(result.Steps)-1]
	assert.Equal(t, "verify", last.Name)
	assert.ErrorContains(t, last.Err, "font files missing")
}

package globalconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Version, cfg.Version)
	assert.Empty(t, cfg.PackageManager)
	assert.Equal(t, []string{"noto", "malayalam", "devanagari", "liberation"}, cfg.Verify.Filters)
	assert.Equal(t, 10, cfg.Verify.Limit)
	assert.Len(t, cfg.NextSteps, 2)
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package_manager: dnf\n"), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "dnf", cfg.PackageManager)
	assert.Equal(t, 10, cfg.Verify.Limit)
	assert.NotEmpty(t, cfg.Verify.Filters)
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := NewConfig()
	cfg.PackageManager = "apt"
	cfg.ExtraPackages = map[string][]string{"malayalam": {"fonts-smc-rachana"}}
	cfg.Verify.Limit = 20

	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "apt", loaded.PackageManager)
	assert.Equal(t, []string{"fonts-smc-rachana"}, loaded.ExtraPackages["malayalam"])
	assert.Equal(t, 20, loaded.Verify.Limit)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- bad"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	assert.Empty(t, cfg.Validate())

	cfg.PackageManager = "brew"
	cfg.Verify.Limit = 5000
	cfg.ExtraFontDirs = []string{filepath.Join(t.TempDir(), "missing")}

	issues := cfg.Validate()
	require.Len(t, issues, 3)

	fields := make([]string, len(issues))
	for i, issue := range issues {
		fields[i] = issue.Field
	}
	assert.Contains(t, fields, "package_manager")
	assert.Contains(t, fields, "verify.limit")
	assert.Contains(t, fields, "extra_font_dirs")
}

func TestManagerOverride(t *testing.T) {
	cfg := NewConfig()
	assert.Empty(t, cfg.ManagerOverride())

	cfg.PackageManager = "pacman"
	assert.Equal(t, "pacman", cfg.ManagerOverride())

	cfg.PackageManager = "brew"
	assert.Empty(t, cfg.ManagerOverride())
}

func TestGetConfigDir_RespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-test/fontprep", dir)
}

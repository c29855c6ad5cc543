package globalconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the current config schema version.
const Version = "1.0"

// knownManagers are the package manager backends fontprep supports.
var knownManagers = map[string]bool{"apt": true, "dnf": true, "pacman": true}

// Config represents the global fontprep configuration.
type Config struct {
	Version string `yaml:"version"`

	// PackageManager forces a backend (apt, dnf, pacman); empty means autodetect.
	PackageManager string `yaml:"package_manager,omitempty"`

	// ExtraPackages maps a font set name to additional packages installed
	// with that set.
	ExtraPackages map[string][]string `yaml:"extra_packages,omitempty"`

	// ExtraFontDirs are additional directories searched when probing for
	// installed font files.
	ExtraFontDirs []string `yaml:"extra_font_dirs,omitempty"`

	// Verify controls the post-install verification listing.
	Verify VerifyConfig `yaml:"verify"`

	// NextSteps are the informational lines printed after a successful
	// install, typically pointing at the application consuming the fonts.
	NextSteps []string `yaml:"next_steps,omitempty"`
}

// VerifyConfig controls the filtered fc-list output.
type VerifyConfig struct {
	// Filters are matched case-insensitively against fc-list lines.
	Filters []string `yaml:"filters,omitempty"`
	// Limit caps the number of listing lines shown.
	Limit int `yaml:"limit,omitempty"`
}

// Issue is a non-fatal problem found while validating a config.
type Issue struct {
	Field   string
	Message string
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: Version,
		Verify: VerifyConfig{
			Filters: []string{"noto", "malayalam", "devanagari", "liberation"},
			Limit:   10,
		},
		NextSteps: []string{
			"Restart the application: streamlit run app.py",
			"Regenerate reports with pdf_report_generator.py to pick up the new fonts",
		},
	}
}

// Load reads the config file, returning defaults when it does not exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom reads a config from an explicit path, returning defaults when
// the file does not exist. Explicit values override defaults; absent
// fields keep them.
func LoadFrom(path string) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Version == "" {
		cfg.Version = Version
	}
	if len(cfg.Verify.Filters) == 0 {
		cfg.Verify.Filters = NewConfig().Verify.Filters
	}
	if cfg.Verify.Limit <= 0 {
		cfg.Verify.Limit = NewConfig().Verify.Limit
	}

	return cfg, nil
}

// Save writes the config to ~/.config/fontprep/config.yaml.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports non-fatal issues with the configuration. Unknown
// values are reported rather than rejected so a stale config never
// blocks an install.
func (c *Config) Validate() []Issue {
	var issues []Issue

	if c.PackageManager != "" && !knownManagers[c.PackageManager] {
		issues = append(issues, Issue{
			Field:   "package_manager",
			Message: fmt.Sprintf("unknown package manager %q, autodetection will be used", c.PackageManager),
		})
	}

	if c.Verify.Limit > 1000 {
		issues = append(issues, Issue{
			Field:   "verify.limit",
			Message: fmt.Sprintf("limit %d is unreasonably large", c.Verify.Limit),
		})
	}

	for _, dir := range c.ExtraFontDirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			issues = append(issues, Issue{
				Field:   "extra_font_dirs",
				Message: fmt.Sprintf("directory %s does not exist", dir),
			})
		}
	}

	return issues
}

// ManagerOverride returns the forced package manager name, or empty when
// the configured value is unknown or unset.
func (c *Config) ManagerOverride() string {
	if knownManagers[c.PackageManager] {
		return c.PackageManager
	}
	return ""
}

// Package globalconfig provides global configuration management for
// fontprep. Configuration is stored at ~/.config/fontprep/config.yaml.
package globalconfig

import (
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the name of the config directory under ~/.config.
	ConfigDirName = "fontprep"
	// ConfigFileName is the name of the main config file.
	ConfigFileName = "config.yaml"
	// FontSetsFileName is the name of the optional font set overlay file.
	FontSetsFileName = "fontsets.yaml"
)

// GetConfigDir returns the config directory path (~/.config/fontprep).
// Respects XDG_CONFIG_HOME if set.
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName), nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// GetFontSetsPath returns the full path to the font set overlay file.
func GetFontSetsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, FontSetsFileName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(configDir, 0755)
}

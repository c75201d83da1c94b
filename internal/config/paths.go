package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Path constants used by the CLI and loaders.
const (
	ConfigDirName  = ".examprep"
	ConfigFileName = "config.yml"
)

// ConfigDir returns the application directory under the user's home,
// holding both the config file and the default data files.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// ConfigPath returns the full config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// DataDir resolves the data directory for a config, defaulting to the
// application directory.
func DataDir(cfg Config) (string, error) {
	if cfg.Storage.DataDir != "" {
		return cfg.Storage.DataDir, nil
	}
	return ConfigDir()
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

generation:
  model: "gemini-2.5-flash"
  api_key_env: "GEMINI_API_KEY"
  default_count: 5

storage:
  backend: "jsonfile"
`

// Scaffold writes the default config file, refusing to overwrite one that
// already exists.
func Scaffold(path string) error {
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return fmt.Errorf("config file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

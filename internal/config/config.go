// Package config loads the application configuration: generation model and
// endpoint, storage backend, and data directory.
package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backend names accepted in the config file.
const (
	BackendJSONFile = "jsonfile"
	BackendDuckDB   = "duckdb"
)

// Config is the parsed configuration file.
type Config struct {
	Version    int              `yaml:"version"`
	Generation GenerationConfig `yaml:"generation"`
	Storage    StorageConfig    `yaml:"storage"`
}

// GenerationConfig configures the Gemini gateway.
type GenerationConfig struct {
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"base_url"`
	APIKeyEnv    string `yaml:"api_key_env"`
	DefaultCount int    `yaml:"default_count"`
}

// StorageConfig selects and locates the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir"`
}

// ParseConfig strictly decodes a single-document YAML config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	// Any second document present, parsable or not, is a rejection.
	if err := decoder.Decode(new(yaml.Node)); err != io.EOF {
		return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
	}
	return cfg, nil
}

// Normalize trims fields and fills defaults in place.
func Normalize(cfg *Config) {
	cfg.Generation.Model = strings.TrimSpace(cfg.Generation.Model)
	cfg.Generation.BaseURL = strings.TrimSpace(cfg.Generation.BaseURL)
	cfg.Generation.APIKeyEnv = strings.TrimSpace(cfg.Generation.APIKeyEnv)
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Storage.DataDir = strings.TrimSpace(cfg.Storage.DataDir)
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendJSONFile
	}
	if cfg.Generation.DefaultCount <= 0 {
		cfg.Generation.DefaultCount = 5
	}
}

// Validate rejects configs the application cannot run with.
func Validate(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("config: unsupported version %d", cfg.Version)
	}
	switch cfg.Storage.Backend {
	case BackendJSONFile, BackendDuckDB:
	default:
		return fmt.Errorf("config: unknown storage backend %q (expected %s|%s)",
			cfg.Storage.Backend, BackendJSONFile, BackendDuckDB)
	}
	return nil
}

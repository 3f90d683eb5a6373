// Package config handles reading and writing ~/.waymark/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .waymark/config.yaml.
type Config struct {
	Version int       `yaml:"version"`
	API     APIConfig `yaml:"api"`
	UI      UIConfig  `yaml:"ui"`
}

// APIConfig points the client at a roadmap backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	PageSize int `yaml:"page_size"`
}

const configDir = ".waymark"
const configFile = "config.yaml"

// EnvBaseURL overrides the configured API base URL when set.
const EnvBaseURL = "WAYMARK_API_URL"

// Dir returns the waymark state directory under base (usually the user's
// home directory).
func Dir(base string) string {
	return filepath.Join(base, configDir)
}

// ReadConfig reads .waymark/config.yaml from the given base directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(base string) (*Config, error) {
	path := filepath.Join(base, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .waymark/config.yaml under the given base
// directory, creating .waymark/ if it does not exist.
func WriteConfig(base string, cfg *Config) error {
	dirPath := filepath.Join(base, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api",
			TimeoutSeconds: 15,
		},
		UI: UIConfig{
			PageSize: 20,
		},
	}
}

// Load resolves the effective configuration: the user's config file when
// present, defaults otherwise, with the WAYMARK_API_URL environment
// variable taking precedence over both.
func Load(base string) *Config {
	cfg, err := ReadConfig(base)
	if err != nil {
		cfg = DefaultConfig()
	}
	if url := os.Getenv(EnvBaseURL); url != "" {
		cfg.API.BaseURL = url
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = DefaultConfig().API.TimeoutSeconds
	}
	return cfg
}

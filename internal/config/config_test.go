package config

import (
	"testing"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://roadmap.example.com/api"
	cfg.UI.PageSize = 50

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.API.BaseURL != "https://roadmap.example.com/api" {
		t.Errorf("BaseURL: got %q", loaded.API.BaseURL)
	}
	if loaded.UI.PageSize != 50 {
		t.Errorf("PageSize: got %d, want 50", loaded.UI.PageSize)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.API.BaseURL == "" {
		t.Error("default BaseURL must not be empty")
	}
	if cfg.API.TimeoutSeconds <= 0 {
		t.Errorf("default timeout: got %d", cfg.API.TimeoutSeconds)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	cfg := Load(t.TempDir())
	if cfg.API.BaseURL != DefaultConfig().API.BaseURL {
		t.Errorf("BaseURL: got %q", cfg.API.BaseURL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://staging:9000/api")

	cfg := Load(t.TempDir())
	if cfg.API.BaseURL != "http://staging:9000/api" {
		t.Errorf("env override ignored: got %q", cfg.API.BaseURL)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Search.BaseURL != "https://api.parallel.ai" {
		t.Errorf("BaseURL = %q", cfg.Search.BaseURL)
	}
	if cfg.Search.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Search.Timeout)
	}
	if !cfg.Search.BreakerEnabled {
		t.Error("breaker should default on")
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, "info")
	}
	if cfg.Search.APIKey != "" {
		t.Error("APIKey must default empty")
	}
}

func TestLoadNonExistentReturnsDefaults(t *testing.T) {
	cfg, err := Load("/tmp/nonexistent-config-12345.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.BaseURL != "https://api.parallel.ai" {
		t.Errorf("expected defaults, got BaseURL=%q", cfg.Search.BaseURL)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
search:
  base_url: "https://search.internal"
  timeout: 15s
  rate_limit: 5
  rate_window: 30s
  breaker_enabled: false
logger:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.BaseURL != "https://search.internal" {
		t.Errorf("BaseURL = %q", cfg.Search.BaseURL)
	}
	if cfg.Search.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.Search.Timeout)
	}
	if cfg.Search.RateLimit != 5 || cfg.Search.RateWindow != 30*time.Second {
		t.Errorf("rate limit = %d/%v", cfg.Search.RateLimit, cfg.Search.RateWindow)
	}
	if cfg.Search.BreakerEnabled {
		t.Error("breaker_enabled: false not honored")
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("Logger.Level = %q", cfg.Logger.Level)
	}
}

func TestAPIKeyNotReadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
search:
  api_key: "leaked-key"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PARALLEL_API_KEY", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.APIKey != "" {
		t.Error("api_key must be ignored in the config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PARALLEL_API_KEY", "pk-test")
	t.Setenv("SEEKER_SEARCH_BASE_URL", "https://override.example")
	t.Setenv("SEEKER_SEARCH_TIMEOUT", "5s")
	t.Setenv("SEEKER_LOGGER_LEVEL", "warn")
	t.Setenv("SEEKER_TRACER_ENABLED", "true")

	cfg := Defaults()
	ApplyEnvOverrides(cfg)

	if cfg.Search.APIKey != "pk-test" {
		t.Errorf("APIKey = %q", cfg.Search.APIKey)
	}
	if cfg.Search.BaseURL != "https://override.example" {
		t.Errorf("BaseURL = %q", cfg.Search.BaseURL)
	}
	if cfg.Search.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Search.Timeout)
	}
	if cfg.Logger.Level != "warn" {
		t.Errorf("Logger.Level = %q", cfg.Logger.Level)
	}
	if !cfg.Tracer.Enabled {
		t.Error("Tracer.Enabled override not applied")
	}
}

func TestEnvOverrideBadDurationIgnored(t *testing.T) {
	t.Setenv("SEEKER_SEARCH_TIMEOUT", "soon")
	cfg := Defaults()
	ApplyEnvOverrides(cfg)
	if cfg.Search.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want default kept", cfg.Search.Timeout)
	}
}

func TestValidate(t *testing.T) {
	good := Defaults()
	if err := Validate(good); err != nil {
		t.Errorf("Validate(defaults) = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Search.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.Search.Timeout = 0 }},
		{"negative rate limit", func(c *Config) { c.Search.RateLimit = -1 }},
		{"unknown exporter", func(c *Config) { c.Tracer.Exporter = "jaeger" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// Package config loads and validates the seeker configuration.
// Sources, in increasing precedence: built-in defaults, a YAML config file,
// SEEKER_* environment variables. The Parallel API key is read from
// PARALLEL_API_KEY only and is never written to the config file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"seeker/internal/domain"
)

// Config is the top-level application configuration.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Logger LoggerConfig `yaml:"logger"`
	Tracer TracerConfig `yaml:"tracer"`
}

// SearchConfig holds web search provider settings.
type SearchConfig struct {
	// APIKey is the Parallel API credential. Empty means the web_search
	// tool is soft-disabled: it simply does not register.
	APIKey  string        `yaml:"-"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`

	// Sliding-window rate limit for tool invocations. Zero disables limiting.
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`

	// BreakerEnabled wraps the backend with a circuit breaker so repeated
	// provider failures fail fast instead of piling up network calls.
	BreakerEnabled bool `yaml:"breaker_enabled"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// Defaults returns the built-in default configuration.
func Defaults() *Config {
	return &Config{
		Search: SearchConfig{
			BaseURL:        "https://api.parallel.ai",
			Timeout:        60 * time.Second,
			RateLimit:      30,
			RateWindow:     time.Minute,
			BreakerEnabled: true,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Tracer: TracerConfig{
			Enabled:  false,
			Exporter: "noop",
		},
	}
}

// Load reads the config file at path, merging it over defaults and applying
// environment overrides. A missing file is not an error: defaults plus
// environment are used.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			return cfg, Validate(cfg)
		}
		return nil, domain.WrapOp("read config", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyEnvOverrides(cfg)
	return cfg, Validate(cfg)
}

// ApplyEnvOverrides maps SEEKER_* env vars (and PARALLEL_API_KEY) to config fields.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PARALLEL_API_KEY"); v != "" {
		cfg.Search.APIKey = v
	}
	if v := os.Getenv("SEEKER_SEARCH_BASE_URL"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v := os.Getenv("SEEKER_SEARCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Search.Timeout = d
		}
	}
	if v := os.Getenv("SEEKER_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("SEEKER_LOGGER_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv("SEEKER_LOGGER_OUTPUT"); v != "" {
		cfg.Logger.Output = v
	}
	if v := os.Getenv("SEEKER_TRACER_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
	}
	if v := os.Getenv("SEEKER_TRACER_EXPORTER"); v != "" {
		cfg.Tracer.Exporter = v
	}
}

// Validate checks config invariants that would otherwise surface as
// confusing runtime failures.
func Validate(cfg *Config) error {
	if cfg.Search.BaseURL == "" {
		return domain.NewDomainError("config.Validate", domain.ErrConfigLoad, "search.base_url must not be empty")
	}
	if cfg.Search.Timeout <= 0 {
		return domain.NewDomainError("config.Validate", domain.ErrConfigLoad, "search.timeout must be positive")
	}
	if cfg.Search.RateLimit < 0 {
		return domain.NewDomainError("config.Validate", domain.ErrConfigLoad, "search.rate_limit must not be negative")
	}
	switch cfg.Tracer.Exporter {
	case "", "noop", "stdout":
	default:
		return domain.NewDomainError("config.Validate", domain.ErrConfigLoad,
			fmt.Sprintf("unsupported tracer exporter %q", cfg.Tracer.Exporter))
	}
	return nil
}

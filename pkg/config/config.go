// Package config resolves the client configuration: compiled defaults,
// overlaid by an optional YAML file, overlaid by ATELIER_* environment
// variables. The result is validated once at startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Config holds everything the client needs to reach the two remote services
// and shape its own output.
type Config struct {
	// Environment selects dev/test/prod behavior (log defaults, prompts).
	Environment string `yaml:"environment" env:"ATELIER_ENV"`

	// DatabaseURL is the base URL of the database service (collection CRUD).
	DatabaseURL string `yaml:"database_url" env:"ATELIER_DATABASE_URL"`
	// WorkflowURL is the base URL of the workflow service (execution,
	// generation, transcription, maintenance).
	WorkflowURL string `yaml:"workflow_url" env:"ATELIER_WORKFLOW_URL"`

	// Token is the bearer token attached to every remote call. Empty
	// disables auth headers (local development).
	Token string `yaml:"token" env:"ATELIER_TOKEN"`

	// RequestTimeout bounds each remote call.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"ATELIER_REQUEST_TIMEOUT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"ATELIER_LOG_LEVEL"`

	// AutoConfirm answers every confirmation prompt with yes. Meant for
	// scripted runs; destructive operations stop asking.
	AutoConfirm bool `yaml:"auto_confirm" env:"ATELIER_AUTO_CONFIRM"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Environment:    "dev",
		DatabaseURL:    "http://localhost:3000",
		WorkflowURL:    "http://localhost:8000",
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
	}
}

// defaultPaths lists where a config file is searched when no explicit path
// is given, in order.
func defaultPaths() []string {
	paths := []string{"atelier.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".atelier", "config.yaml"))
	}
	return paths
}

// Load resolves the configuration. path may be empty, in which case the
// standard locations are tried; a missing file is not an error, a malformed
// one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		for _, candidate := range defaultPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the resolved configuration for sanity.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment, validation.Required, validation.In("dev", "test", "prod")),
		validation.Field(&c.DatabaseURL, validation.Required, is.URL),
		validation.Field(&c.WorkflowURL, validation.Required, is.URL),
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.RequestTimeout, validation.By(positiveDuration)),
	)
}

func positiveDuration(value interface{}) error {
	d, ok := value.(time.Duration)
	if !ok || d <= 0 {
		return fmt.Errorf("must be a positive duration")
	}
	return nil
}

// SlogLevel maps LogLevel onto slog's scale; unset falls back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsDev reports whether the client runs in the development environment.
func (c *Config) IsDev() bool { return c.Environment == "dev" }

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points the default config search away from the developer's real
// home directory and working tree.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// TestLoadDefaults verifies a run with no file and no environment falls back
// to the compiled defaults.
func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Environment != "dev" {
		t.Errorf("expected environment %q, got %q", "dev", cfg.Environment)
	}
	if cfg.DatabaseURL != "http://localhost:3000" {
		t.Errorf("expected default database url, got %q", cfg.DatabaseURL)
	}
	if cfg.WorkflowURL != "http://localhost:8000" {
		t.Errorf("expected default workflow url, got %q", cfg.WorkflowURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.RequestTimeout)
	}
	if !cfg.IsDev() {
		t.Error("expected dev environment")
	}
}

// TestLoadYAMLOverlay verifies file values override defaults.
func TestLoadYAMLOverlay(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "atelier.yaml")
	data := []byte("environment: prod\ndatabase_url: https://db.example.com\nlog_level: warn\nrequest_timeout: 10s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Environment != "prod" {
		t.Errorf("expected environment %q, got %q", "prod", cfg.Environment)
	}
	if cfg.DatabaseURL != "https://db.example.com" {
		t.Errorf("expected overridden database url, got %q", cfg.DatabaseURL)
	}
	if cfg.WorkflowURL != "http://localhost:8000" {
		t.Errorf("expected untouched workflow url, got %q", cfg.WorkflowURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log level %q, got %q", "warn", cfg.LogLevel)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.RequestTimeout)
	}
}

// TestLoadEnvironmentOverridesFile verifies the precedence chain: defaults,
// then file, then environment.
func TestLoadEnvironmentOverridesFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "atelier.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\ntoken: from-file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ATELIER_LOG_LEVEL", "error")
	t.Setenv("ATELIER_TOKEN", "from-env")
	t.Setenv("ATELIER_AUTO_CONFIRM", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("expected env log level %q, got %q", "error", cfg.LogLevel)
	}
	if cfg.Token != "from-env" {
		t.Errorf("expected env token, got %q", cfg.Token)
	}
	if !cfg.AutoConfirm {
		t.Error("expected auto_confirm from environment")
	}
}

// TestLoadErrors verifies malformed files and invalid values are rejected.
func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "malformed yaml", yaml: "environment: [broken\n"},
		{name: "unknown environment", yaml: "environment: staging\n"},
		{name: "bad database url", yaml: "database_url: \"not a url\"\n"},
		{name: "unknown log level", env: map[string]string{"ATELIER_LOG_LEVEL": "verbose"}},
		{name: "negative timeout", env: map[string]string{"ATELIER_REQUEST_TIMEOUT": "-5s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			path := ""
			if tt.yaml != "" {
				path = filepath.Join(t.TempDir(), "atelier.yaml")
				if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
					t.Fatalf("write config: %v", err)
				}
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(path); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

// TestLoadMissingExplicitFile verifies an explicitly named missing file is an
// error, unlike the optional default locations.
func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

// TestSlogLevel verifies the log level mapping.
func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		c := &Config{LogLevel: tt.level}
		if got := c.SlogLevel(); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.level, tt.want, got)
		}
	}
}

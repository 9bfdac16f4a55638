package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Backend != "json" {
		t.Errorf("Storage.Backend = %v, want json", cfg.Storage.Backend)
	}
	if cfg.Policy.FullDayMaxHours != 7.0 {
		t.Errorf("Policy.FullDayMaxHours = %v, want 7.0", cfg.Policy.FullDayMaxHours)
	}
	if cfg.Policy.HalfDayMaxHours != 3.5 {
		t.Errorf("Policy.HalfDayMaxHours = %v, want 3.5", cfg.Policy.HalfDayMaxHours)
	}
	if cfg.Defaults.Begin != "08:30" || cfg.Defaults.End != "16:00" {
		t.Errorf("Defaults = %+v, want 08:30-16:00", cfg.Defaults)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  backend: sqlite
  path: /tmp/test.db
policy:
  full_day_max_hours: 8.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %v, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Policy.FullDayMaxHours != 8.0 {
		t.Errorf("Policy.FullDayMaxHours = %v, want 8.0", cfg.Policy.FullDayMaxHours)
	}
	// Unset values keep their defaults.
	if cfg.Policy.MinBreakMinutes != 30 {
		t.Errorf("Policy.MinBreakMinutes = %v, want 30", cfg.Policy.MinBreakMinutes)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with an explicit missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Valid config", func(c *Config) {}, false},
		{"Unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, true},
		{"Empty path", func(c *Config) { c.Storage.Path = "" }, true},
		{"Zero full-day limit", func(c *Config) { c.Policy.FullDayMaxHours = 0 }, true},
		{"Negative break minimum", func(c *Config) { c.Policy.MinBreakMinutes = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Storage: StorageConfig{Backend: "json", Path: "/tmp/data.json"},
				Policy:  PolicyConfig{HalfDayMaxHours: 3.5, FullDayMaxHours: 7.0, MinBreakMinutes: 30},
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

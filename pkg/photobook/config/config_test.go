package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DatabaseType != "memory" {
		t.Errorf("expected default database type memory, got %q", cfg.DatabaseType)
	}
	if cfg.StorageType != "memory" {
		t.Errorf("expected default storage type memory, got %q", cfg.StorageType)
	}
	if cfg.VisionEnabled() {
		t.Error("expected vision to be disabled by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ServerConfig)
		wantError bool
	}{
		{"defaults are valid", func(c *ServerConfig) {}, false},
		{"missing port", func(c *ServerConfig) { c.Port = "" }, true},
		{"unknown database type", func(c *ServerConfig) { c.DatabaseType = "sqlite" }, true},
		{"postgres without url", func(c *ServerConfig) { c.DatabaseType = "postgres" }, true},
		{"fs without base dir", func(c *ServerConfig) { c.StorageType = "fs" }, true},
		{"s3 without bucket", func(c *ServerConfig) { c.StorageType = "s3" }, true},
		{"vision key without endpoint", func(c *ServerConfig) { c.VisionKey = "secret" }, true},
		{"fs with base dir", func(c *ServerConfig) {
			c.StorageType = "fs"
			c.FSBaseDir = "/var/data"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildServiceMemory(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc, err := cfg.BuildService(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service instance")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.ArrivalCacheTTL != 15*time.Second {
		t.Errorf("ArrivalCacheTTL = %v, want 15s", cfg.ArrivalCacheTTL)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want 30s", cfg.RefreshInterval)
	}
	if cfg.DefaultRadiusKm != 2 {
		t.Errorf("DefaultRadiusKm = %v, want 2", cfg.DefaultRadiusKm)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	t.Setenv("DEFAULT_RADIUS_KM", "1.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "production" {
		t.Errorf("env overrides ignored: %+v", cfg)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.DefaultRadiusKm != 1.5 {
		t.Errorf("DefaultRadiusKm = %v, want 1.5", cfg.DefaultRadiusKm)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := "port: \"9090\"\ndefaultRadiusKm: 3\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want yaml overlay 9090", cfg.Port)
	}
	if cfg.DefaultRadiusKm != 3 {
		t.Errorf("DefaultRadiusKm = %v, want 3", cfg.DefaultRadiusKm)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg := &Config{Port: "3000", DefaultRadiusKm: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("zero radius should fail validation")
	}

	cfg = &Config{Port: "", DefaultRadiusKm: 2}
	if err := cfg.Validate(); err == nil {
		t.Error("empty port should fail validation")
	}

	cfg = &Config{Port: "3000", DefaultRadiusKm: 2, StopsURL: "not-a-url"}
	if err := cfg.Validate(); err == nil {
		t.Error("malformed stops URL should fail validation")
	}
}

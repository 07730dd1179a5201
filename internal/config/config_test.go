package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9090"
redis:
  addr: localhost:6379
catalog:
  ttl: 2m
generator:
  strict_distribution: true
  seed: 42
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.Generator.StrictDistribution || cfg.Generator.Seed == nil || *cfg.Generator.Seed != 42 {
		t.Fatalf("unexpected generator config %+v", cfg.Generator)
	}
	if got := TTLDuration(cfg.Catalog.TTL, time.Minute); got != 2*time.Minute {
		t.Fatalf("expected 2m ttl, got %v", got)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Postgres.URL != "" || cfg.Generator.Seed != nil {
		t.Fatalf("expected zero config")
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for empty, got %v", got)
	}
	if got := TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for garbage, got %v", got)
	}
}

func TestLoadZeroSeedIsSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("generator:\n  seed: 0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Generator.Seed == nil || *cfg.Generator.Seed != 0 {
		t.Fatalf("expected explicit zero seed, got %v", cfg.Generator.Seed)
	}
}

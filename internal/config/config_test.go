package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
database-dsn: "file:test.db"
jwt-secret: "secret"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Fatalf("default listen = %q", cfg.Listen)
	}
	if cfg.CacheTTLSeconds != 300 {
		t.Fatalf("default cache ttl = %d", cfg.CacheTTLSeconds)
	}
	if cfg.CacheTTL() != 300*time.Second {
		t.Fatalf("cache ttl duration = %v", cfg.CacheTTL())
	}
	if cfg.TokenExpiry != 24*time.Hour {
		t.Fatalf("default token expiry = %v", cfg.TokenExpiry)
	}
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	path := writeConfigFile(t, `listen: ":9090"`)

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing database-dsn")
	}

	path = writeConfigFile(t, `database-dsn: "file:test.db"`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing jwt-secret")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
listen: ":9090"
database-dsn: "file:file-value.db"
jwt-secret: "file-secret"
cache-ttl-seconds: 60
`)

	t.Setenv("VENDORA_LISTEN", ":7070")
	t.Setenv("VENDORA_DATABASE_DSN", "file:env-value.db")
	t.Setenv("VENDORA_CACHE_TTL_SECONDS", "120")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":7070" {
		t.Fatalf("env listen not applied, got %q", cfg.Listen)
	}
	if cfg.DatabaseDSN != "file:env-value.db" {
		t.Fatalf("env dsn not applied, got %q", cfg.DatabaseDSN)
	}
	if cfg.CacheTTLSeconds != 120 {
		t.Fatalf("env cache ttl not applied, got %d", cfg.CacheTTLSeconds)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Fatalf("file secret lost, got %q", cfg.JWTSecret)
	}
}

func TestLoadMissingFileWithEnv(t *testing.T) {
	t.Setenv("VENDORA_DATABASE_DSN", "file:env.db")
	t.Setenv("VENDORA_JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseDSN != "file:env.db" || cfg.JWTSecret != "env-secret" {
		t.Fatalf("env-only config not applied: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "listen: [:::")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

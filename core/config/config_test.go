package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = "  "
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestNormalizeDefaultsFileBackend(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Backend != StorageBackendFile {
		t.Fatalf("backend = %q, want %q", cfg.Storage.Backend, StorageBackendFile)
	}
	if cfg.Storage.FilePath != "quiz_users.json" {
		t.Fatalf("file_path = %q, want default", cfg.Storage.FilePath)
	}
}

func TestNormalizeRejectsUnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = "redis"
	err := Normalize(cfg)
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "redis") {
		t.Fatalf("error should name the backend, got: %v", err)
	}
}

func TestNormalizePostgresRequiresHostAndName(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = StorageBackendPostgres
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for missing database host/name")
	}

	cfg = validConfig()
	cfg.Storage.Backend = StorageBackendPostgres
	cfg.Storage.Database.Host = "localhost"
	cfg.Storage.Database.Name = "quiz"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Database.Port != "5432" {
		t.Fatalf("port = %q, want default 5432", cfg.Storage.Database.Port)
	}
	if cfg.Storage.Database.SSLMode != "disable" {
		t.Fatalf("sslmode = %q, want default disable", cfg.Storage.Database.SSLMode)
	}
	if cfg.Storage.Database.MaxConnections != 4 {
		t.Fatalf("max_connections = %d, want default 4", cfg.Storage.Database.MaxConnections)
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Fatalf("exclusion not normalized: %q", cfg.RateLimit.ExcludeUpdates[0])
	}

	cfg = validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unsupported exclusion")
	}
}

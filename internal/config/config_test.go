package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_ADDR", ":9999")
	t.Setenv("TOKEN_TTL_HOURS", "24")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ,")
	t.Setenv("RATE_LIMIT_REDIS_DB", "3")

	cfg := Load()
	if cfg.Addr != ":9999" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitRedisDB != 3 {
		t.Fatalf("unexpected redis db: %d", cfg.RateLimitRedisDB)
	}
}

func TestLoadFallsBackOnInvalidInt(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")
	cfg := Load()
	if cfg.TokenTTL != 168*time.Hour {
		t.Fatalf("expected fallback ttl, got %v", cfg.TokenTTL)
	}
}

func TestLoadParsesMigrationToggle(t *testing.T) {
	t.Setenv("DB_AUTO_MIGRATE", "false")
	if cfg := Load(); cfg.AutoMigrate {
		t.Fatalf("expected auto migrate to be disabled")
	}
}

func TestLoadFallsBackOnInvalidBool(t *testing.T) {
	t.Setenv("DB_AUTO_MIGRATE", "definitely")
	if cfg := Load(); !cfg.AutoMigrate {
		t.Fatalf("expected fallback to enabled auto migrate")
	}
}

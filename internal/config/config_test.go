package config

import (
	"os"
	"testing"
	"time"
)

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "SNAPSHOT_SCHEDULE", "MARKET_TIMEOUT", "JOURNAL_PASSPHRASE_HASH"} {
		unset(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("expected sqlite driver, got %q", cfg.DBDriver)
	}
	if cfg.SnapshotSchedule != "@daily" {
		t.Errorf("expected @daily, got %q", cfg.SnapshotSchedule)
	}
	if cfg.MarketTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.MarketTimeout)
	}
	if cfg.AuthEnabled() {
		t.Error("expected auth disabled without a passphrase hash")
	}
	if Get() != cfg {
		t.Error("expected Get to return the loaded config")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("JOURNAL_PASSPHRASE_HASH", "$2a$10$abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBDriver != "postgres" || cfg.JWTExpirationDur != 2*time.Hour || !cfg.SeedDemoData {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !cfg.AuthEnabled() {
		t.Error("expected auth enabled")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("MARKET_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid duration")
	}
}

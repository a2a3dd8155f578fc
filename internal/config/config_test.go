package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if !cfg.Enabled {
		t.Fatalf("logging should default on")
	}
	if cfg.MaxEntries != 500 {
		t.Fatalf("want 500 max entries, got %d", cfg.MaxEntries)
	}
	if cfg.MaxAge() != 24*time.Hour {
		t.Fatalf("want 24h max age, got %s", cfg.MaxAge())
	}
	if cfg.MaxDataPreviewBytes != 2000 {
		t.Fatalf("want 2000 preview bytes, got %d", cfg.MaxDataPreviewBytes)
	}
	if cfg.StorageKey == "" {
		t.Fatalf("storage key must have a default")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("empty path should yield defaults: %+v", cfg)
	}
}

func TestLoadOverlaysFileOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diaglog.json")
	if err := os.WriteFile(path, []byte(`{"maxEntries": 42, "storageKey": "custom/slot"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxEntries != 42 {
		t.Fatalf("file value not applied: %d", cfg.MaxEntries)
	}
	if cfg.StorageKey != "custom/slot" {
		t.Fatalf("file value not applied: %s", cfg.StorageKey)
	}
	// Untouched fields keep defaults.
	if cfg.MaxAgeHours != 24 {
		t.Fatalf("default lost: %d", cfg.MaxAgeHours)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diaglog.json")
	if err := os.WriteFile(path, []byte(`{`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed config accepted")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DIAGLOG_ENABLED", "false")
	t.Setenv("DIAGLOG_MAX_ENTRIES", "7")
	t.Setenv("DIAGLOG_MAX_AGE_HOURS", "2")
	t.Setenv("DIAGLOG_MAX_STORED_BYTES", "1234")
	t.Setenv("DIAGLOG_STORAGE_KEY", "env/slot")
	t.Setenv("DIAGLOG_STORE_QUOTA_BYTES", "9999")

	cfg := Default()
	FromEnv(&cfg)

	if cfg.Enabled {
		t.Fatalf("env disable not applied")
	}
	if cfg.MaxEntries != 7 || cfg.MaxAgeHours != 2 || cfg.MaxStoredBytes != 1234 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.StorageKey != "env/slot" || cfg.StoreQuotaBytes != 9999 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("DIAGLOG_MAX_ENTRIES", "not-a-number")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.MaxEntries != 500 {
		t.Fatalf("garbage env value applied: %d", cfg.MaxEntries)
	}
}

func TestDefaultDataDirNonEmpty(t *testing.T) {
	if DefaultDataDir() == "" {
		t.Fatalf("DefaultDataDir returned empty path")
	}
}

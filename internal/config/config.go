package config

import (
	"encoding/json"
	"os"
	"time"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// Enabled controls whether diagnostic logging is active at all. When
	// false, ingestion is a no-op and nothing is read, written, or retained.
	Enabled bool `json:"enabled"`
	// MaxEntries caps how many entries are retained in memory.
	MaxEntries int `json:"maxEntries"`
	// MaxAgeHours drops entries older than this many hours.
	MaxAgeHours int `json:"maxAgeHours"`
	// MaxStoredBytes caps the serialized size written to the durable slot.
	MaxStoredBytes int `json:"maxStoredBytes"`
	// MaxDataPreviewBytes caps the serialized size of a single entry payload
	// before it is replaced with a truncated preview.
	MaxDataPreviewBytes int `json:"maxDataPreviewBytes"`
	// StorageKey is the durable slot the entry history is written under.
	StorageKey string `json:"storageKey"`
	// StoreQuotaBytes is the capacity of the durable store itself. Zero means
	// unlimited.
	StoreQuotaBytes int64 `json:"storeQuotaBytes"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Enabled:             true,
		MaxEntries:          500,
		MaxAgeHours:         24,
		MaxStoredBytes:      200 << 10,
		MaxDataPreviewBytes: 2000,
		StorageKey:          "diaglog/entries",
		StoreQuotaBytes:     256 << 10,
	}
}

// MaxAge returns the retention age ceiling as a duration.
func (c Config) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeHours) * time.Hour
}

// Load reads configuration from a JSON file. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

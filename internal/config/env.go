package config

import (
	"os"
	"strconv"
)

// FromEnv overlays DIAGLOG_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("DIAGLOG_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := os.Getenv("DIAGLOG_MAX_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxEntries = n
		}
	}
	if v := os.Getenv("DIAGLOG_MAX_AGE_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxAgeHours = n
		}
	}
	if v := os.Getenv("DIAGLOG_MAX_STORED_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxStoredBytes = n
		}
	}
	if v := os.Getenv("DIAGLOG_MAX_DATA_PREVIEW_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxDataPreviewBytes = n
		}
	}
	if v := os.Getenv("DIAGLOG_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
	}
	if v := os.Getenv("DIAGLOG_STORE_QUOTA_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.StoreQuotaBytes = n
		}
	}
}

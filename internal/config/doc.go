// Package config loads diaglog configuration from a JSON file with a
// DIAGLOG_* environment overlay, and resolves the per-OS default data
// directory.
package config

package logbuf

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Level is the severity of a diagnostic entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel converts a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo:
		return LevelInfo, nil
	case LevelWarn:
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logbuf: unknown level %q", s)
	}
}

// Entry is one structured diagnostic record. Immutable once created.
type Entry struct {
	// Timestamp is the creation instant in RFC 3339 nanosecond form.
	Timestamp string `json:"timestamp"`
	Level     Level  `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	// Data is the sanitized payload, if any. Already a self-contained JSON
	// document produced by Sanitize.
	Data json.RawMessage `json:"data,omitempty"`
}

// Time parses the entry's timestamp.
func (e Entry) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, e.Timestamp)
}

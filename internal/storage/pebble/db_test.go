package pebblestore

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/psukit/diaglog/internal/storage"
)

type testMetrics struct {
	wrote int
	read  int
}

func (m *testMetrics) ObserveWrite(d time.Duration, bytes int) { m.wrote += bytes }
func (m *testMetrics) ObserveRead(d time.Duration, bytes int)  { m.read += bytes }

func newTestDB(t *testing.T, quota int64) (*DB, *testMetrics) {
	t.Helper()
	dir := t.TempDir()
	metrics := &testMetrics{}
	db, err := Open(Options{
		DataDir:       dir,
		Fsync:         FsyncModeInterval,
		FsyncInterval: 2 * time.Millisecond,
		QuotaBytes:    quota,
		Metrics:       metrics,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, metrics
}

func TestSlotCRUD(t *testing.T) {
	db, metrics := newTestDB(t, 0)

	if err := db.Set("k1", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok := db.Get("k1")
	if !ok {
		t.Fatalf("get: key absent")
	}
	if !bytes.Equal(got, []byte("v1")) {
		t.Fatalf("got %q want %q", got, "v1")
	}
	if metrics.wrote == 0 || metrics.read == 0 {
		t.Fatalf("expected metrics to record bytes: wrote=%d read=%d", metrics.wrote, metrics.read)
	}

	if err := db.Remove("k1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := db.Get("k1"); ok {
		t.Fatalf("key still present after remove")
	}
}

func TestGetAbsentKey(t *testing.T) {
	db, _ := newTestDB(t, 0)
	if _, ok := db.Get("missing"); ok {
		t.Fatalf("absent key reported present")
	}
}

func TestRemoveAbsentKeyIsNoError(t *testing.T) {
	db, _ := newTestDB(t, 0)
	if err := db.Remove("missing"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestQuotaRefusesOverflow(t *testing.T) {
	db, _ := newTestDB(t, 100)

	if err := db.Set("a", make([]byte, 60)); err != nil {
		t.Fatalf("first set within quota: %v", err)
	}
	err := db.Set("b", make([]byte, 60))
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("want ErrQuotaExceeded, got %v", err)
	}
	// The refused write must not have landed.
	if _, ok := db.Get("b"); ok {
		t.Fatalf("refused write persisted")
	}
}

func TestQuotaExcludesOverwrittenValue(t *testing.T) {
	db, _ := newTestDB(t, 100)

	if err := db.Set("a", make([]byte, 60)); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Replacing the slot frees its old bytes: 90 fits even though 60+90 > 100.
	if err := db.Set("a", make([]byte, 90)); err != nil {
		t.Fatalf("overwrite within quota: %v", err)
	}

	used, err := db.UsedBytes()
	if err != nil {
		t.Fatalf("used bytes: %v", err)
	}
	if used != 90 {
		t.Fatalf("want 90 used bytes, got %d", used)
	}
}

func TestSingleOversizedValueRefused(t *testing.T) {
	db, _ := newTestDB(t, 100)
	err := db.Set("a", make([]byte, 101))
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("want ErrQuotaExceeded, got %v", err)
	}
}

func TestValuesDurableAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(Options{DataDir: dir, Fsync: FsyncModeAlways})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Set("k", []byte("persisted")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db2, err := Open(Options{DataDir: dir, Fsync: FsyncModeAlways})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = db2.Close() })
	got, ok := db2.Get("k")
	if !ok || !bytes.Equal(got, []byte("persisted")) {
		t.Fatalf("value lost across reopen: %q ok=%v", got, ok)
	}
}

func TestParseFsyncMode(t *testing.T) {
	for name, want := range map[string]FsyncMode{
		"":         FsyncModeAlways,
		"always":   FsyncModeAlways,
		"interval": FsyncModeInterval,
		"never":    FsyncModeNever,
	} {
		got, err := ParseFsyncMode(name)
		if err != nil || got != want {
			t.Fatalf("ParseFsyncMode(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseFsyncMode("bogus"); err == nil {
		t.Fatalf("invalid mode accepted")
	}
}

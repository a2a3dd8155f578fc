package pebblestore

import (
	"context"
	"errors"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/psukit/diaglog/internal/storage"
)

// FsyncMode defines durability behavior for write operations.
type FsyncMode int

const (
	FsyncModeUnspecified FsyncMode = iota
	// FsyncModeAlways requests a WAL fsync on each committed write.
	FsyncModeAlways
	// FsyncModeInterval enables group-commit by allowing Pebble to coalesce WAL
	// syncs for operations within the configured interval.
	FsyncModeInterval
	// FsyncModeNever avoids forcing WAL syncs from the application. Pebble may
	// still sync based on its own policies.
	FsyncModeNever
)

// ParseFsyncMode converts a mode name to an FsyncMode.
func ParseFsyncMode(s string) (FsyncMode, error) {
	switch s {
	case "", "always":
		return FsyncModeAlways, nil
	case "interval":
		return FsyncModeInterval, nil
	case "never":
		return FsyncModeNever, nil
	default:
		return FsyncModeUnspecified, errors.New("pebble: invalid fsync mode; use always|interval|never")
	}
}

// Options configures the Pebble slot store.
type Options struct {
	// DataDir is the path to the Pebble database directory.
	DataDir string
	// Fsync determines when to sync the WAL.
	Fsync FsyncMode
	// FsyncInterval controls group-commit when Fsync=FsyncModeInterval.
	FsyncInterval time.Duration
	// QuotaBytes caps the total value bytes the store will accept. Writes that
	// would push the total past the cap are refused with
	// storage.ErrQuotaExceeded. Zero means unlimited.
	QuotaBytes int64
	// PebbleOptions allows advanced tuning of Pebble. If nil, sensible defaults are used.
	PebbleOptions *pebble.Options
	// Metrics allows observing read/write latencies and sizes. Optional.
	Metrics MetricsHook
}

// MetricsHook is a minimal hook surface for storage observations.
type MetricsHook interface {
	ObserveWrite(elapsed time.Duration, bytes int)
	ObserveRead(elapsed time.Duration, bytes int)
}

// NoopMetrics is used when no metrics hook is provided.
type NoopMetrics struct{}

func (NoopMetrics) ObserveWrite(time.Duration, int) {}
func (NoopMetrics) ObserveRead(time.Duration, int)  {}

// DB wraps a Pebble database as a quota-enforcing slot store.
type DB struct {
	inner     *pebble.DB
	writeSync bool
	quota     int64
	metrics   MetricsHook
}

var _ storage.Store = (*DB)(nil)

// Open creates or opens a Pebble database with the provided options.
func Open(opts Options) (*DB, error) {
	if opts.DataDir == "" {
		return nil, errors.New("pebble: Options.DataDir is required")
	}

	po := opts.PebbleOptions
	if po == nil {
		po = &pebble.Options{}
	}

	switch opts.Fsync {
	case FsyncModeAlways:
		// Sync on each commit; WALMinSyncInterval left at default (0).
	case FsyncModeInterval:
		if opts.FsyncInterval <= 0 {
			opts.FsyncInterval = 5 * time.Millisecond
		}
		po.WALMinSyncInterval = func() time.Duration { return opts.FsyncInterval }
	case FsyncModeNever:
	default:
		// Default to small group-commit for reasonable latency/throughput tradeoff.
		po.WALMinSyncInterval = func() time.Duration { return 5 * time.Millisecond }
	}

	inner, err := pebble.Open(opts.DataDir, po)
	if err != nil {
		return nil, err
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = NoopMetrics{}
	}

	db := &DB{
		inner:     inner,
		writeSync: opts.Fsync == FsyncModeAlways,
		quota:     opts.QuotaBytes,
		metrics:   metrics,
	}
	return db, nil
}

// Close closes the Pebble database.
func (db *DB) Close() error {
	if db == nil || db.inner == nil {
		return nil
	}
	return db.inner.Close()
}

// Get copies the value for the given key. A missing or unreadable key reports
// absent.
func (db *DB) Get(key string) ([]byte, bool) {
	start := time.Now()
	val, closer, err := db.inner.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	defer closer.Close()
	buf := append([]byte(nil), val...)
	db.metrics.ObserveRead(time.Since(start), len(buf))
	return buf, true
}

// Set stores value under key, enforcing the byte quota over the total value
// bytes held by the store (with the new value applied).
func (db *DB) Set(key string, value []byte) error {
	if db.quota > 0 {
		used, err := db.usedBytes(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > db.quota {
			return storage.ErrQuotaExceeded
		}
	}

	start := time.Now()
	b := db.inner.NewBatch()
	defer b.Close()
	if err := b.Set([]byte(key), value, nil); err != nil {
		return err
	}
	if err := db.commitBatch(context.Background(), b); err != nil {
		return err
	}
	db.metrics.ObserveWrite(time.Since(start), len(value))
	return nil
}

// Remove deletes a key. Removing an absent key is not an error.
func (db *DB) Remove(key string) error {
	b := db.inner.NewBatch()
	defer b.Close()
	if err := b.Delete([]byte(key), nil); err != nil {
		return err
	}
	return db.commitBatch(context.Background(), b)
}

// UsedBytes reports the total value bytes currently held by the store.
func (db *DB) UsedBytes() (int64, error) {
	return db.usedBytes("")
}

// QuotaBytes reports the configured capacity (zero means unlimited).
func (db *DB) QuotaBytes() int64 { return db.quota }

// usedBytes sums value sizes across all keys, skipping exclude (the key about
// to be overwritten). The store holds a handful of small slots, so a full
// scan is cheap.
func (db *DB) usedBytes(exclude string) (int64, error) {
	iter, err := db.inner.NewIter(nil)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	var total int64
	for ok := iter.First(); ok; ok = iter.Next() {
		if exclude != "" && string(iter.Key()) == exclude {
			continue
		}
		total += int64(len(iter.Value()))
	}
	return total, iter.Error()
}

func (db *DB) commitBatch(_ context.Context, b *pebble.Batch) error {
	if b == nil {
		return errors.New("pebble: nil batch")
	}
	syncMode := pebble.NoSync
	if db.writeSync {
		syncMode = pebble.Sync
	}
	return b.Commit(syncMode)
}

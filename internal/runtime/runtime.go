package runtime

import (
	"context"
	"errors"
	"time"

	cfgpkg "github.com/psukit/diaglog/internal/config"
	"github.com/psukit/diaglog/internal/logbuf"
	pebblestore "github.com/psukit/diaglog/internal/storage/pebble"
	logpkg "github.com/psukit/diaglog/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	// Logger is the diagnostic sink every ingested entry is mirrored to. A
	// default console logger is used when nil.
	Logger logpkg.Logger
}

// Runtime wires storage, config, the process-wide durability gate, and the
// log buffer for a single process.
type Runtime struct {
	db     *pebblestore.DB
	gate   *logbuf.Gate
	buf    *logbuf.Buffer
	config cfgpkg.Config
	logger logpkg.Logger
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		QuotaBytes:    opts.Config.StoreQuotaBytes,
	})
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}

	key := opts.Config.StorageKey
	gate := logbuf.NewGate(func(string) {
		// Terminal failure path: clear the slot so no partial payload
		// lingers, swallowing any removal error.
		_ = db.Remove(key)
	})

	rt := &Runtime{
		db:     db,
		gate:   gate,
		config: opts.Config,
		logger: logger,
	}
	rt.buf = rt.NewBuffer()
	return rt, nil
}

// NewBuffer constructs a log buffer sharing the process-wide gate. A buffer
// constructed after a trip starts with persistence already disabled.
func (r *Runtime) NewBuffer() *logbuf.Buffer {
	return logbuf.Open(r.db, r.gate, logbuf.Config{
		Enabled:             r.config.Enabled,
		MaxEntries:          r.config.MaxEntries,
		MaxAge:              r.config.MaxAge(),
		MaxStoredBytes:      r.config.MaxStoredBytes,
		MaxDataPreviewBytes: r.config.MaxDataPreviewBytes,
		StorageKey:          r.config.StorageKey,
	}, r.logger)
}

// Buffer returns the process's log buffer.
func (r *Runtime) Buffer() *logbuf.Buffer { return r.buf }

// Gate returns the process-wide durability gate.
func (r *Runtime) Gate() *logbuf.Gate { return r.gate }

// Store returns the underlying slot store.
func (r *Runtime) Store() *pebblestore.DB { return r.db }

// Config returns the effective configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple storage probe.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.db.UsedBytes()
	return err
}

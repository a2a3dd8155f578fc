package logbuf

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/psukit/diaglog/internal/storage"

	logpkg "github.com/psukit/diaglog/pkg/log"
)

// Config fixes a Buffer's retention and persistence limits at construction.
type Config struct {
	// Enabled controls whether logging is active at all. When false every
	// operation is a no-op and nothing is read, written, or retained.
	Enabled bool
	// MaxEntries caps the in-memory sequence length.
	MaxEntries int
	// MaxAge drops entries older than this ceiling.
	MaxAge time.Duration
	// MaxStoredBytes caps the serialized form written to the durable slot.
	MaxStoredBytes int
	// MaxDataPreviewBytes caps a single payload's serialized size before it
	// is replaced with a truncated preview.
	MaxDataPreviewBytes int
	// StorageKey is the durable slot the history is written under.
	StorageKey string
}

// Buffer is the diagnostic log facade: ingest, retrieve, clear, export. It
// owns the in-memory entry sequence and orchestrates sanitization, retention,
// and budgeted persistence on every ingestion.
//
// All public operations are cheap and non-blocking; a single mutex guards
// each of them.
type Buffer struct {
	mu    sync.Mutex
	cfg   Config
	store storage.Store
	gate  *Gate
	sink  logpkg.Logger

	entries []Entry
	// storageEnabled is instance-local: a corrupt load or a failed clear
	// disables persistence for this Buffer without tripping the process-wide
	// gate. True to false only, never back.
	storageEnabled bool

	now func() time.Time
}

// Open constructs a Buffer. If enabled, existing durable state is loaded,
// pruned, and proactively trimmed to the byte budget before being accepted
// into memory. A gate tripped earlier in the process is observed here:
// persistence starts disabled.
func Open(store storage.Store, gate *Gate, cfg Config, sink logpkg.Logger) *Buffer {
	if gate == nil {
		gate = NewGate(nil)
	}
	if sink == nil {
		sink = logpkg.NewLogger()
	}
	b := &Buffer{
		cfg:            cfg,
		store:          store,
		gate:           gate,
		sink:           sink.With(logpkg.Component("logbuf")),
		storageEnabled: cfg.Enabled && store != nil && !gate.Tripped(),
		now:            time.Now,
	}
	if b.cfg.Enabled {
		b.load()
	}
	return b
}

// load pulls prior history from the durable slot. A corrupt payload disables
// storage for this instance and best-effort removes the slot; the in-memory
// log starts empty.
func (b *Buffer) load() {
	if !b.storageEnabled {
		return
	}
	raw, ok := b.store.Get(b.cfg.StorageKey)
	if !ok {
		return
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		b.storageEnabled = false
		_ = b.store.Remove(b.cfg.StorageKey)
		b.sink.Warn("discarding corrupt log history", logpkg.Err(err))
		return
	}
	entries = Prune(entries, b.now(), b.cfg.MaxAge, b.cfg.MaxEntries)
	if raw2, err := json.Marshal(entries); err == nil && len(raw2) > b.cfg.MaxStoredBytes {
		entries = tail(entries, shrinkTarget(len(entries), len(raw2), b.cfg.MaxStoredBytes))
	}
	b.entries = entries
}

// Ingest records one diagnostic entry: sanitize the payload, append, prune,
// persist under budget, and mirror to the sink regardless of persistence
// outcome. No-op when the buffer is disabled.
func (b *Buffer) Ingest(level Level, category, message string, data any) {
	if !b.cfg.Enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	e := Entry{
		Timestamp: b.now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Category:  category,
		Message:   message,
		Data:      Sanitize(data, b.cfg.MaxDataPreviewBytes),
	}
	b.entries = append(b.entries, e)
	b.entries = Prune(b.entries, b.now(), b.cfg.MaxAge, b.cfg.MaxEntries)

	if b.storageEnabled && !b.gate.Tripped() {
		kept, status := b.persist(b.entries)
		if status != PersistDisabled {
			b.entries = kept
		}
	}

	b.mirror(e, data)
}

// mirror emits the entry to the side-channel sink with the raw, pre-sanitized
// payload for local inspection.
func (b *Buffer) mirror(e Entry, rawData any) {
	fields := []logpkg.Field{logpkg.Str("category", e.Category)}
	if rawData != nil {
		fields = append(fields, logpkg.Any("data", rawData))
	}
	switch e.Level {
	case LevelDebug:
		b.sink.Debug(e.Message, fields...)
	case LevelWarn:
		b.sink.Warn(e.Message, fields...)
	case LevelError:
		b.sink.Error(e.Message, fields...)
	default:
		b.sink.Info(e.Message, fields...)
	}
}

// Entries returns a defensive copy of the retained sequence, oldest first.
// Empty when the buffer is disabled.
func (b *Buffer) Entries() []Entry {
	if !b.cfg.Enabled {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len reports the number of retained entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// StorageEnabled reports whether this instance still attempts durable writes.
func (b *Buffer) StorageEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.storageEnabled && !b.gate.Tripped()
}

// Clear empties the in-memory sequence and best-effort removes the durable
// slot. A removal failure disables storage for this instance only; clearing
// is not evidence the store itself is broken, so the process-wide gate stays
// untouched.
func (b *Buffer) Clear() {
	if !b.cfg.Enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
	if b.storageEnabled && !b.gate.Tripped() {
		if err := b.store.Remove(b.cfg.StorageKey); err != nil {
			b.storageEnabled = false
			b.sink.Warn("durable log storage disabled for this instance", logpkg.Err(err))
		}
	}
}

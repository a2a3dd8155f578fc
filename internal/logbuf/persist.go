package logbuf

import (
	"encoding/json"
	"errors"

	"github.com/psukit/diaglog/internal/storage"

	logpkg "github.com/psukit/diaglog/pkg/log"
)

// PersistStatus reports the outcome of a persistence attempt.
type PersistStatus int

const (
	// PersistOK: the full retained sequence was written within budget.
	PersistOK PersistStatus = iota
	// PersistDegraded: a trimmed sequence was written; memory was truncated
	// to match.
	PersistDegraded
	// PersistDisabled: no write happened; the gate is tripped or storage is
	// off for this instance.
	PersistDisabled
)

// String returns the status name.
func (s PersistStatus) String() string {
	switch s {
	case PersistOK:
		return "ok"
	case PersistDegraded:
		return "degraded"
	case PersistDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// minPersistEntries is the fixed floor for progressive trimming. Clamping the
// proportional target here avoids a degenerate always-failing loop when the
// overflow ratio is extreme (one gigantic payload entry).
const minPersistEntries = 50

// shrinkTarget computes how many of the most recent entries to keep when the
// serialized sequence overflows the byte budget. Proportional to the overflow
// ratio, floored, clamped to [minPersistEntries, n].
func shrinkTarget(n, serializedLen, maxBytes int) int {
	if serializedLen <= 0 {
		return n
	}
	t := n * maxBytes / serializedLen
	if t < minPersistEntries {
		t = minPersistEntries
	}
	if t > n {
		t = n
	}
	return t
}

// persist writes entries to the durable slot under the byte budget, trimming
// progressively on overflow or quota refusal. It returns the sequence the
// buffer should retain (on a degraded write, memory adopts the truncation so
// durable and in-memory state stay consistent) and the outcome status.
//
// A non-quota store failure at any tier is treated as unrecoverable and trips
// the gate, matching the store contract: quota refusals are the only failures
// trimming can fix.
//
// Caller holds b.mu.
func (b *Buffer) persist(entries []Entry) ([]Entry, PersistStatus) {
	if !b.storageEnabled || b.gate.Tripped() {
		return entries, PersistDisabled
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		// Entries hold only sanitized Data; this cannot practically happen.
		return entries, PersistDisabled
	}

	// Tier 1: full sequence, only if it fits the budget.
	if len(raw) <= b.cfg.MaxStoredBytes {
		err := b.store.Set(b.cfg.StorageKey, raw)
		if err == nil {
			return entries, PersistOK
		}
		if !errors.Is(err, storage.ErrQuotaExceeded) {
			b.tripGate(err)
			return entries, PersistDisabled
		}
	}

	// Tier 2: shrink proportionally to the overflow ratio and retry.
	target := shrinkTarget(len(entries), len(raw), b.cfg.MaxStoredBytes)
	trimmed := tail(entries, target)
	err = b.tryWrite(trimmed)
	if err == nil {
		return trimmed, PersistDegraded
	}
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		b.tripGate(err)
		return entries, PersistDisabled
	}

	// Tier 3: fixed minimal floor, one last attempt.
	floor := tail(entries, minPersistEntries)
	err = b.tryWrite(floor)
	if err == nil {
		return floor, PersistDegraded
	}
	b.tripGate(err)
	return entries, PersistDisabled
}

// tryWrite serializes and writes a trimmed sequence. A payload still over
// budget counts as a quota refusal without touching the store, which keeps
// the invariant that everything durably written fits MaxStoredBytes.
func (b *Buffer) tryWrite(entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if len(raw) > b.cfg.MaxStoredBytes {
		return storage.ErrQuotaExceeded
	}
	return b.store.Set(b.cfg.StorageKey, raw)
}

// tripGate escalates an unrecoverable persistence failure. The gate's trip
// hook best-effort clears the durable slot; the single warning is emitted
// here, on the instance that observed the failure.
func (b *Buffer) tripGate(cause error) {
	b.gate.Trip(cause.Error())
	b.storageEnabled = false
	b.sink.Warn("durable log storage disabled for this process", logpkg.Err(cause))
}

// Package storage defines the durable slot-store contract consumed by the
// log buffer. A slot store maps string keys to opaque byte values and may
// refuse writes that would exceed its capacity.
package storage

import "errors"

// ErrQuotaExceeded is returned by Store.Set when accepting the value would
// exceed the store's byte capacity. Any other Set error means the store is
// unavailable for a non-quota reason.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// Store is the minimal durable key-value surface the log buffer relies on.
//
// Get reports absence rather than failing: a value that cannot be read is
// indistinguishable from one that was never written.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Remove(key string) error
}

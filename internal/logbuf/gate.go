package logbuf

import "sync/atomic"

// Gate is the process-wide durability latch. Once tripped, no Buffer in the
// process attempts another durable write; a Buffer constructed after the trip
// starts with persistence already disabled rather than re-probing a store
// proven broken.
//
// The latch is monotonic: it transitions untripped to tripped exactly once
// and never resets within a process lifetime.
type Gate struct {
	tripped atomic.Bool
	onTrip  func(reason string)
}

// NewGate creates an untripped Gate. onTrip, if non-nil, runs exactly once on
// the first Trip call; the composition root uses it to best-effort remove the
// durable slot and emit a single warning. onTrip must not fail: the gate is
// the terminal failure path.
func NewGate(onTrip func(reason string)) *Gate {
	return &Gate{onTrip: onTrip}
}

// Trip permanently disables durable writes process-wide. Idempotent: calls
// after the first are no-ops, with no repeated cleanup or warnings.
func (g *Gate) Trip(reason string) {
	if !g.tripped.CompareAndSwap(false, true) {
		return
	}
	if g.onTrip != nil {
		g.onTrip(reason)
	}
}

// Tripped reports whether the gate has tripped.
func (g *Gate) Tripped() bool {
	return g.tripped.Load()
}

// Package logbuf implements diaglog's bounded, persistent, quota-aware
// diagnostic log buffer.
//
// # Overview
//
// A Buffer accumulates structured diagnostic entries in memory and mirrors
// them to a durable slot store (storage.Store). Three independent retention
// limits apply: entry count, entry age, and the serialized byte budget of
// what is written durably. When the store refuses writes, persistence
// degrades progressively:
//
//  1. write the full retained history if it fits the byte budget
//  2. shrink proportionally to the overflow ratio (never below 50 entries)
//     and retry
//  3. fall back to the most recent 50 entries and retry once more
//
// If the minimal floor still cannot be written, the process-wide Gate trips:
// the durable slot is removed and no instance in the process attempts another
// write. The buffer keeps operating purely in memory; ingestion, retrieval,
// clear, and export are unaffected.
//
// API surface (internal)
//
//	gate := logbuf.NewGate(cleanup)
//	b := logbuf.Open(store, gate, cfg, sink)
//	b.Ingest(logbuf.LevelInfo, "power", "rail up", map[string]int{"mv": 3300})
//	entries := b.Entries()
//	text := b.Export()
//	b.Clear()
//
// No operation returns an error: every failure path terminates in a marker
// value, a disabled flag, or a diagnostic message on the sink.
package logbuf

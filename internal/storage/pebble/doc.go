// Package pebblestore implements the durable slot store over Pebble with
// fsync policy, a byte quota, and minimal metrics hooks.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir:    "./data",
//	    Fsync:      pebblestore.FsyncModeInterval,
//	    QuotaBytes: 256 << 10,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	// Slot ops
//	err = db.Set("diaglog/entries", payload) // storage.ErrQuotaExceeded when full
//	v, ok := db.Get("diaglog/entries")
//	_ = db.Remove("diaglog/entries")
//
// The quota is enforced by the wrapper over total value bytes, not by Pebble
// itself: the store stands in for a small bounded slot (think browser
// localStorage), so Set refuses rather than grow without bound.
package pebblestore

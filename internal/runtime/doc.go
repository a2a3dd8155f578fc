// Package runtime is diaglog's composition root: it opens the Pebble slot
// store, constructs the single process-wide durability gate, and wires both
// into the log buffer with the effective configuration.
package runtime

// Package cli assembles the diaglog Cobra command tree: ingest, dump,
// export, clear, and status, all operating against the local data directory.
package cli

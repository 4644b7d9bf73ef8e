// Package store records generated IR in SQLite so later runs can be
// checked against it.
//
// A run is one invocation of the generator. Every statement produced in
// a run is stored with its translation unit (library and file), its
// canonical payload and the payload's content hash.
//
// # Ordering
//
// Runs and statements carry a logical seq from a Sequencer. All reads
// order by seq, never by wall time, so snapshots read back identically.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Statements must belong to a run
package store

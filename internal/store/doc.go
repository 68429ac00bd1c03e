// Package store provides SQLite-backed storage for calculator session journals.
//
// The journal is append-only:
//   - sessions: one row per session with the settings it ran under
//   - inputs: every key press with the display that followed it
//   - history: every entry emitted by "="
//
// Writes are idempotent (ON CONFLICT DO NOTHING). Inputs are read back in seq
// order, exactly as they were played; history is read newest first.
// The journal is an audit trail for replay; nothing restores engine state from it.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store

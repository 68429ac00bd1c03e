// Package journal defines the records a calculator session leaves behind and
// their canonical encoding.
//
// journal imports nothing internal; store and session build on it.
//
// Key constraints:
//   - Ordering uses the logical seq counter, never wall-clock time
//   - All JSON tags use snake_case
//   - Digests are SHA-256 over RFC 8785 canonical JSON with domain separation,
//     so a replayed session produces the same digest as the original
package journal

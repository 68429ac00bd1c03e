// Package session wires the input source, the calculator engine and the
// display adapter together for one session, and optionally journals every
// step through a Recorder.
//
// A Session is the unit of exclusive ownership for an engine: Press serializes
// callers so each key runs to completion before the next one starts, and the
// display only ever reads engine output after a call has finished.
//
// Every key press is stamped with a seq number from a logical clock. Sessions
// fed the same keys under the same settings produce identical transcripts,
// which is what Replay checks.
package session

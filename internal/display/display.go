// Package display is the view side of the calculator: it renders the current
// value verbatim and keeps the capped history panel.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/abacus/internal/calc"
)

// Adapter holds what the screen shows. It only ever reads engine output.
type Adapter struct {
	value       string
	history     *calc.History
	showHistory bool
}

// New creates an adapter showing "0" with an empty, hidden history panel.
func New(historySize int) *Adapter {
	return &Adapter{
		value:   "0",
		history: calc.NewHistory(historySize),
	}
}

// Render replaces the displayed value.
func (a *Adapter) Render(value string) {
	a.value = value
}

// Record prepends a history entry, evicting the oldest past capacity.
func (a *Adapter) Record(e calc.Entry) (evicted calc.Entry, ok bool) {
	return a.history.Add(e)
}

// ToggleHistory flips history panel visibility and returns the new state.
func (a *Adapter) ToggleHistory() bool {
	a.showHistory = !a.showHistory
	return a.showHistory
}

// Value returns the displayed value.
func (a *Adapter) Value() string { return a.value }

// History returns the history entries, most recent first.
func (a *Adapter) History() []calc.Entry { return a.history.Entries() }

// HistoryVisible reports whether the history panel is shown.
func (a *Adapter) HistoryVisible() bool { return a.showHistory }

// Snapshot is a serializable copy of the screen.
type Snapshot struct {
	Value       string   `json:"value"`
	History     []string `json:"history"`
	ShowHistory bool     `json:"show_history"`
}

// Snapshot returns the current screen contents.
func (a *Adapter) Snapshot() Snapshot {
	entries := a.history.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return Snapshot{
		Value:       a.value,
		History:     lines,
		ShowHistory: a.showHistory,
	}
}

// WriteTo renders the screen as text: the value, then the history panel when
// it is visible.
func (a *Adapter) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintln(&b, a.value)
	if a.showHistory {
		b.WriteString(FormatHistory(a.history.Entries()))
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// FormatHistory renders entries one per line, or a placeholder when empty.
func FormatHistory(entries []calc.Entry) string {
	if len(entries) == 0 {
		return "  (no history)\n"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "  %s\n", e)
	}
	return b.String()
}

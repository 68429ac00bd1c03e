package harness

import (
	"github.com/roach88/abacus/internal/calc"
	"github.com/roach88/abacus/internal/display"
)

// TraceEvent is one key press as read back from the journal.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Key     string `json:"key"`
	Token   string `json:"token,omitempty"`
	Display string `json:"display"`
	Entry   string `json:"entry,omitempty"` // "expression = result" when "=" evaluated
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass is true if every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every key press in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Screen is the final display snapshot.
	Screen display.Snapshot `json:"screen"`

	// State is the final engine state.
	State calc.State `json:"state"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

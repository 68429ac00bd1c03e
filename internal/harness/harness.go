package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/abacus/internal/config"
	"github.com/roach88/abacus/internal/journal"
	"github.com/roach88/abacus/internal/session"
	"github.com/roach88/abacus/internal/store"
)

// SessionID is the fixed session ID every scenario runs under.
const SessionID = "scenario-session"

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Create a fresh in-memory journal
//  2. Start a session with the scenario's config and a fixed ID
//  3. Press each step's keys, checking the step's expected display
//  4. Read the trace back from the journal
//  5. Evaluate assertions against the final display and state
//
// An error is returned only when the scenario could not be executed;
// failed expectations are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()

	sess, err := session.New(ctx, scenarioConfig(scenario),
		session.WithRecorder(st),
		session.WithIDGenerator(session.NewFixedGenerator(SessionID)),
		session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), // Suppress logs in tests
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	result := NewResult()

	for i, step := range scenario.Steps {
		keys := sess.Keymap().Split(step.Keys...)
		steps, err := sess.PressAll(ctx, keys)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		if step.Display == nil {
			continue
		}
		got := sess.Snapshot().Value
		if len(steps) > 0 {
			got = steps[len(steps)-1].Display
		}
		if got != *step.Display {
			result.AddError(fmt.Sprintf("steps[%d] %v: display = %q, expected %q", i, step.Keys, got, *step.Display))
		}
	}

	trace, err := readTrace(ctx, st, sess.ID())
	if err != nil {
		return nil, err
	}
	result.Trace = trace
	result.Screen = sess.Snapshot()
	result.State = sess.State()

	for _, assertion := range scenario.Assertions {
		if err := checkAssertion(result, assertion); err != nil {
			result.AddError(err.Error())
		}
	}

	return result, nil
}

func scenarioConfig(s *Scenario) config.Config {
	cfg := config.Default()
	if s.Config == nil {
		return cfg
	}
	if s.Config.HistorySize > 0 {
		cfg.HistorySize = s.Config.HistorySize
	}
	if s.Config.Precision != nil {
		cfg.Precision = *s.Config.Precision
	}
	for k, v := range s.Config.Keys {
		cfg.Keys[k] = v
	}
	return cfg
}

// readTrace joins a session's inputs and history entries by seq.
func readTrace(ctx context.Context, st *store.Store, sessionID string) ([]TraceEvent, error) {
	inputs, err := st.ReadInputs(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	history, err := st.ReadHistory(ctx, sessionID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	entries := make(map[int64]journal.HistoryRecord, len(history))
	for _, rec := range history {
		entries[rec.Seq] = rec
	}

	trace := make([]TraceEvent, 0, len(inputs))
	for _, in := range inputs {
		event := TraceEvent{
			Seq:     in.Seq,
			Key:     in.Key,
			Token:   in.Token,
			Display: in.Display,
		}
		if rec, ok := entries[in.Seq]; ok {
			event.Entry = rec.Expression + " = " + rec.Result
		}
		trace = append(trace, event)
	}
	return trace, nil
}

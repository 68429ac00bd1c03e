package session

import (
	"context"
	"fmt"

	"github.com/roach88/abacus/internal/calc"
	"github.com/roach88/abacus/internal/config"
	"github.com/roach88/abacus/internal/journal"
	"github.com/roach88/abacus/internal/keymap"
)

// Divergence is a recorded step that replayed differently.
type Divergence struct {
	Seq      int64  `json:"seq"`
	Key      string `json:"key"`
	Field    string `json:"field"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

// ReplayResult reports whether a recorded session reproduces.
type ReplayResult struct {
	SessionID      string       `json:"session_id"`
	Steps          int          `json:"steps"`
	RecordedDigest string       `json:"recorded_digest"`
	ReplayedDigest string       `json:"replayed_digest"`
	Divergences    []Divergence `json:"divergences,omitempty"`
}

// Match reports whether the replay reproduced every step.
func (r *ReplayResult) Match() bool {
	return len(r.Divergences) == 0 && r.RecordedDigest == r.ReplayedDigest
}

// Replay re-feeds recorded inputs into a fresh, unrecorded session configured
// like the original and compares every step.
//
// Recorded tokens are applied directly, so custom key bindings of the original
// session do not need to be configured again. Keys recorded without a token go
// through the default keymap (history toggles, ignored keys).
func Replay(ctx context.Context, sess journal.Session, inputs []journal.Input, opts ...Option) (*ReplayResult, error) {
	recordedDigest, err := journal.Digest(inputs)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", sess.ID, err)
	}

	cfg := config.Default()
	cfg.HistorySize = sess.HistorySize
	cfg.Precision = sess.Precision

	// the replay session is never journaled
	opts = append(opts, WithIDGenerator(NewFixedGenerator("replay-"+sess.ID)), WithRecorder(nil))
	replayed, err := New(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", sess.ID, err)
	}

	result := &ReplayResult{
		SessionID:      sess.ID,
		Steps:          len(inputs),
		RecordedDigest: recordedDigest,
	}

	defaults := keymap.Default()
	for _, in := range inputs {
		binding := defaults.Lookup(in.Key)
		if in.Token != "" {
			binding = keymap.Binding{Action: keymap.ActionToken, Token: calc.Token(in.Token)}
		}

		replayed.mu.Lock()
		step, err := replayed.apply(ctx, in.Key, binding)
		replayed.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("replay %s: %w", sess.ID, err)
		}

		if step.Seq != in.Seq {
			result.Divergences = append(result.Divergences, Divergence{
				Seq: in.Seq, Key: in.Key, Field: "seq",
				Recorded: fmt.Sprint(in.Seq), Replayed: fmt.Sprint(step.Seq),
			})
		}
		if string(step.Token) != in.Token {
			result.Divergences = append(result.Divergences, Divergence{
				Seq: in.Seq, Key: in.Key, Field: "token",
				Recorded: in.Token, Replayed: string(step.Token),
			})
		}
		if step.Display != in.Display {
			result.Divergences = append(result.Divergences, Divergence{
				Seq: in.Seq, Key: in.Key, Field: "display",
				Recorded: in.Display, Replayed: step.Display,
			})
		}
	}

	result.ReplayedDigest, err = replayed.Digest()
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", sess.ID, err)
	}

	replayed.logger.Debug("replay finished", "steps", result.Steps, "divergences", len(result.Divergences))
	return result, nil
}

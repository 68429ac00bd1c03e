package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/abacus/internal/calc"
	"github.com/roach88/abacus/internal/config"
	"github.com/roach88/abacus/internal/display"
	"github.com/roach88/abacus/internal/journal"
	"github.com/roach88/abacus/internal/keymap"
)

// Recorder persists a session journal. *store.Store implements it.
type Recorder interface {
	WriteSession(ctx context.Context, sess journal.Session) error
	WriteInput(ctx context.Context, in journal.Input) error
	WriteHistory(ctx context.Context, rec journal.HistoryRecord) error
}

// Step is the result of one key press.
type Step struct {
	Seq     int64         `json:"seq"`
	Key     string        `json:"key"`
	Action  keymap.Action `json:"-"`
	Token   calc.Token    `json:"token,omitempty"`
	Display string        `json:"display"`
	Entry   *calc.Entry   `json:"entry,omitempty"`
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder journals every step through r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithIDGenerator overrides how the session ID is generated.
// Defaults to UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Session) { s.idGen = g }
}

// Session owns one engine and one display for its lifetime.
type Session struct {
	mu sync.Mutex

	id      string
	cfg     config.Config
	engine  *calc.Engine
	display *display.Adapter
	keys    *keymap.Keymap
	clock   *Clock

	recorder Recorder
	logger   *slog.Logger
	idGen    IDGenerator

	transcript []journal.Input

	// recordErr is the first recorder failure. Once set the session rejects
	// further keys so the journal stays a prefix of what was played.
	recordErr error
}

// ErrJournalBehind is returned by Press after a recorder failure.
var ErrJournalBehind = errors.New("session is ahead of its journal")

// New creates a session with the given settings. If a recorder is configured
// the session record is written before New returns.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Session, error) {
	keys, err := keymap.New(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		cfg:     cfg,
		engine:  calc.New(calc.WithPrecision(cfg.Precision)),
		display: display.New(cfg.HistorySize),
		keys:    keys,
		clock:   NewClock(),
		logger:  slog.Default(),
		idGen:   UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.id = s.idGen.Generate()
	s.logger = s.logger.With("session", s.id)

	if s.recorder != nil {
		err := s.recorder.WriteSession(ctx, journal.Session{
			ID:            s.id,
			HistorySize:   cfg.HistorySize,
			Precision:     s.engine.Precision(),
			EngineVersion: journal.EngineVersion,
		})
		if err != nil {
			return nil, fmt.Errorf("new session: %w", err)
		}
	}

	s.logger.Debug("session started", "history_size", cfg.HistorySize, "precision", s.engine.Precision())
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Keymap returns the session's keymap.
func (s *Session) Keymap() *keymap.Keymap { return s.keys }

// Press resolves one key and applies it.
//
// A recorder error leaves the engine and display one step ahead of the
// journal. The step is returned with the error and every later Press fails
// with ErrJournalBehind; Transcript keeps only what the journal accepted.
func (s *Session) Press(ctx context.Context, key string) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordErr != nil {
		return Step{}, fmt.Errorf("press %q: %w: %w", key, ErrJournalBehind, s.recordErr)
	}
	step, err := s.apply(ctx, key, s.keys.Lookup(key))
	if err != nil {
		s.recordErr = err
	}
	return step, err
}

// PressAll presses keys in order, stopping at the first recorder error.
func (s *Session) PressAll(ctx context.Context, keys []string) ([]Step, error) {
	steps := make([]Step, 0, len(keys))
	for _, key := range keys {
		step, err := s.Press(ctx, key)
		if err != nil {
			return steps, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// apply must be called with s.mu held.
func (s *Session) apply(ctx context.Context, key string, b keymap.Binding) (Step, error) {
	step := Step{
		Seq:    s.clock.Next(),
		Key:    key,
		Action: b.Action,
	}

	switch b.Action {
	case keymap.ActionToken:
		out := s.engine.HandleInput(b.Token)
		s.display.Render(out.Display)
		step.Token = b.Token
		if out.Entry != nil {
			step.Entry = out.Entry
			if evicted, ok := s.display.Record(*out.Entry); ok {
				s.logger.Debug("history entry evicted", "expression", evicted.Expression)
			}
			s.logger.Info("evaluated", "expression", out.Entry.Expression, "result", out.Entry.Result)
		}
	case keymap.ActionToggleHistory:
		visible := s.display.ToggleHistory()
		s.logger.Debug("history panel toggled", "visible", visible)
	default:
		s.logger.Debug("key ignored", "key", key)
	}

	step.Display = s.display.Value()

	in := journal.Input{
		SessionID: s.id,
		Seq:       step.Seq,
		Key:       key,
		Token:     string(step.Token),
		Display:   step.Display,
	}
	s.logger.Debug("key applied", "seq", step.Seq, "key", key, "token", step.Token, "display", step.Display)

	if s.recorder == nil {
		s.transcript = append(s.transcript, in)
		return step, nil
	}
	if err := s.recorder.WriteInput(ctx, in); err != nil {
		return step, fmt.Errorf("record seq %d: %w", step.Seq, err)
	}
	s.transcript = append(s.transcript, in)
	if step.Entry != nil {
		err := s.recorder.WriteHistory(ctx, journal.HistoryRecord{
			SessionID:  s.id,
			Seq:        step.Seq,
			Expression: step.Entry.Expression,
			Result:     step.Entry.Result,
		})
		if err != nil {
			return step, fmt.Errorf("record seq %d: %w", step.Seq, err)
		}
	}
	return step, nil
}

// State returns a copy of the engine state.
func (s *Session) State() calc.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Snapshot returns what the display currently shows.
func (s *Session) Snapshot() display.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display.Snapshot()
}

// History returns the displayed history entries, most recent first.
func (s *Session) History() []calc.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display.History()
}

// Transcript returns a copy of every input applied so far.
func (s *Session) Transcript() []journal.Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]journal.Input, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Digest hashes the transcript.
func (s *Session) Digest() (string, error) {
	return journal.Digest(s.Transcript())
}

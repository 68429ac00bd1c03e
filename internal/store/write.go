package store

import (
	"context"
	"fmt"

	"github.com/roach88/abacus/internal/journal"
)

// WriteSession inserts a session record. Writing the same ID twice is a no-op.
func (s *Store) WriteSession(ctx context.Context, sess journal.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, history_size, precision, engine_version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.HistorySize,
		sess.Precision,
		sess.EngineVersion,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteInput appends a key press to a session's journal.
// The session must already exist (foreign key constraint).
func (s *Store) WriteInput(ctx context.Context, in journal.Input) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inputs (session_id, seq, key, token, display)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		in.SessionID,
		in.Seq,
		in.Key,
		in.Token,
		in.Display,
	)
	if err != nil {
		return fmt.Errorf("write input: %w", err)
	}
	return nil
}

// WriteHistory appends a history entry to a session's journal.
func (s *Store) WriteHistory(ctx context.Context, rec journal.HistoryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (session_id, seq, expression, result)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		rec.SessionID,
		rec.Seq,
		rec.Expression,
		rec.Result,
	)
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

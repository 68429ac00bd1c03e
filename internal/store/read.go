package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/abacus/internal/journal"
)

// ReadSession returns the session record, or ErrSessionNotFound.
func (s *Store) ReadSession(ctx context.Context, id string) (journal.Session, error) {
	var sess journal.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, history_size, precision, engine_version
		FROM sessions
		WHERE id = ?
	`, id).Scan(&sess.ID, &sess.HistorySize, &sess.Precision, &sess.EngineVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Session{}, fmt.Errorf("read session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return journal.Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return sess, nil
}

// ListSessions returns all sessions ordered by ID. UUIDv7 IDs sort by creation time.
func (s *Store) ListSessions(ctx context.Context) ([]journal.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, history_size, precision, engine_version
		FROM sessions
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []journal.Session{}
	for rows.Next() {
		var sess journal.Session
		if err := rows.Scan(&sess.ID, &sess.HistorySize, &sess.Precision, &sess.EngineVersion); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadInputs returns a session's key presses in the order they were made.
// Returns an empty slice (not nil) if the session has no inputs.
func (s *Store) ReadInputs(ctx context.Context, sessionID string) ([]journal.Input, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, key, token, display
		FROM inputs
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query inputs: %w", err)
	}
	defer rows.Close()

	inputs := []journal.Input{}
	for rows.Next() {
		var in journal.Input
		if err := rows.Scan(&in.SessionID, &in.Seq, &in.Key, &in.Token, &in.Display); err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		inputs = append(inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inputs: %w", err)
	}
	return inputs, nil
}

// ReadHistory returns a session's history entries newest first.
// A limit <= 0 returns every entry.
func (s *Store) ReadHistory(ctx context.Context, sessionID string, limit int) ([]journal.HistoryRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, expression, result
		FROM history
		WHERE session_id = ?
		ORDER BY seq DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := []journal.HistoryRecord{}
	for rows.Next() {
		var rec journal.HistoryRecord
		if err := rows.Scan(&rec.SessionID, &rec.Seq, &rec.Expression, &rec.Result); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/abacus/internal/journal"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession writes a session with default settings.
func createTestSession(t *testing.T, s *Store, id string) journal.Session {
	t.Helper()
	sess := journal.Session{
		ID:            id,
		HistorySize:   5,
		Precision:     8,
		EngineVersion: journal.EngineVersion,
	}
	if err := s.WriteSession(context.Background(), sess); err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}
	return sess
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/abacus/internal/journal"
)

func TestWriteSession_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	sess := createTestSession(t, s, "sess-1")
	require.NoError(t, s.WriteSession(ctx, sess))

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestWriteInput_RequiresSession(t *testing.T) {
	s := createTestStore(t)

	err := s.WriteInput(context.Background(), journal.Input{
		SessionID: "missing",
		Seq:       1,
		Key:       "1",
		Token:     "1",
		Display:   "1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write input")
}

func TestWriteInput_DuplicateSeqIgnored(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "sess-1")

	first := journal.Input{SessionID: "sess-1", Seq: 1, Key: "1", Token: "1", Display: "1"}
	require.NoError(t, s.WriteInput(ctx, first))

	dup := first
	dup.Display = "changed"
	require.NoError(t, s.WriteInput(ctx, dup))

	inputs, err := s.ReadInputs(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, first, inputs[0])
}

func TestWriteHistory(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "sess-1")

	rec := journal.HistoryRecord{SessionID: "sess-1", Seq: 4, Expression: "2 / 0", Result: "Error"}
	require.NoError(t, s.WriteHistory(ctx, rec))

	records, err := s.ReadHistory(ctx, "sess-1", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestWriteContextCancelled(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.WriteSession(ctx, journal.Session{ID: "x", HistorySize: 5, Precision: 8, EngineVersion: "0"})
	require.Error(t, err)
}

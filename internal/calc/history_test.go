package calc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_MostRecentFirst(t *testing.T) {
	h := NewHistory(5)
	h.Add(Entry{Expression: "1 + 1", Result: "2"})
	h.Add(Entry{Expression: "2 + 2", Result: "4"})

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "2 + 2", entries[0].Expression)
	assert.Equal(t, "1 + 1", entries[1].Expression)
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := NewHistory(5)
	for i := 1; i <= 5; i++ {
		_, evicted := h.Add(Entry{Expression: fmt.Sprintf("%d + 0", i), Result: fmt.Sprint(i)})
		assert.False(t, evicted)
	}

	old, evicted := h.Add(Entry{Expression: "6 + 0", Result: "6"})
	require.True(t, evicted)
	assert.Equal(t, "1 + 0", old.Expression)

	entries := h.Entries()
	require.Len(t, entries, 5)
	want := []string{"6", "5", "4", "3", "2"}
	for i, e := range entries {
		assert.Equal(t, want[i], e.Result)
	}
}

func TestHistory_SixEvaluationsThroughEngine(t *testing.T) {
	e := New()
	h := NewHistory(DefaultHistorySize)

	for i := 1; i <= 6; i++ {
		for _, entry := range press(e, fmt.Sprintf("%d+1=", i)) {
			h.Add(entry)
		}
	}

	entries := h.Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, Entry{Expression: "6 + 1", Result: "7"}, entries[0])
	assert.Equal(t, Entry{Expression: "2 + 1", Result: "3"}, entries[4])
	for _, entry := range entries {
		assert.NotEqual(t, "1 + 1", entry.Expression)
	}
}

func TestHistory_EntriesIsCopy(t *testing.T) {
	h := NewHistory(2)
	h.Add(Entry{Expression: "a", Result: "b"})
	entries := h.Entries()
	entries[0].Result = "mutated"
	assert.Equal(t, "b", h.Entries()[0].Result)
}

func TestHistory_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultHistorySize, NewHistory(0).Cap())
	assert.Equal(t, DefaultHistorySize, NewHistory(-3).Cap())
	assert.Equal(t, 9, NewHistory(9).Cap())
}

func TestEntry_String(t *testing.T) {
	assert.Equal(t, "2 / 0 = Error", Entry{Expression: "2 / 0", Result: "Error"}.String())
}

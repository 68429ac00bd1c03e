package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/abacus/internal/calc"
)

func TestAdapter_RendersVerbatim(t *testing.T) {
	a := New(5)
	assert.Equal(t, "0", a.Value())

	for _, v := range []string{"0.", ".", "Error", "1e-8", "-Infinity"} {
		a.Render(v)
		assert.Equal(t, v, a.Value())
	}
}

func TestAdapter_HistoryCapped(t *testing.T) {
	a := New(2)
	a.Record(calc.Entry{Expression: "1 + 1", Result: "2"})
	a.Record(calc.Entry{Expression: "2 + 2", Result: "4"})
	old, evicted := a.Record(calc.Entry{Expression: "3 + 3", Result: "6"})

	require.True(t, evicted)
	assert.Equal(t, "1 + 1", old.Expression)
	assert.Equal(t, []string{"3 + 3 = 6", "2 + 2 = 4"}, a.Snapshot().History)
}

func TestAdapter_ToggleHistory(t *testing.T) {
	a := New(5)
	assert.False(t, a.HistoryVisible())
	assert.True(t, a.ToggleHistory())
	assert.True(t, a.HistoryVisible())
	assert.False(t, a.ToggleHistory())
}

func TestAdapter_WriteTo(t *testing.T) {
	a := New(5)
	a.Render("4")
	a.Record(calc.Entry{Expression: "2 + 2", Result: "4"})

	var buf bytes.Buffer
	_, err := a.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "4\n", buf.String())

	a.ToggleHistory()
	buf.Reset()
	n, err := a.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "4\n  2 + 2 = 4\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}

func TestSnapshot_EmptyHistoryIsNotNil(t *testing.T) {
	s := New(5).Snapshot()
	assert.NotNil(t, s.History)
	assert.Empty(t, s.History)
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Equal(t, "  (no history)\n", FormatHistory(nil))
}

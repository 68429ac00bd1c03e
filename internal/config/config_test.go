package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5, cfg.HistorySize)
	assert.Equal(t, 8, cfg.Precision)
	assert.Empty(t, cfg.Keys)
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_EmptyFileTakesSchemaDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""), "empty.cue")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.HistorySize)
	assert.Equal(t, 8, cfg.Precision)
	assert.Empty(t, cfg.Keys)
}

func TestParse_Overrides(t *testing.T) {
	src := `
history_size: 10
precision:    4
keys: {
	"q": "C"
	"x": "*"
}
`
	cfg, err := Parse([]byte(src), "abacus.cue")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.HistorySize)
	assert.Equal(t, 4, cfg.Precision)
	assert.Equal(t, map[string]string{"q": "C", "x": "*"}, cfg.Keys)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"history too small", "history_size: 0"},
		{"history too large", "history_size: 1000"},
		{"precision negative", "precision: -1"},
		{"precision not int", `precision: "eight"`},
		{"unknown token", `keys: { "q": "sqrt" }`},
		{"unknown field", "theme: \"dark\""},
		{"syntax error", "history_size: {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.cue")
			require.Error(t, err)
		})
	}
}

func TestParse_ErrorCarriesPosition(t *testing.T) {
	_, err := Parse([]byte("precision: 4\nhistory_size: {\n"), "bad.cue")
	require.Error(t, err)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.True(t, cfgErr.Pos.IsValid())
	assert.Contains(t, err.Error(), "bad.cue")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abacus.cue")
	require.NoError(t, os.WriteFile(path, []byte("precision: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Precision)
	assert.Equal(t, 5, cfg.HistorySize)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestError_Format(t *testing.T) {
	err := &Error{Field: "precision", Message: "out of range"}
	assert.Equal(t, "precision: out of range", err.Error())
}

package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
config:
  precision: 0
  keys:
    "x": "*"
steps:
  - keys: ["2x3", "Enter"]
    display: "6"
assertions:
  - type: display
    value: "6"
  - type: history_len
    count: 1
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	require.NotNil(t, scenario.Config)
	require.NotNil(t, scenario.Config.Precision)
	assert.Equal(t, 0, *scenario.Config.Precision)
	assert.Equal(t, map[string]string{"x": "*"}, scenario.Config.Keys)
	require.Len(t, scenario.Steps, 1)
	assert.Equal(t, []string{"2x3", "Enter"}, scenario.Steps[0].Keys)
	require.NotNil(t, scenario.Steps[0].Display)
	assert.Equal(t, "6", *scenario.Steps[0].Display)
	assert.Len(t, scenario.Assertions, 2)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "has a typo"
steps:
  - keys: ["1"]
assertion:
  - type: display
    value: "1"
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nsteps: [{keys: ['1']}]\nassertions: [{type: display, value: '1'}]",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nsteps: [{keys: ['1']}]\nassertions: [{type: display, value: '1'}]",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			content: "name: n\ndescription: d\nassertions: [{type: display, value: '1'}]",
			wantErr: "steps list is required",
		},
		{
			name:    "empty keys",
			content: "name: n\ndescription: d\nsteps: [{keys: []}]\nassertions: [{type: display, value: '1'}]",
			wantErr: "steps[0]: keys is required",
		},
		{
			name:    "no assertions",
			content: "name: n\ndescription: d\nsteps: [{keys: ['1']}]",
			wantErr: "assertions list is required",
		},
		{
			name:    "unknown assertion type",
			content: "name: n\ndescription: d\nsteps: [{keys: ['1']}]\nassertions: [{type: final_state}]",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "display without value",
			content: "name: n\ndescription: d\nsteps: [{keys: ['1']}]\nassertions: [{type: display}]",
			wantErr: "value is required for display",
		},
		{
			name:    "history without entries",
			content: "name: n\ndescription: d\nsteps: [{keys: ['1']}]\nassertions: [{type: history}]",
			wantErr: "entries is required for history",
		},
		{
			name:    "history_len without count",
			content: "name: n\ndescription: d\nsteps: [{keys: ['1']}]\nassertions: [{type: history_len}]",
			wantErr: "count is required for history_len",
		},
		{
			name:    "state without state",
			content: "name: n\ndescription: d\nsteps: [{keys: ['1']}]\nassertions: [{type: state}]",
			wantErr: "state is required for state",
		},
		{
			name:    "precision out of range",
			content: "name: n\ndescription: d\nconfig: {precision: 20}\nsteps: [{keys: ['1']}]\nassertions: [{type: display, value: '1'}]",
			wantErr: "config.precision",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_EmptyHistoryEntriesAllowed(t *testing.T) {
	s, err := ParseScenario([]byte("name: n\ndescription: d\nsteps: [{keys: ['1']}]\nassertions: [{type: history, entries: []}]"))
	require.NoError(t, err)
	assert.NotNil(t, s.Assertions[0].Entries)
}

package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Golden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "scenario name should match file name")

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestMarshalTrace_Canonical(t *testing.T) {
	data, err := MarshalTrace("t", []TraceEvent{
		{Seq: 1, Key: "h", Display: "0"},
		{Seq: 2, Key: "=", Token: "=", Display: "0"},
	})
	require.NoError(t, err)
	assert.Equal(t,
		`{"scenario_name":"t","trace":[{"display":"0","key":"h","seq":1},{"display":"0","key":"=","seq":2,"token":"="}]}`,
		string(data))
}

func TestTraceDeterminism(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "history_bound.yaml"))
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalTrace(scenario.Name, first.Trace)
	require.NoError(t, err)
	b, err := MarshalTrace(scenario.Name, second.Trace)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config overrides the default settings for this scenario.
	Config *ScenarioConfig `yaml:"config,omitempty"`

	// Steps are pressed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final display, history and engine state.
	// Supported types: display, history, history_len, state
	Assertions []Assertion `yaml:"assertions"`
}

// ScenarioConfig mirrors the CUE config fields. Unset fields keep defaults.
type ScenarioConfig struct {
	HistorySize int               `yaml:"history_size,omitempty"`
	Precision   *int              `yaml:"precision,omitempty"`
	Keys        map[string]string `yaml:"keys,omitempty"`
}

// Step presses a group of keys.
type Step struct {
	// Keys are words split into individual key presses.
	Keys []string `yaml:"keys"`

	// Display, when set, is the expected display after the last key.
	Display *string `yaml:"display,omitempty"`
}

// Assertion validates the final state of a scenario run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "display": displayed value equals Value
	// - "history": rendered history lines equal Entries, most recent first
	// - "history_len": history holds exactly Count entries
	// - "state": engine state fields match State (unset fields are not checked)
	Type string `yaml:"type"`

	Value   string       `yaml:"value,omitempty"`
	Entries []string     `yaml:"entries,omitempty"`
	Count   *int         `yaml:"count,omitempty"`
	State   *StateExpect `yaml:"state,omitempty"`
}

// StateExpect is a partial engine state.
type StateExpect struct {
	CurrentInput  *string `yaml:"current_input,omitempty"`
	PreviousValue *string `yaml:"previous_value,omitempty"`
	Operator      *string `yaml:"operator,omitempty"`
	Waiting       *bool   `yaml:"waiting,omitempty"`
}

// Assertion type constants.
const (
	AssertDisplay    = "display"
	AssertHistory    = "history"
	AssertHistoryLen = "history_len"
	AssertState      = "state"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if c := s.Config; c != nil {
		if c.HistorySize < 0 {
			return fmt.Errorf("config.history_size must be positive")
		}
		if c.Precision != nil && (*c.Precision < 0 || *c.Precision > 15) {
			return fmt.Errorf("config.precision must be between 0 and 15")
		}
	}

	for i, step := range s.Steps {
		if len(step.Keys) == 0 {
			return fmt.Errorf("steps[%d]: keys is required", i)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertDisplay:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for display", index)
		}
	case AssertHistory:
		if a.Entries == nil {
			return fmt.Errorf("assertions[%d]: entries is required for history", index)
		}
	case AssertHistoryLen:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for history_len", index)
		}
	case AssertState:
		if a.State == nil {
			return fmt.Errorf("assertions[%d]: state is required for state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s: expected %s, actual %s", e.Type, e.Expected, e.Actual)
}

func checkAssertion(r *Result, a Assertion) error {
	switch a.Type {
	case AssertDisplay:
		if r.Screen.Value != a.Value {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%q", a.Value), Actual: fmt.Sprintf("%q", r.Screen.Value)}
		}
	case AssertHistory:
		if !equalLines(r.Screen.History, a.Entries) {
			return &AssertionError{Type: a.Type, Expected: formatLines(a.Entries), Actual: formatLines(r.Screen.History)}
		}
	case AssertHistoryLen:
		if len(r.Screen.History) != *a.Count {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprint(*a.Count), Actual: fmt.Sprint(len(r.Screen.History))}
		}
	case AssertState:
		return checkState(r, a.State)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func checkState(r *Result, want *StateExpect) error {
	var diffs []string
	s := r.State

	if want.CurrentInput != nil && *want.CurrentInput != s.CurrentInput {
		diffs = append(diffs, fmt.Sprintf("current_input %q != %q", s.CurrentInput, *want.CurrentInput))
	}
	if want.PreviousValue != nil && *want.PreviousValue != s.PreviousValue {
		diffs = append(diffs, fmt.Sprintf("previous_value %q != %q", s.PreviousValue, *want.PreviousValue))
	}
	if want.Operator != nil && *want.Operator != string(s.Operator) {
		diffs = append(diffs, fmt.Sprintf("operator %q != %q", s.Operator, *want.Operator))
	}
	if want.Waiting != nil && *want.Waiting != s.WaitingForSecondOperand {
		diffs = append(diffs, fmt.Sprintf("waiting %t != %t", s.WaitingForSecondOperand, *want.Waiting))
	}

	if len(diffs) > 0 {
		return &AssertionError{Type: AssertState, Expected: "matching state", Actual: strings.Join(diffs, ", ")}
	}
	return nil
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatLines(lines []string) string {
	quoted := make([]string, len(lines))
	for i, l := range lines {
		quoted[i] = fmt.Sprintf("%q", l)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

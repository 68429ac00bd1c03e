// Package harness runs calculator conformance scenarios.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	config:
//	  history_size: 5
//	  precision: 8
//	  keys: { "x": "*" }
//	steps:
//	  - keys: ["2/0", "Enter"]
//	    display: "Error"
//	assertions:
//	  - type: display
//	    value: "Error"
//	  - type: history
//	    entries: ["2 / 0 = Error"]
//	  - type: history_len
//	    count: 1
//	  - type: state
//	    state: { previous_value: "", operator: "", waiting: true }
//
// Each entry in keys is split the way the CLI splits words: named keys
// (Enter, Escape, Delete, configured bindings) stay whole, anything else is
// pressed one character at a time.
//
// # Deterministic Testing
//
// Every scenario runs in a fresh session with a fixed session ID, journaled
// to an in-memory SQLite database. The trace is read back from the journal,
// so a passing scenario also proves the journal round-trips. Traces are
// identical across runs, which is what golden comparison relies on.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/divide_by_zero.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness

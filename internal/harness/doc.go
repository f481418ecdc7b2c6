// Package harness provides conformance testing for fact graph declarations.
//
// A scenario pairs an input record with expectations about the evaluated
// results: computed values (subset match), structured error records, and the
// aggregated input errors. The declarations under test come from Go code -
// the host's namespace - while scenarios live in YAML files next to the
// tests.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	modules: [math, circles]        # optional module filter
//	input:
//	  scale: 5
//	  circles:
//	    - {radius: 1}
//	    - {radius: 2}
//	expect:
//	  results:
//	    math:
//	      squared_scale: 25
//	    circles:
//	      areas: [78.5, 314]
//	  input_errors: {}              # exact match; {} asserts none
//
// Expected results use the same shapes as the canonical results encoding:
// per-entity facts are mappings from decimal entity id (quoted - YAML keys
// must stay strings) to value, and error values are
// {errors: {bad_inputs: ..., dependency_unmet: ...}}.
//
// # Deterministic Testing
//
// Scenarios evaluate with fixed run tokens, and the canonical results
// encoding is byte-stable, so full results can be compared against golden
// files with RunWithGolden. Regenerate goldens with:
//
//	go test ./internal/harness -update
package harness

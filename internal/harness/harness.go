package harness

import (
	"fmt"

	"github.com/roach88/factgraph/internal/evaluator"
	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/registry"
	"github.com/roach88/factgraph/internal/results"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool

	// Failures lists each expectation that did not hold.
	Failures []error

	// Results is the full evaluation output, for golden comparison or
	// debugging.
	Results results.Results
}

// Run evaluates a scenario against a namespace's declarations and checks
// its expectations.
//
// Each run uses a fresh evaluator with a fixed run token derived from the
// scenario name, so repeated runs of the same scenario log identically.
func Run(ns *registry.Namespace, scenario *Scenario) (*Result, error) {
	eval := evaluator.New(ns, evaluator.WithRunTokens(
		evaluator.NewFixedGenerator("scenario-"+scenario.Name),
	))

	modules := make([]fact.ModuleName, len(scenario.Modules))
	for i, m := range scenario.Modules {
		modules[i] = fact.ModuleName(m)
	}

	res, err := eval.Evaluate(fact.Input(scenario.Input), modules...)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{Pass: true, Results: res}
	for _, failure := range checkExpectations(scenario, res) {
		result.Pass = false
		result.Failures = append(result.Failures, failure)
	}
	return result, nil
}

// checkExpectations evaluates the expect clause against the results.
func checkExpectations(scenario *Scenario, res results.Results) []error {
	var failures []error

	for module, facts := range scenario.Expect.Results {
		for name, expected := range facts {
			slot, present := res[fact.ModuleName(module)][fact.FactName(name)]
			if !present {
				failures = append(failures, &AssertionError{
					Fact:     module + "." + name,
					Expected: fmt.Sprintf("%v", expected),
					Actual:   "fact not in results",
				})
				continue
			}
			if err := matchSlot(module+"."+name, expected, slot); err != nil {
				failures = append(failures, err)
			}
		}
	}

	if scenario.Expect.InputErrors != nil {
		actual := evaluator.InputErrors(res)
		if err := matchInputErrors(scenario.Expect.InputErrors, actual); err != nil {
			failures = append(failures, err)
		}
	}

	return failures
}

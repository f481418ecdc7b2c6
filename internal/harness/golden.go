package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/factgraph/internal/registry"
	"github.com/roach88/factgraph/internal/results"
)

// RunWithGolden runs a scenario and compares the full canonical results
// against a golden file at testdata/golden/{scenario.Name}.golden, in
// addition to the scenario's own expectations.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for complete evaluation output; the
// scenario's expect clause stays the readable subset.
func RunWithGolden(t *testing.T, ns *registry.Namespace, scenario *Scenario) *Result {
	t.Helper()

	result, err := Run(ns, scenario)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}
	for _, failure := range result.Failures {
		t.Error(failure)
	}

	encoded, err := results.Encode(result.Results)
	if err != nil {
		t.Fatalf("scenario %s: encode results: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, encoded)

	return result
}

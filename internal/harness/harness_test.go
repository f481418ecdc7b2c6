package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/registry"
	"github.com/roach88/factgraph/internal/schema"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func number(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// declareGraph registers both scenario families: the circles math graph and
// the per-entity applicants graph. Scenarios pick their modules via the
// modules filter.
func declareGraph() *registry.Namespace {
	ns := registry.New("base")

	ns.InModule("simple", func() {
		ns.Constant("two", 2)
	})
	ns.InModule("math", func() {
		ns.Constant("pi", 3.14)
		ns.Fact("squared_scale", func(f *registry.Def) {
			f.Input(schema.Numeric("scale", schema.NonNegative()))
			f.Resolve(func(c *fact.DataContainer) fact.Value {
				n := number(c.Input("scale"))
				return fact.Computed{Payload: n * n}
			})
		})
	})
	ns.InModule("circles", func() {
		ns.Fact("areas", func(f *registry.Def) {
			f.Input(schema.ArrayOf("circles", schema.IntField("radius", schema.NonNegative())))
			f.DependencyOn("math", "pi")
			f.DependencyOn("math", "squared_scale")
			f.Resolve(func(c *fact.DataContainer) fact.Value {
				return c.MustMatch(func() fact.Value {
					pi := number(c.Computed("pi"))
					scale2 := number(c.Computed("squared_scale"))
					circles := c.Input("circles").([]any)
					areas := make([]float64, len(circles))
					for i, elem := range circles {
						r := number(elem.(map[string]any)["radius"])
						areas[i] = pi * r * r * scale2
					}
					return fact.Computed{Payload: areas}
				})
			})
		})
	})
	ns.InModule("applicants", func() {
		ns.Fact("income", func(f *registry.Def) {
			f.PerEntity("applicants")
			f.PerEntityInput(schema.Int("income"))
			f.Resolve(func(c *fact.DataContainer) fact.Value {
				return fact.Computed{Payload: c.Input("income")}
			})
		})
		ns.Fact("eligible", func(f *registry.Def) {
			f.PerEntity("applicants")
			f.AllowUnmetDependencies()
			f.Dependency("income")
			f.Resolve(func(c *fact.DataContainer) fact.Value {
				return c.MustMatch(func() fact.Value {
					return fact.Computed{Payload: number(c.Computed("income")) < 100}
				})
			})
		})
		ns.Fact("num_eligible", func(f *registry.Def) {
			f.Dependency("eligible")
			f.Resolve(func(c *fact.DataContainer) fact.Value {
				count := 0
				for _, v := range c.Fanout("eligible") {
					if computed, isComputed := v.(fact.Computed); isComputed && computed.Payload == true {
						count++
					}
				}
				return fact.Computed{Payload: count}
			})
		})
	})

	return ns
}

func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.Len(t, scenarios, 5)

	ns := declareGraph()
	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			result := RunWithGolden(t, ns, scenario)
			assert.True(t, result.Pass)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "circles_full.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "circles_full", scenario.Name)
	assert.Equal(t, []string{"simple", "math", "circles"}, scenario.Modules)
	assert.Equal(t, 5, scenario.Input["scale"])
	require.Contains(t, scenario.Expect.Results, "circles")
}

func TestLoadScenarioRequiresName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anon.yaml")
	require.NoError(t, writeFile(path, "description: nameless\ninput: {}\n"))

	_, err := LoadScenario(path)
	assert.ErrorContains(t, err, "name is required")
}

func TestRunReportsFailures(t *testing.T) {
	ns := declareGraph()

	scenario := &Scenario{
		Name:  "wrong_expectation",
		Input: map[string]any{"scale": 5},
		Expect: ExpectClause{
			Results: map[string]map[string]any{
				"math": {"squared_scale": 26},
			},
		},
		Modules: []string{"math"},
	}

	result, err := Run(ns, scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Error(), "math.squared_scale")
}

func TestRunReportsMissingFact(t *testing.T) {
	ns := declareGraph()

	scenario := &Scenario{
		Name:  "absent_fact",
		Input: map[string]any{},
		Expect: ExpectClause{
			Results: map[string]map[string]any{
				"math": {"nonexistent": 1},
			},
		},
	}

	result, err := Run(ns, scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Failures[0].Error(), "not in results")
}

func TestMatchSubsetSemantics(t *testing.T) {
	ns := declareGraph()

	// Only one of several facts listed: the rest are unchecked.
	scenario := &Scenario{
		Name:  "subset",
		Input: map[string]any{"scale": 3},
		Expect: ExpectClause{
			Results: map[string]map[string]any{
				"math": {"squared_scale": 9},
			},
		},
	}

	result, err := Run(ns, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "failures: %v", result.Failures)
}

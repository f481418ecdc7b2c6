package evaluator

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/registry"
)

func TestMetricsObserveEvaluation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	ns := registry.New("base")
	declareCircles(ns)
	e := New(ns, WithMetrics(m), WithRunTokens(NewFixedGenerator("r1")))

	_, err := e.Evaluate(fact.Input{"scale": 5})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations))
	// simple.two, math.pi, math.squared_scale, circles.areas.
	assert.Equal(t, 4.0, testutil.ToFloat64(m.factsResolved))
	// areas errors (no circles input); everything else resolves.
	assert.Equal(t, 1.0, testutil.ToFloat64(m.factErrors))
}

func TestNilMetricsIsSafe(t *testing.T) {
	ns := registry.New("m")
	ns.Constant("x", 1)
	e := New(ns, WithRunTokens(NewFixedGenerator("r1")))

	_, err := e.Evaluate(fact.Input{})
	assert.NoError(t, err)
}

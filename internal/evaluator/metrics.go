package evaluator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts evaluation work for hosts that expose prometheus.
// A nil *Metrics is valid and records nothing, so the evaluator never
// branches on whether metrics were configured.
type Metrics struct {
	evaluations   prometheus.Counter
	factsResolved prometheus.Counter
	factErrors    prometheus.Counter
	duration      prometheus.Histogram
}

// NewMetrics builds and registers the evaluation collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "factgraph",
			Name:      "evaluations_total",
			Help:      "Completed Evaluate calls.",
		}),
		factsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "factgraph",
			Name:      "facts_resolved_total",
			Help:      "Fact resolutions across all evaluations.",
		}),
		factErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "factgraph",
			Name:      "fact_errors_total",
			Help:      "Fact resolutions that produced an errors value.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "factgraph",
			Name:      "evaluation_duration_seconds",
			Help:      "Wall-clock duration of Evaluate calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.evaluations, m.factsResolved, m.factErrors, m.duration)
	return m
}

func (m *Metrics) observe(resolved, errored int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.evaluations.Inc()
	m.factsResolved.Add(float64(resolved))
	m.factErrors.Add(float64(errored))
	m.duration.Observe(elapsed.Seconds())
}

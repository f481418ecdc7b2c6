// Package evaluator walks a fact registry against one input record and
// answers structural queries about the graph.
//
// Evaluation is single-threaded and synchronous: one Evaluate call builds a
// graph, allocates a fresh results cache, and visits every slot in registry
// order. The cache makes each visit idempotent, so the effective resolution
// order is dependency-driven. The returned results are plain maps and carry
// no iteration order; the canonical encoding sorts their keys.
//
// Distinct Evaluate calls never share a cache. The registry must not be
// mutated while a call is in flight.
package evaluator

import (
	"log/slog"
	"time"

	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/graph"
	"github.com/roach88/factgraph/internal/registry"
	"github.com/roach88/factgraph/internal/results"
)

// Evaluator evaluates the facts of one namespace.
type Evaluator struct {
	ns      *registry.Namespace
	runGen  RunTokenGenerator
	metrics *Metrics
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRunTokens replaces the run-token generator. Tests pass a
// FixedGenerator for deterministic logs.
func WithRunTokens(gen RunTokenGenerator) Option {
	return func(e *Evaluator) { e.runGen = gen }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(e *Evaluator) { e.metrics = m }
}

// New creates an Evaluator over a namespace's registry.
func New(ns *registry.Namespace, opts ...Option) *Evaluator {
	e := &Evaluator{
		ns:     ns,
		runGen: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate builds the graph for the input, resolves every fact, and returns
// the completed cache: module → name → value, with per-entity facts as
// entity id → value.
//
// With modules given, the registry is restricted to those modules before
// building; everything else behaves identically.
//
// The only error conditions are fatal build defects (a dependency reference
// into an unbuilt slot). Validation failures and unmet dependencies are
// structured values inside the returned results.
func (e *Evaluator) Evaluate(input fact.Input, modules ...fact.ModuleName) (results.Results, error) {
	run := e.runGen.Generate()
	start := time.Now()

	defs := registry.Filter(e.ns.Defs(), modules...)
	slog.Debug("evaluation starting", "run", run, "facts", len(defs))

	g, err := graph.Build(defs, input)
	if err != nil {
		slog.Error("graph build failed", "run", run, "error", err)
		return nil, err
	}

	cache := results.New()
	resolved := 0
	errored := 0

	observe := func(def *fact.FactDef, v fact.Value) {
		resolved++
		if fact.IsError(v) {
			errored++
			slog.Debug("fact resolved to errors",
				"run", run,
				"module", def.Module,
				"fact", def.Name,
			)
		}
	}

	for _, def := range defs {
		node, built := g.Node(def.Module, def.Name)
		if !built {
			continue
		}
		switch n := node.(type) {
		case graph.ScalarNode:
			v, err := g.Resolve(n.Fact, cache)
			if err != nil {
				return nil, err
			}
			observe(def, v)

		case graph.EntityNode:
			// An empty expansion still owns its (empty) results slot.
			cache.EnsureEntitySlot(def.Module, def.Name)
			for _, id := range n.IDs() {
				v, err := g.Resolve(n[id], cache)
				if err != nil {
					return nil, err
				}
				observe(def, v)
			}
		}
	}

	elapsed := time.Since(start)
	e.metrics.observe(resolved, errored, elapsed)
	slog.Info("evaluation complete",
		"run", run,
		"resolved", resolved,
		"errored", errored,
		"duration", elapsed,
	)

	return cache, nil
}

// Defs returns the evaluator's registry in declaration order, optionally
// restricted to modules.
func (e *Evaluator) Defs(modules ...fact.ModuleName) []*fact.FactDef {
	return registry.Filter(e.ns.Defs(), modules...)
}

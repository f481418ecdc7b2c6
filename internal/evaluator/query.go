package evaluator

import (
	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/graph"
	"github.com/roach88/factgraph/internal/keypath"
)

// FactsUsingInput returns every fact whose input schemas accept the key
// path - exactly, or as a prefix of a deeper accepted path. Results come
// back as unexpanded instances in registry order.
//
// Matching compares whole segments: a query for "scale" does not match a
// schema accepting "scale_factor", and a path running deeper than any
// accepted path does not match.
func (e *Evaluator) FactsUsingInput(path keypath.KeyPath, modules ...fact.ModuleName) []*graph.Fact {
	var out []*graph.Fact
	for _, def := range e.Defs(modules...) {
		if defUsesInput(def, path) {
			out = append(out, &graph.Fact{FactDef: def, EntityID: fact.NoEntity})
		}
	}
	return out
}

// FactsWithDependency returns every fact whose dependency list names the
// given (module, name), in registry order.
func (e *Evaluator) FactsWithDependency(module fact.ModuleName, name fact.FactName, modules ...fact.ModuleName) []*graph.Fact {
	var out []*graph.Fact
	for _, def := range e.Defs(modules...) {
		if def.DependsOn(module, name) {
			out = append(out, &graph.Fact{FactDef: def, EntityID: fact.NoEntity})
		}
	}
	return out
}

// LeafFactsDependingOnInput walks downstream from every fact using the key
// path and returns the facts nothing else depends on - the natural output
// boundary fed by that piece of input.
//
// The traversal is a worklist: each frontier fact is replaced by its
// consumers; a fact with no consumers joins the leaf set. Visited marking
// keeps shared downstream cones from being walked twice.
func (e *Evaluator) LeafFactsDependingOnInput(path keypath.KeyPath, modules ...fact.ModuleName) []*graph.Fact {
	defs := e.Defs(modules...)

	consumersOf := func(module fact.ModuleName, name fact.FactName) []*fact.FactDef {
		var out []*fact.FactDef
		for _, def := range defs {
			if def.DependsOn(module, name) {
				out = append(out, def)
			}
		}
		return out
	}

	var frontier []*fact.FactDef
	visited := make(map[*fact.FactDef]bool)
	for _, def := range defs {
		if defUsesInput(def, path) {
			frontier = append(frontier, def)
			visited[def] = true
		}
	}

	var leaves []*graph.Fact
	inLeaves := make(map[*fact.FactDef]bool)

	for len(frontier) > 0 {
		var next []*fact.FactDef
		for _, def := range frontier {
			consumers := consumersOf(def.Module, def.Name)
			if len(consumers) == 0 {
				if !inLeaves[def] {
					inLeaves[def] = true
					leaves = append(leaves, &graph.Fact{FactDef: def, EntityID: fact.NoEntity})
				}
				continue
			}
			for _, consumer := range consumers {
				if !visited[consumer] {
					visited[consumer] = true
					next = append(next, consumer)
				}
			}
		}
		frontier = next
	}
	return leaves
}

// defUsesInput reports whether any schema of any declared input accepts the
// key path.
func defUsesInput(def *fact.FactDef, path keypath.KeyPath) bool {
	for _, in := range def.Inputs {
		if in.Schema.Keys().Matches(path) {
			return true
		}
	}
	return false
}

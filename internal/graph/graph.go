// Package graph materializes a registry of fact declarations into an
// instantiated graph for one input record, and resolves facts against it.
//
// A built graph maps module → name → node, where a node is either a single
// fact instance or a per-entity expansion (entity id → instance). Resolution
// is lazy, memoized through the results cache, and single-threaded: one
// Resolve call may recursively resolve the whole upstream cone of a fact,
// but never the same coordinate twice.
package graph

import (
	"sort"

	"github.com/roach88/factgraph/internal/fact"
)

// Fact is a concrete node in a built graph: a declaration bound to an
// entity id (or to none). Instances exist for the duration of one build;
// the underlying def is shared and immutable.
type Fact struct {
	*fact.FactDef

	// EntityID is the bound entity index, or fact.NoEntity for scalar
	// instances.
	EntityID fact.EntityID
}

// Node is one slot of the built graph.
//
// This is a sealed interface - only ScalarNode and EntityNode implement it.
// Dependency fetching dispatches on which shape is present and on the
// consumer's own entity id; per-entity facts are fan-out, not polymorphism.
type Node interface {
	graphNode()
}

// ScalarNode holds the single instance of a non-per-entity fact.
type ScalarNode struct {
	Fact *Fact
}

func (ScalarNode) graphNode() {}

// EntityNode holds a per-entity expansion. An empty (non-nil) map is the
// node of a fact whose entity collection was absent from the input.
type EntityNode map[fact.EntityID]*Fact

func (EntityNode) graphNode() {}

// IDs returns the expansion's entity ids in ascending order.
func (n EntityNode) IDs() []fact.EntityID {
	ids := make([]int, 0, len(n))
	for id := range n {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	out := make([]fact.EntityID, len(ids))
	for i, id := range ids {
		out[i] = fact.EntityID(id)
	}
	return out
}

// Graph is a built fact graph bound to one input record.
type Graph struct {
	nodes map[fact.ModuleName]map[fact.FactName]Node
	defs  []*fact.FactDef
	input fact.Input
}

// Node looks up the slot for a fact.
func (g *Graph) Node(module fact.ModuleName, name fact.FactName) (Node, bool) {
	node, built := g.nodes[module][name]
	return node, built
}

// Defs returns the registry the graph was built from, in declaration order.
func (g *Graph) Defs() []*fact.FactDef {
	return g.defs
}

// Input returns the input record the graph was built against.
func (g *Graph) Input() fact.Input {
	return g.input
}

func (g *Graph) set(module fact.ModuleName, name fact.FactName, node Node) {
	facts := g.nodes[module]
	if facts == nil {
		facts = make(map[fact.FactName]Node)
		g.nodes[module] = facts
	}
	facts[name] = node
}

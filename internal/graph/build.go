package graph

import (
	"github.com/roach88/factgraph/internal/fact"
)

// Build materializes a registry against an input record.
//
// Defs are processed in registry order. A per-entity def expands to one
// instance per entity id of its collection; an absent collection leaves an
// empty expansion in place, never an absent slot. A later declaration of
// the same (module, name) replaces the earlier one.
//
// After all slots exist, every dependency reference is checked; a reference
// to a slot that was never built fails the whole build with a
// *MissingDependencyError.
func Build(defs []*fact.FactDef, input fact.Input) (*Graph, error) {
	g := &Graph{
		nodes: make(map[fact.ModuleName]map[fact.FactName]Node),
		defs:  defs,
		input: input,
	}

	for _, def := range defs {
		if def.PerEntity != "" {
			node := make(EntityNode)
			for _, id := range input.EntityIDs(def.PerEntity) {
				node[id] = &Fact{FactDef: def, EntityID: id}
			}
			g.set(def.Module, def.Name, node)
			continue
		}
		g.set(def.Module, def.Name, ScalarNode{
			Fact: &Fact{FactDef: def, EntityID: fact.NoEntity},
		})
	}

	for _, def := range defs {
		for _, ref := range def.Dependencies {
			if _, built := g.Node(ref.Module, ref.Name); !built {
				return nil, &MissingDependencyError{
					Module:        def.Module,
					Fact:          def.Name,
					MissingModule: ref.Module,
					Missing:       ref.Name,
				}
			}
		}
	}

	return g, nil
}

// Definitions produces fact instances directly from a registry without
// consulting input. Per-entity defs stay single unexpanded instances. The
// query layer runs on this shape for static analysis before any input
// exists.
func Definitions(defs []*fact.FactDef) map[fact.ModuleName]map[fact.FactName]*Fact {
	out := make(map[fact.ModuleName]map[fact.FactName]*Fact)
	for _, def := range defs {
		facts := out[def.Module]
		if facts == nil {
			facts = make(map[fact.FactName]*Fact)
			out[def.Module] = facts
		}
		facts[def.Name] = &Fact{FactDef: def, EntityID: fact.NoEntity}
	}
	return out
}

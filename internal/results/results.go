// Package results holds the results cache of one evaluation and its
// canonical JSON encoding.
//
// The cache is a dense module → name → slot structure so the common case (a
// scalar fact) stays a two-level lookup, while per-entity facts keep their
// fan-out shape visible in returned results.
package results

import (
	"github.com/roach88/factgraph/internal/fact"
)

// Slot is one fact's entry in the cache.
//
// This is a sealed interface - only Single and PerEntity implement it.
type Slot interface {
	slot()
}

// Single holds the value of a scalar fact.
type Single struct {
	Value fact.Value
}

func (Single) slot() {}

// PerEntity holds the fan-out of a per-entity fact. An empty (non-nil) map
// is the slot of a per-entity fact whose entity collection was absent.
type PerEntity map[fact.EntityID]fact.Value

func (PerEntity) slot() {}

// Results is the cache of one Evaluate call: module → name → slot. A cache
// is created empty at the start of a call, filled by resolution, and never
// shared across calls.
type Results map[fact.ModuleName]map[fact.FactName]Slot

// New allocates an empty cache.
func New() Results {
	return make(Results)
}

// Get looks up the value at a coordinate. Pass fact.NoEntity for scalar
// facts.
func (r Results) Get(module fact.ModuleName, name fact.FactName, id fact.EntityID) (fact.Value, bool) {
	slot, present := r[module][name]
	if !present {
		return nil, false
	}
	switch s := slot.(type) {
	case Single:
		if id != fact.NoEntity {
			return nil, false
		}
		return s.Value, true
	case PerEntity:
		v, resolved := s[id]
		return v, resolved
	}
	return nil, false
}

// Put stores a value at a coordinate, creating intermediate maps as needed.
func (r Results) Put(module fact.ModuleName, name fact.FactName, id fact.EntityID, v fact.Value) {
	facts := r[module]
	if facts == nil {
		facts = make(map[fact.FactName]Slot)
		r[module] = facts
	}
	if id == fact.NoEntity {
		facts[name] = Single{Value: v}
		return
	}
	entities, isPerEntity := facts[name].(PerEntity)
	if !isPerEntity {
		entities = make(PerEntity)
		facts[name] = entities
	}
	entities[id] = v
}

// EnsureEntitySlot materializes an empty per-entity slot. A per-entity fact
// over an absent collection still appears in the results, with no entries.
func (r Results) EnsureEntitySlot(module fact.ModuleName, name fact.FactName) {
	facts := r[module]
	if facts == nil {
		facts = make(map[fact.FactName]Slot)
		r[module] = facts
	}
	if _, isPerEntity := facts[name].(PerEntity); !isPerEntity {
		facts[name] = make(PerEntity)
	}
}

// Value returns a scalar fact's value.
func (r Results) Value(module fact.ModuleName, name fact.FactName) (fact.Value, bool) {
	return r.Get(module, name, fact.NoEntity)
}

// Entity returns a per-entity fact's fan-out.
func (r Results) Entity(module fact.ModuleName, name fact.FactName) (PerEntity, bool) {
	entities, isPerEntity := r[module][name].(PerEntity)
	return entities, isPerEntity
}

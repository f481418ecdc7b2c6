package fact

import (
	"github.com/roach88/factgraph/internal/keypath"
)

// Value is the outcome of resolving one fact.
//
// This is a sealed interface - only Computed, Errors, and Incomplete
// implement it. The marker method pattern keeps type switches over results
// exhaustive.
type Value interface {
	factValue()
}

// Computed carries a successfully resolved payload.
type Computed struct {
	Payload any
}

func (Computed) factValue() {}

// Incomplete is the sentinel a resolver's MustMatch falls through to when a
// match fails and no deferred errors are available. It surfaces to the
// caller as the fact's value.
type Incomplete struct{}

func (Incomplete) factValue() {}

// Messages is an ordered, de-duplicated set of failure messages.
type Messages []string

// Add appends msg unless already present.
func (m Messages) Add(msg string) Messages {
	for _, existing := range m {
		if existing == msg {
			return m
		}
	}
	return append(m, msg)
}

// BadInputs maps the canonical string form of a key path to the messages its
// schema produced.
type BadInputs map[string]Messages

// DependencyUnmet maps a module to the ordered set of its facts that
// resolved to errors.
type DependencyUnmet map[ModuleName][]FactName

// Errors is the structured failure value of a fact. At least one of the two
// maps is non-empty; an empty Errors never enters a results cache.
type Errors struct {
	BadInputs       BadInputs
	DependencyUnmet DependencyUnmet
}

func (Errors) factValue() {}

// Empty reports whether neither map has entries.
func (e Errors) Empty() bool {
	return len(e.BadInputs) == 0 && len(e.DependencyUnmet) == 0
}

// AddBadInput records a schema failure at path.
func (e *Errors) AddBadInput(path keypath.KeyPath, msg string) {
	if e.BadInputs == nil {
		e.BadInputs = make(BadInputs)
	}
	key := path.String()
	e.BadInputs[key] = e.BadInputs[key].Add(msg)
}

// AddUnmet records an erroring dependency, preserving first-seen order per
// module.
func (e *Errors) AddUnmet(module ModuleName, name FactName) {
	if e.DependencyUnmet == nil {
		e.DependencyUnmet = make(DependencyUnmet)
	}
	for _, existing := range e.DependencyUnmet[module] {
		if existing == name {
			return
		}
	}
	e.DependencyUnmet[module] = append(e.DependencyUnmet[module], name)
}

// MergeBadInputs unions another bad-input map into e, per-path message sets
// combined. Used by input-error aggregation.
func (e *Errors) MergeBadInputs(other BadInputs) {
	if len(other) == 0 {
		return
	}
	if e.BadInputs == nil {
		e.BadInputs = make(BadInputs)
	}
	for path, msgs := range other {
		set := e.BadInputs[path]
		for _, msg := range msgs {
			set = set.Add(msg)
		}
		e.BadInputs[path] = set
	}
}

// IsError reports whether a value is an Errors record.
func IsError(v Value) bool {
	_, isErr := v.(Errors)
	return isErr
}

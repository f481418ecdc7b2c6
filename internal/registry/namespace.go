// Package registry collects fact declarations into namespaces.
//
// A namespace owns a registry of FactDefs and a default module name.
// Declarations made on a namespace append to its PARENT namespace's registry
// (the root is its own parent). This is the cooperative composition trick
// that lets a family of namespaces contribute facts to one shared registry:
// callers evaluate against the parent and see the union.
//
// The target registry is an explicit pointer, never discovered by
// reflection. Creating a sub-namespace starts it with an empty registry of
// its own.
package registry

import (
	"github.com/roach88/factgraph/internal/fact"
)

// Namespace owns a fact registry and the lexical module scope for
// declarations made through it.
//
// Namespaces are populated at load time and treated as immutable during
// evaluation. Resetting a registry concurrently with an evaluation is
// undefined; tests reset between cases, never during.
type Namespace struct {
	defaultModule fact.ModuleName
	target        *Namespace // whose registry receives declarations
	defs          []*fact.FactDef
	moduleStack   []fact.ModuleName
}

// New creates a root namespace. Declarations on the root land in its own
// registry.
func New(module fact.ModuleName) *Namespace {
	ns := &Namespace{defaultModule: module}
	ns.target = ns
	return ns
}

// Sub creates a child namespace with an empty registry of its own.
// Declarations on the child append to THIS namespace's registry, so the
// parent accumulates everything its children declare.
func (ns *Namespace) Sub(module fact.ModuleName) *Namespace {
	return &Namespace{defaultModule: module, target: ns}
}

// InModule overrides the module name for declarations made inside body.
// Overrides nest; the innermost wins.
func (ns *Namespace) InModule(module fact.ModuleName, body func()) {
	ns.moduleStack = append(ns.moduleStack, module)
	defer func() {
		ns.moduleStack = ns.moduleStack[:len(ns.moduleStack)-1]
	}()
	body()
}

// Module returns the module name declarations currently resolve to.
func (ns *Namespace) Module() fact.ModuleName {
	if n := len(ns.moduleStack); n > 0 {
		return ns.moduleStack[n-1]
	}
	return ns.defaultModule
}

// Defs returns this namespace's registry in declaration order. The returned
// slice is shared; callers must not mutate it.
func (ns *Namespace) Defs() []*fact.FactDef {
	return ns.defs
}

// Reset empties this namespace's registry. For test suites that rebuild
// declarations per case.
func (ns *Namespace) Reset() {
	ns.defs = nil
}

// register appends a finished def to the target registry.
func (ns *Namespace) register(def *fact.FactDef) {
	ns.target.defs = append(ns.target.defs, def)
}

// Filter restricts a registry to the named modules, preserving declaration
// order. With no modules the registry is returned unchanged.
func Filter(defs []*fact.FactDef, modules ...fact.ModuleName) []*fact.FactDef {
	if len(modules) == 0 {
		return defs
	}
	keep := make(map[fact.ModuleName]bool, len(modules))
	for _, m := range modules {
		keep[m] = true
	}
	var out []*fact.FactDef
	for _, def := range defs {
		if keep[def.Module] {
			out = append(out, def)
		}
	}
	return out
}

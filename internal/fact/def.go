package fact

import (
	"github.com/roach88/factgraph/internal/schema"
)

// Resolver computes a fact's value from its container. Resolvers must be
// pure functions of the container: no cache access, no retained state.
type Resolver func(*DataContainer) Value

// InputDef declares one input field of a fact.
type InputDef struct {
	// Name is the top-level input key, or the per-entity field name when
	// PerEntity is set.
	Name InputName

	// PerEntity fetches the value from input[entity][id][name] instead of
	// input[name].
	PerEntity bool

	// Schema validates the named value and exposes the accepted key paths.
	Schema schema.Schema
}

// DependencyRef names one upstream fact. Declaration order is preserved; it
// drives the order of dependency-unmet aggregation.
type DependencyRef struct {
	Name   FactName
	Module ModuleName
}

// SourceLocation records where a fact was declared, for diagnostics.
type SourceLocation struct {
	File string
	Line int
}

// FactDef is an immutable fact declaration. Defs are registered once per
// namespace at load time and shared by every graph built from the registry;
// nothing may mutate them after registration.
type FactDef struct {
	Module ModuleName
	Name   FactName

	// PerEntity names the entity collection this fact expands over; empty
	// for scalar facts.
	PerEntity EntityName

	// AllowUnmetDependencies runs the resolver even when inputs or
	// dependencies failed; the resolver sees the failures via DataErrors.
	AllowUnmetDependencies bool

	// IsConstant short-circuits resolution to Constant; Resolver, Inputs,
	// and Dependencies are empty for constants.
	IsConstant bool
	Constant   any

	Resolver     Resolver
	Inputs       []InputDef
	Dependencies []DependencyRef

	Source SourceLocation
}

// DependencyOn returns the module a named dependency was declared from.
func (d *FactDef) DependencyOn(name FactName) (ModuleName, bool) {
	for _, ref := range d.Dependencies {
		if ref.Name == name {
			return ref.Module, true
		}
	}
	return "", false
}

// DependsOn reports whether the def declares a dependency on (module, name).
func (d *FactDef) DependsOn(module ModuleName, name FactName) bool {
	for _, ref := range d.Dependencies {
		if ref.Name == name && ref.Module == module {
			return true
		}
	}
	return false
}

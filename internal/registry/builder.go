package registry

import (
	"runtime"

	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/schema"
)

// Def is the builder handed to a fact declaration body.
type Def struct {
	def *fact.FactDef
}

// Fact declares a fact in the current module and appends it to the parent
// namespace's registry. The body runs immediately to configure inputs,
// dependencies, and the resolver.
func (ns *Namespace) Fact(name fact.FactName, body func(*Def)) *fact.FactDef {
	def := &fact.FactDef{
		Module: ns.Module(),
		Name:   name,
		Source: caller(2),
	}
	if body != nil {
		body(&Def{def: def})
	}
	ns.register(def)
	return def
}

// Constant declares a fact whose resolver is a pure value: no inputs, no
// dependencies.
func (ns *Namespace) Constant(name fact.FactName, value any) *fact.FactDef {
	def := &fact.FactDef{
		Module:     ns.Module(),
		Name:       name,
		IsConstant: true,
		Constant:   value,
		Source:     caller(2),
	}
	ns.register(def)
	return def
}

// PerEntity expands the fact over the named entity collection: one instance
// per entity id in the input.
func (d *Def) PerEntity(entity fact.EntityName) {
	d.def.PerEntity = entity
}

// AllowUnmetDependencies runs the resolver even when inputs or dependencies
// failed. The resolver observes the failures via DataErrors and decides
// whether to return them.
func (d *Def) AllowUnmetDependencies() {
	d.def.AllowUnmetDependencies = true
}

// Input declares an input field validated by s. The input name is the
// schema's top-level key.
func (d *Def) Input(s schema.Schema) {
	d.def.Inputs = append(d.def.Inputs, fact.InputDef{
		Name:   fact.InputName(schema.InputName(s)),
		Schema: s,
	})
}

// PerEntityInput declares an input fetched from the fact's entity record:
// input[entity][id][name] rather than input[name].
func (d *Def) PerEntityInput(s schema.Schema) {
	d.def.Inputs = append(d.def.Inputs, fact.InputDef{
		Name:      fact.InputName(schema.InputName(s)),
		PerEntity: true,
		Schema:    s,
	})
}

// Dependency declares a dependency on a fact in the containing module.
func (d *Def) Dependency(name fact.FactName) {
	d.def.Dependencies = append(d.def.Dependencies, fact.DependencyRef{
		Name:   name,
		Module: d.def.Module,
	})
}

// DependencyOn declares a dependency on a fact in another module.
func (d *Def) DependencyOn(module fact.ModuleName, name fact.FactName) {
	d.def.Dependencies = append(d.def.Dependencies, fact.DependencyRef{
		Name:   name,
		Module: module,
	})
}

// Resolve sets the resolver.
func (d *Def) Resolve(r fact.Resolver) {
	d.def.Resolver = r
}

func caller(skip int) fact.SourceLocation {
	_, file, line, callerKnown := runtime.Caller(skip)
	if !callerKnown {
		return fact.SourceLocation{}
	}
	return fact.SourceLocation{File: file, Line: line}
}

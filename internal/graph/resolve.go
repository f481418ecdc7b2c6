package graph

import (
	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/results"
)

// Resolve computes one fact's value and writes it into the cache at the
// fact's coordinate.
//
// The cache gives at-most-once resolution per (module, name[, entity id])
// within one evaluation. Dependencies resolve recursively before the
// fact's own resolver runs; an erroring dependency marks this fact's
// dependency-unmet set regardless of which error sub-map is populated
// upstream.
//
// The only error returned is the fatal *MissingDependencyError for a
// reference into an unbuilt slot; every validation failure and unmet
// dependency is a structured fact.Errors value, not a Go error. A panic
// from a schema or a resolver is not recovered: unexpected failures in
// user code abort the evaluation.
func (g *Graph) Resolve(f *Fact, cache results.Results) (fact.Value, error) {
	if v, resolved := cache.Get(f.Module, f.Name, f.EntityID); resolved {
		return v, nil
	}

	if f.IsConstant {
		v := fact.Computed{Payload: f.Constant}
		cache.Put(f.Module, f.Name, f.EntityID, v)
		return v, nil
	}

	var errs fact.Errors

	deps := make(map[fact.FactName]any, len(f.Dependencies))
	for _, ref := range f.Dependencies {
		node, built := g.Node(ref.Module, ref.Name)
		if !built {
			return nil, &MissingDependencyError{
				Module:        f.Module,
				Fact:          f.Name,
				MissingModule: ref.Module,
				Missing:       ref.Name,
			}
		}
		switch n := node.(type) {
		case ScalarNode:
			v, err := g.Resolve(n.Fact, cache)
			if err != nil {
				return nil, err
			}
			deps[ref.Name] = v
			if fact.IsError(v) {
				errs.AddUnmet(ref.Module, ref.Name)
			}

		case EntityNode:
			if f.EntityID != fact.NoEntity {
				// Paired index: a per-entity consumer sees only its own
				// entity's instance of a per-entity target.
				target, expanded := n[f.EntityID]
				if !expanded {
					errs.AddUnmet(ref.Module, ref.Name)
					continue
				}
				v, err := g.Resolve(target, cache)
				if err != nil {
					return nil, err
				}
				deps[ref.Name] = v
				if fact.IsError(v) {
					errs.AddUnmet(ref.Module, ref.Name)
				}
				continue
			}

			// A scalar consumer of a per-entity target receives the whole
			// fan-out, entity id → value.
			fanout := make(map[fact.EntityID]fact.Value, len(n))
			anyErrored := false
			for _, id := range n.IDs() {
				v, err := g.Resolve(n[id], cache)
				if err != nil {
					return nil, err
				}
				fanout[id] = v
				if fact.IsError(v) {
					anyErrored = true
				}
			}
			deps[ref.Name] = fanout
			if anyErrored {
				errs.AddUnmet(ref.Module, ref.Name)
			}
		}
	}

	filtered := make(map[fact.InputName]any, len(f.Inputs))
	for _, in := range f.Inputs {
		var raw any
		var present bool
		if in.PerEntity && f.EntityID != fact.NoEntity {
			raw, present = g.input.PerEntityValue(f.PerEntity, f.EntityID, in.Name)
		} else {
			raw, present = g.input.Value(in.Name)
		}

		record := make(map[string]any, 1)
		if present {
			record[string(in.Name)] = raw
		}
		projected := in.Schema.Keys().Write(record)
		if v, kept := projected[string(in.Name)]; kept {
			filtered[in.Name] = v
		}

		res := in.Schema.Validate(projected)
		for _, e := range res.Errors {
			errs.AddBadInput(e.Path, e.Text)
		}
	}

	var v fact.Value
	switch {
	case errs.Empty():
		v = invoke(f, fact.NewDataContainer(filtered, deps))
	case !f.AllowUnmetDependencies:
		v = errs
	default:
		v = invoke(f, fact.NewDeferredDataContainer(filtered, deps, errs))
	}

	cache.Put(f.Module, f.Name, f.EntityID, v)
	return v, nil
}

// invoke runs the resolver. A declaration with no resolver is incomplete;
// its value is the sentinel rather than a crash.
func invoke(f *Fact, c *fact.DataContainer) fact.Value {
	if f.Resolver == nil {
		return fact.Incomplete{}
	}
	return f.Resolver(c)
}

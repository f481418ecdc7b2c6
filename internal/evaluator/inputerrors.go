package evaluator

import (
	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/results"
)

// InputErrors scans a completed results cache and aggregates every
// bad-input record into one key path → message set mapping. A path rejected
// by the schemas of several facts carries the union of their messages.
//
// Dependency-unmet entries are not part of the aggregate: they describe
// graph topology, not input quality, and every one of them traces back to a
// bad input already in the map (or to an incomplete declaration).
func InputErrors(r results.Results) fact.BadInputs {
	var acc fact.Errors
	merge := func(v fact.Value) {
		if errs, isErr := v.(fact.Errors); isErr {
			acc.MergeBadInputs(errs.BadInputs)
		}
	}

	for _, facts := range r {
		for _, slot := range facts {
			switch s := slot.(type) {
			case results.Single:
				merge(s.Value)
			case results.PerEntity:
				for _, v := range s {
					merge(v)
				}
			}
		}
	}

	if acc.BadInputs == nil {
		return fact.BadInputs{}
	}
	return acc.BadInputs
}

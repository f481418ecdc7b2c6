package graph

import (
	"errors"
	"fmt"

	"github.com/roach88/factgraph/internal/fact"
)

// MissingDependencyError reports a dependency reference whose target slot
// was never built. This is a fatal build-time defect in the declarations,
// distinct from the structured dependency-unmet errors that flow through
// results at runtime; it cannot occur for well-formed graphs.
type MissingDependencyError struct {
	// Module and Fact identify the declaration holding the bad reference.
	Module fact.ModuleName
	Fact   fact.FactName

	// MissingModule and Missing identify the referenced target.
	MissingModule fact.ModuleName
	Missing       fact.FactName
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("fact %s.%s depends on %s.%s, which is not in the graph",
		e.Module, e.Fact, e.MissingModule, e.Missing)
}

// IsMissingDependency reports whether err is a missing-dependency build
// error. Uses errors.As to handle wrapped errors.
func IsMissingDependency(err error) bool {
	var mde *MissingDependencyError
	return errors.As(err, &mde)
}

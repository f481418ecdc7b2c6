// Package fact holds the data model of the fact graph: symbolic names, the
// Value union, the structured error record, immutable fact declarations, and
// the DataContainer handed to resolvers.
//
// Declarations (FactDef) are created once per namespace and never mutated.
// Fact instances and results caches live in the graph and evaluator packages;
// this package has no evaluation logic of its own.
package fact

// Package schema provides the input-validation capability consumed by the
// fact graph.
//
// A Schema validates a single named value and reports structured failures.
// It also exposes a typed key map describing which key paths it accepts;
// the key map drives input filtering before validation and the "which facts
// read this input?" query layer.
//
// Two families of implementations ship here: the zero-dependency built-in
// validators (Numeric, Int, Str, Boolean, ArrayOf) and a CUE-backed adapter
// (FromCUE) for hosts that already describe their inputs in CUE.
package schema

import "github.com/roach88/factgraph/internal/keypath"

// Schema validates a single named value.
//
// Validate receives a record holding at most one key - the schema's own
// input name - and returns every failure with the key path where it
// occurred. Keys returns the typed key map described in keys.go.
//
// Implementations must be pure: no retained state across calls, safe for
// reuse across evaluations.
type Schema interface {
	Validate(record map[string]any) Result
	Keys() KeyMap
}

// Result is the outcome of validating one named value.
type Result struct {
	Valid  bool
	Errors []Error
}

// Error is a single validation failure.
type Error struct {
	Path keypath.KeyPath
	Text string
}

// InputName returns the name of the single top-level key a schema accepts.
// Panics if the schema exposes an empty key map; every schema constructed by
// this package has exactly one top-level key.
func InputName(s Schema) string {
	keys := s.Keys()
	if len(keys) == 0 {
		panic("schema: key map is empty")
	}
	return keys[0].KeyName()
}

// ok is the canonical successful Result.
func ok() Result { return Result{Valid: true} }

// failed builds a Result from failures.
func failed(errs []Error) Result {
	if len(errs) == 0 {
		return ok()
	}
	return Result{Valid: false, Errors: errs}
}

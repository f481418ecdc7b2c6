package schema

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/factgraph/internal/keypath"
)

// FromCUE adapts a CUE value into a Schema for the named input.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
//
// The value should be the constraint for the input itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`{radius: int & >=0}`)
//	s, err := schema.FromCUE("circle", v)
//
// The key map is derived from the CUE structure: lists become array keys
// (element members read from the list's element type), structs become hash
// keys, everything else a scalar key.
func FromCUE(name string, v cue.Value) (Schema, error) {
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("schema %q: invalid CUE value: %w", name, err)
	}
	key, err := deriveKey(name, v)
	if err != nil {
		return nil, fmt.Errorf("schema %q: derive key map: %w", name, err)
	}
	return cueSchema{name: name, val: v, keys: KeyMap{key}}, nil
}

type cueSchema struct {
	name string
	val  cue.Value
	keys KeyMap
}

func (s cueSchema) Keys() KeyMap { return s.keys }

func (s cueSchema) Validate(record map[string]any) Result {
	raw, present := record[s.name]
	if !present || raw == nil {
		return failed([]Error{{Path: keypath.Path(keypath.Name(s.name)), Text: MsgMissing}})
	}

	encoded := s.val.Context().Encode(raw)
	if err := encoded.Err(); err != nil {
		return s.cueFailures(err)
	}

	unified := s.val.Unify(encoded)
	if err := unified.Err(); err != nil {
		return s.cueFailures(err)
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return s.cueFailures(err)
	}
	return ok()
}

// cueFailures converts a CUE error list into schema errors rooted at the
// input name. Numeric path tokens become index segments.
func (s cueSchema) cueFailures(err error) Result {
	var errs []Error
	for _, e := range cueerrors.Errors(err) {
		path := keypath.Path(keypath.Name(s.name))
		for _, tok := range e.Path() {
			if idx, convErr := strconv.Atoi(tok); convErr == nil {
				path = path.Child(keypath.Index(idx))
			} else {
				path = path.Child(keypath.Name(tok))
			}
		}
		format, args := e.Msg()
		errs = append(errs, Error{Path: path, Text: fmt.Sprintf(format, args...)})
	}
	if len(errs) == 0 {
		errs = append(errs, Error{Path: keypath.Path(keypath.Name(s.name)), Text: err.Error()})
	}
	return failed(errs)
}

// deriveKey maps a CUE constraint to a typed key.
func deriveKey(name string, v cue.Value) (Key, error) {
	switch v.IncompleteKind() {
	case cue.ListKind:
		elem := v.LookupPath(cue.MakePath(cue.AnyIndex))
		members, err := deriveMembers(elem)
		if err != nil {
			return nil, err
		}
		return ArrayKey{Name: name, Elem: members}, nil
	case cue.StructKind:
		members, err := deriveMembers(v)
		if err != nil {
			return nil, err
		}
		return HashKey{Name: name, Members: members}, nil
	default:
		return ScalarKey{Name: name}, nil
	}
}

// deriveMembers reads the member keys of a struct constraint. A non-struct
// (or absent) value has no members: its elements are atomic.
func deriveMembers(v cue.Value) (KeyMap, error) {
	if !v.Exists() || v.IncompleteKind() != cue.StructKind {
		return nil, nil
	}
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		return nil, err
	}
	var members KeyMap
	for iter.Next() {
		key, err := deriveKey(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		members = append(members, key)
	}
	return members, nil
}

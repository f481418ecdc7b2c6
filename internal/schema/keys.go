package schema

import "github.com/roach88/factgraph/internal/keypath"

// Key describes one accepted key structure in a schema's key map.
//
// This is a sealed interface - only ScalarKey, ArrayKey, and HashKey
// implement it. The marker method pattern keeps type switches exhaustive.
//
// Matching rules:
//   - ScalarKey matches a key path of length 1 equal to its name.
//   - ArrayKey matches when the first segment equals its name; if the query
//     has more segments, the second must be an integer position, and any
//     remainder must recursively match one of the element keys.
//   - HashKey matches when the first segment equals its name; any remainder
//     must recursively match one of its member keys.
//
// A shorter query path that reaches a key's name is a match: the query layer
// asks about prefixes ("anything under circles"), not exact leaves.
type Key interface {
	key()

	// KeyName is the name of the first segment this key accepts.
	KeyName() string

	// Match reports whether the key accepts the given key path.
	Match(path keypath.KeyPath) bool

	// write projects a raw value down to the sub-structure this key accepts.
	write(value any) any
}

// ScalarKey accepts a single atomic value.
type ScalarKey struct {
	Name string
}

func (ScalarKey) key() {}

func (k ScalarKey) KeyName() string { return k.Name }

func (k ScalarKey) Match(path keypath.KeyPath) bool {
	if len(path) != 1 {
		return false
	}
	n, isName := path[0].(keypath.Name)
	return isName && string(n) == k.Name
}

func (k ScalarKey) write(value any) any { return value }

// ArrayKey accepts an ordered sequence. Elem describes the member keys of
// each element; an empty Elem means elements are atomic.
type ArrayKey struct {
	Name string
	Elem KeyMap
}

func (ArrayKey) key() {}

func (k ArrayKey) KeyName() string { return k.Name }

func (k ArrayKey) Match(path keypath.KeyPath) bool {
	if len(path) == 0 {
		return false
	}
	n, isName := path[0].(keypath.Name)
	if !isName || string(n) != k.Name {
		return false
	}
	if len(path) == 1 {
		return true
	}
	// The second segment must be a position; any integer matches.
	if _, isIndex := path[1].(keypath.Index); !isIndex {
		return false
	}
	if len(path) == 2 {
		return true
	}
	return k.Elem.matchTail(path[2:])
}

func (k ArrayKey) write(value any) any {
	seq, isSeq := value.([]any)
	if !isSeq || len(k.Elem) == 0 {
		return value
	}
	out := make([]any, len(seq))
	for i, elem := range seq {
		rec, isRec := elem.(map[string]any)
		if !isRec {
			out[i] = elem
			continue
		}
		out[i] = k.Elem.Write(rec)
	}
	return out
}

// HashKey accepts a nested record with a known set of member keys.
type HashKey struct {
	Name    string
	Members KeyMap
}

func (HashKey) key() {}

func (k HashKey) KeyName() string { return k.Name }

func (k HashKey) Match(path keypath.KeyPath) bool {
	if len(path) == 0 {
		return false
	}
	n, isName := path[0].(keypath.Name)
	if !isName || string(n) != k.Name {
		return false
	}
	if len(path) == 1 {
		return true
	}
	return k.Members.matchTail(path[1:])
}

func (k HashKey) write(value any) any {
	rec, isRec := value.(map[string]any)
	if !isRec {
		return value
	}
	return k.Members.Write(rec)
}

// KeyMap is the set of typed keys a schema accepts.
type KeyMap []Key

// Matches reports whether any key in the map accepts the path.
func (km KeyMap) Matches(path keypath.KeyPath) bool {
	for _, k := range km {
		if k.Match(path) {
			return true
		}
	}
	return false
}

// matchTail matches a path remainder against member keys. The remainder's
// first segment must be a name so it can be compared against key names.
func (km KeyMap) matchTail(tail keypath.KeyPath) bool {
	if len(tail) == 0 {
		return false
	}
	if _, isName := tail[0].(keypath.Name); !isName {
		return false
	}
	return km.Matches(tail)
}

// Write projects an arbitrary record down to the keys this map recognises,
// recursing into array elements and nested records. Unknown top-level keys
// are dropped; recognised keys keep only the sub-structure their key
// accepts. The input record is not modified.
func (km KeyMap) Write(record map[string]any) map[string]any {
	out := make(map[string]any, len(km))
	for _, k := range km {
		v, present := record[k.KeyName()]
		if !present {
			continue
		}
		out[k.KeyName()] = k.write(v)
	}
	return out
}

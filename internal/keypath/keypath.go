// Package keypath models paths into nested input records.
//
// A KeyPath is an ordered sequence of segments. A segment is either a key
// name (addressing a field of a record) or a non-negative integer index
// (addressing a position in a sequence). Key paths are how schemas report
// where a validation failure occurred and how the query layer asks "which
// facts read this piece of input?".
package keypath

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a KeyPath.
//
// This is a sealed interface - only Name and Index implement it. The marker
// method pattern keeps type switches over segments exhaustive.
type Segment interface {
	segment()
	String() string
}

// Name addresses a field of a record by key.
type Name string

func (Name) segment() {}

func (n Name) String() string { return string(n) }

// Index addresses a position in a sequence.
//
// For matching purposes any index occupies the same slot: a schema's array
// key accepts every integer position, so Index(0) and Index(7) match the
// same key structures.
type Index int

func (Index) segment() {}

func (i Index) String() string { return strconv.Itoa(int(i)) }

// KeyPath is an ordered sequence of segments.
type KeyPath []Segment

// Path builds a KeyPath from segments.
func Path(segs ...Segment) KeyPath { return KeyPath(segs) }

// Child returns a new KeyPath with seg appended. The receiver is not
// modified; the result shares no tail with it.
func (p KeyPath) Child(seg Segment) KeyPath {
	out := make(KeyPath, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// String renders the path in its canonical dotted form, with indices in
// brackets: "circles[0].radius". The canonical form is used as a map key
// wherever paths key error sets.
func (p KeyPath) String() string {
	var b strings.Builder
	for i, seg := range p {
		switch s := seg.(type) {
		case Name:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(string(s))
		case Index:
			fmt.Fprintf(&b, "[%d]", int(s))
		}
	}
	return b.String()
}

// Equal reports whether two paths have identical segments. Index segments
// compare by value here; use the schema key map for positional "any index"
// matching.
func (p KeyPath) Equal(other KeyPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		switch a := p[i].(type) {
		case Name:
			b, ok := other[i].(Name)
			if !ok || a != b {
				return false
			}
		case Index:
			b, ok := other[i].(Index)
			if !ok || a != b {
				return false
			}
		}
	}
	return true
}

// Parse converts the canonical dotted form back into a KeyPath.
// "circles[0].radius" and "circles.0.radius" both parse to
// [Name(circles), Index(0), Name(radius)]; a bare integer token is always
// read as an index.
func Parse(s string) (KeyPath, error) {
	if s == "" {
		return nil, fmt.Errorf("empty key path")
	}
	// Normalize bracket indices to dotted tokens, then split.
	norm := strings.NewReplacer("[", ".", "]", "").Replace(s)
	var path KeyPath
	for _, tok := range strings.Split(norm, ".") {
		if tok == "" {
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil {
			if n < 0 {
				return nil, fmt.Errorf("negative index %d in key path %q", n, s)
			}
			path = append(path, Index(n))
			continue
		}
		path = append(path, Name(tok))
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("empty key path %q", s)
	}
	return path, nil
}

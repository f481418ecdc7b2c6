package schema

import "github.com/roach88/factgraph/internal/keypath"

// Validation messages. Shared constants so tests and callers compare against
// one spelling.
const (
	MsgNumeric  = "must be Numeric"
	MsgInteger  = "must be an integer"
	MsgString   = "must be a string"
	MsgBoolean  = "must be a boolean"
	MsgArray    = "must be an array"
	MsgRecord   = "must be a record"
	MsgMissing  = "is missing"
	MsgNegative = "must not be negative"
)

// Option adjusts a built-in validator.
type Option func(*constraints)

type constraints struct {
	nonNegative bool
}

// NonNegative rejects values below zero.
func NonNegative() Option {
	return func(c *constraints) { c.nonNegative = true }
}

// scalar is the shared shape of the single-value validators.
type scalar struct {
	name  string
	check func(any) []string
}

func (s scalar) Keys() KeyMap { return KeyMap{ScalarKey{Name: s.name}} }

func (s scalar) Validate(record map[string]any) Result {
	msgs := s.check(record[s.name])
	if len(msgs) == 0 {
		return ok()
	}
	errs := make([]Error, len(msgs))
	for i, m := range msgs {
		errs[i] = Error{Path: keypath.Path(keypath.Name(s.name)), Text: m}
	}
	return failed(errs)
}

// Numeric accepts any int or float value. An absent value fails the same way
// a non-numeric one does.
func Numeric(name string, opts ...Option) Schema {
	c := apply(opts)
	return scalar{name: name, check: func(v any) []string {
		n, isNum := asNumber(v)
		if !isNum {
			return []string{MsgNumeric}
		}
		if c.nonNegative && n < 0 {
			return []string{MsgNegative}
		}
		return nil
	}}
}

// Int accepts integer values. Floats with an integral value are accepted so
// JSON-decoded input (where every number is a float64) validates.
func Int(name string, opts ...Option) Schema {
	c := apply(opts)
	return scalar{name: name, check: func(v any) []string {
		n, isInt := asInteger(v)
		if !isInt {
			return []string{MsgInteger}
		}
		if c.nonNegative && n < 0 {
			return []string{MsgNegative}
		}
		return nil
	}}
}

// Str accepts string values.
func Str(name string) Schema {
	return scalar{name: name, check: func(v any) []string {
		if _, isStr := v.(string); !isStr {
			return []string{MsgString}
		}
		return nil
	}}
}

// Boolean accepts bool values.
func Boolean(name string) Schema {
	return scalar{name: name, check: func(v any) []string {
		if _, isBool := v.(bool); !isBool {
			return []string{MsgBoolean}
		}
		return nil
	}}
}

// Field describes one member of an array element record.
type Field struct {
	Name     string
	Check    func(any) string // "" means the value is acceptable
	Optional bool
}

// IntField is a required integer member.
func IntField(name string, opts ...Option) Field {
	c := apply(opts)
	return Field{Name: name, Check: func(v any) string {
		n, isInt := asInteger(v)
		if !isInt {
			return MsgInteger
		}
		if c.nonNegative && n < 0 {
			return MsgNegative
		}
		return ""
	}}
}

// NumericField is a required numeric member.
func NumericField(name string, opts ...Option) Field {
	c := apply(opts)
	return Field{Name: name, Check: func(v any) string {
		n, isNum := asNumber(v)
		if !isNum {
			return MsgNumeric
		}
		if c.nonNegative && n < 0 {
			return MsgNegative
		}
		return ""
	}}
}

// StrField is a required string member.
func StrField(name string) Field {
	return Field{Name: name, Check: func(v any) string {
		if _, isStr := v.(string); !isStr {
			return MsgString
		}
		return ""
	}}
}

// array validates an ordered sequence of element records.
type array struct {
	name   string
	fields []Field
}

// ArrayOf accepts a sequence whose elements are records with the given
// fields. With no fields, any sequence passes (elements are atomic).
func ArrayOf(name string, fields ...Field) Schema {
	return array{name: name, fields: fields}
}

func (a array) Keys() KeyMap {
	elem := make(KeyMap, len(a.fields))
	for i, f := range a.fields {
		elem[i] = ScalarKey{Name: f.Name}
	}
	return KeyMap{ArrayKey{Name: a.name, Elem: elem}}
}

func (a array) Validate(record map[string]any) Result {
	seq, isSeq := record[a.name].([]any)
	if !isSeq {
		return failed([]Error{{Path: keypath.Path(keypath.Name(a.name)), Text: MsgArray}})
	}
	var errs []Error
	for i, elem := range seq {
		elemPath := keypath.Path(keypath.Name(a.name), keypath.Index(i))
		rec, isRec := elem.(map[string]any)
		if !isRec {
			if len(a.fields) > 0 {
				errs = append(errs, Error{Path: elemPath, Text: MsgRecord})
			}
			continue
		}
		for _, f := range a.fields {
			fieldPath := elemPath.Child(keypath.Name(f.Name))
			v, present := rec[f.Name]
			if !present {
				if !f.Optional {
					errs = append(errs, Error{Path: fieldPath, Text: MsgMissing})
				}
				continue
			}
			if msg := f.Check(v); msg != "" {
				errs = append(errs, Error{Path: fieldPath, Text: msg})
			}
		}
	}
	return failed(errs)
}

func apply(opts []Option) constraints {
	var c constraints
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// asNumber widens any supported numeric type to float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// asInteger accepts integer types and integral floats.
func asInteger(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

package harness

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/results"
)

// AssertionError is returned when an expectation fails. It carries enough
// context to debug the failure without re-running the scenario.
type AssertionError struct {
	Fact     string // "module.name", or "input_errors" for the aggregate
	Path     string // position within the value, when the mismatch is nested
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "assertion failed: %s", e.Fact)
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	fmt.Fprintf(&b, "\n  expected: %s\n  actual: %s", e.Expected, e.Actual)
	return b.String()
}

// matchSlot compares an expected value (decoded from scenario YAML) against
// a results slot, subset semantics.
func matchSlot(label string, expected any, slot results.Slot) error {
	return match(label, "", expected, plainSlot(slot))
}

// matchInputErrors compares the expected aggregate exactly: same paths,
// same message sets.
func matchInputErrors(expected map[string][]string, actual fact.BadInputs) error {
	if len(expected) != len(actual) {
		return &AssertionError{
			Fact:     "input_errors",
			Expected: fmt.Sprintf("%d path(s): %s", len(expected), pathList(expected)),
			Actual:   fmt.Sprintf("%d path(s): %s", len(actual), badInputPathList(actual)),
		}
	}
	for path, msgs := range expected {
		got, present := actual[path]
		if !present {
			return &AssertionError{
				Fact:     "input_errors",
				Path:     path,
				Expected: fmt.Sprintf("%v", msgs),
				Actual:   "path absent",
			}
		}
		if !reflect.DeepEqual(msgs, []string(got)) {
			return &AssertionError{
				Fact:     "input_errors",
				Path:     path,
				Expected: fmt.Sprintf("%v", msgs),
				Actual:   fmt.Sprintf("%v", got),
			}
		}
	}
	return nil
}

// plainSlot converts a results slot into plain nested values mirroring the
// canonical encoding: per-entity slots become decimal-string keyed maps,
// error values become {errors: {...}}.
func plainSlot(slot results.Slot) any {
	switch s := slot.(type) {
	case results.Single:
		return plainValue(s.Value)
	case results.PerEntity:
		out := make(map[string]any, len(s))
		for id, v := range s {
			out[strconv.Itoa(int(id))] = plainValue(v)
		}
		return out
	default:
		return nil
	}
}

func plainValue(v fact.Value) any {
	switch val := v.(type) {
	case fact.Computed:
		return normalize(val.Payload)
	case fact.Errors:
		errs := make(map[string]any, 2)
		if len(val.BadInputs) > 0 {
			bad := make(map[string]any, len(val.BadInputs))
			for path, msgs := range val.BadInputs {
				bad[path] = normalize([]string(msgs))
			}
			errs["bad_inputs"] = bad
		}
		if len(val.DependencyUnmet) > 0 {
			unmet := make(map[string]any, len(val.DependencyUnmet))
			for module, names := range val.DependencyUnmet {
				strs := make([]any, len(names))
				for i, n := range names {
					strs[i] = string(n)
				}
				unmet[string(module)] = strs
			}
			errs["dependency_unmet"] = unmet
		}
		return map[string]any{"errors": errs}
	case fact.Incomplete:
		return map[string]any{"incomplete": true}
	default:
		return nil
	}
}

// normalize flattens typed slices and maps into the []any / map[string]any
// shapes YAML decoding produces, so comparison is shape-insensitive.
func normalize(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalize(elem)
		}
		return out
	case []float64:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = elem
		}
		return out
	case []int:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = elem
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = elem
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = normalize(elem)
		}
		return out
	default:
		return v
	}
}

// match recursively compares expected against actual with subset semantics
// for maps and numeric coercion for scalars.
func match(label, path string, expected, actual any) error {
	fail := func(exp, act any) error {
		return &AssertionError{
			Fact:     label,
			Path:     path,
			Expected: fmt.Sprintf("%v", exp),
			Actual:   fmt.Sprintf("%v", act),
		}
	}

	switch exp := expected.(type) {
	case map[string]any:
		act, isMap := actual.(map[string]any)
		if !isMap {
			return fail(exp, actual)
		}
		for key, expElem := range exp {
			actElem, present := act[key]
			if !present {
				return &AssertionError{
					Fact:     label,
					Path:     join(path, key),
					Expected: fmt.Sprintf("%v", expElem),
					Actual:   "key absent",
				}
			}
			if err := match(label, join(path, key), expElem, actElem); err != nil {
				return err
			}
		}
		return nil

	case []any:
		act, isSlice := actual.([]any)
		if !isSlice || len(act) != len(exp) {
			return fail(exp, actual)
		}
		for i := range exp {
			if err := match(label, fmt.Sprintf("%s[%d]", path, i), exp[i], act[i]); err != nil {
				return err
			}
		}
		return nil

	default:
		if expNum, expIsNum := asFloat(expected); expIsNum {
			actNum, actIsNum := asFloat(actual)
			if !actIsNum || expNum != actNum {
				return fail(expected, actual)
			}
			return nil
		}
		if !reflect.DeepEqual(expected, actual) {
			return fail(expected, actual)
		}
		return nil
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func pathList(m map[string][]string) string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return strings.Join(paths, ", ")
}

func badInputPathList(m fact.BadInputs) string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return strings.Join(paths, ", ")
}

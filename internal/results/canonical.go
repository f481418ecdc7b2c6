package results

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/factgraph/internal/fact"
)

// Encode produces deterministic JSON for a results cache: object keys
// sorted, strings NFC normalized, no HTML escaping, floats in shortest
// round-trip form. Golden tests and the CLI both render through this, so
// the same results always serialize to the same bytes.
//
// Value encoding:
//   - Computed   → the payload itself
//   - Errors     → {"errors": {"bad_inputs": ..., "dependency_unmet": ...}}
//   - Incomplete → {"incomplete": true}
//
// Per-entity slots encode as objects keyed by the decimal entity id.
func Encode(r Results) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, module := range sortedModules(r) {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(&buf, string(module))
		buf.WriteByte(':')
		if err := encodeModule(&buf, r[module]); err != nil {
			return nil, fmt.Errorf("module %s: %w", module, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func sortedModules(r Results) []fact.ModuleName {
	names := make([]string, 0, len(r))
	for module := range r {
		names = append(names, string(module))
	}
	sort.Strings(names)
	out := make([]fact.ModuleName, len(names))
	for i, name := range names {
		out[i] = fact.ModuleName(name)
	}
	return out
}

func encodeModule(buf *bytes.Buffer, facts map[fact.FactName]Slot) error {
	names := make([]string, 0, len(facts))
	for name := range facts {
		names = append(names, string(name))
	}
	sort.Strings(names)

	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, name)
		buf.WriteByte(':')
		if err := encodeSlot(buf, facts[fact.FactName(name)]); err != nil {
			return fmt.Errorf("fact %s: %w", name, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeSlot(buf *bytes.Buffer, slot Slot) error {
	switch s := slot.(type) {
	case Single:
		return encodeValue(buf, s.Value)
	case PerEntity:
		ids := make([]int, 0, len(s))
		for id := range s {
			ids = append(ids, int(id))
		}
		sort.Ints(ids)
		buf.WriteByte('{')
		for i, id := range ids {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, strconv.Itoa(id))
			buf.WriteByte(':')
			if err := encodeValue(buf, s[fact.EntityID(id)]); err != nil {
				return fmt.Errorf("entity %d: %w", id, err)
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("unknown slot type %T", slot)
	}
}

func encodeValue(buf *bytes.Buffer, v fact.Value) error {
	switch val := v.(type) {
	case fact.Computed:
		return encodePayload(buf, val.Payload)
	case fact.Errors:
		return encodeErrors(buf, val)
	case fact.Incomplete:
		buf.WriteString(`{"incomplete":true}`)
		return nil
	default:
		return fmt.Errorf("unknown value type %T", v)
	}
}

func encodeErrors(buf *bytes.Buffer, e fact.Errors) error {
	buf.WriteString(`{"errors":{`)
	wroteField := false
	if len(e.BadInputs) > 0 {
		buf.WriteString(`"bad_inputs":{`)
		paths := make([]string, 0, len(e.BadInputs))
		for path := range e.BadInputs {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for i, path := range paths {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, path)
			buf.WriteByte(':')
			writeStringSlice(buf, e.BadInputs[path])
		}
		buf.WriteByte('}')
		wroteField = true
	}
	if len(e.DependencyUnmet) > 0 {
		if wroteField {
			buf.WriteByte(',')
		}
		buf.WriteString(`"dependency_unmet":{`)
		modules := make([]string, 0, len(e.DependencyUnmet))
		for module := range e.DependencyUnmet {
			modules = append(modules, string(module))
		}
		sort.Strings(modules)
		for i, module := range modules {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, module)
			buf.WriteByte(':')
			names := e.DependencyUnmet[fact.ModuleName(module)]
			strs := make([]string, len(names))
			for j, n := range names {
				strs[j] = string(n)
			}
			writeStringSlice(buf, strs)
		}
		buf.WriteByte('}')
	}
	buf.WriteString(`}}`)
	return nil
}

// encodePayload marshals an arbitrary computed payload deterministically.
func encodePayload(buf *bytes.Buffer, payload any) error {
	switch p := payload.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if p {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		writeString(buf, p)
	case int:
		buf.WriteString(strconv.Itoa(p))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(p), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(p, 10))
	case float32:
		buf.WriteString(strconv.FormatFloat(float64(p), 'g', -1, 32))
	case float64:
		buf.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
	case []any:
		buf.WriteByte('[')
		for i, elem := range p {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodePayload(buf, elem); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case []float64:
		buf.WriteByte('[')
		for i, elem := range p {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.FormatFloat(elem, 'g', -1, 64))
		}
		buf.WriteByte(']')
	case []int:
		buf.WriteByte('[')
		for i, elem := range p {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Itoa(elem))
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(p))
		for k := range p {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			if err := encodePayload(buf, p[k]); err != nil {
				return fmt.Errorf("[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported payload type %T", payload)
	}
	return nil
}

// writeStringSlice encodes an ordered message set.
func writeStringSlice(buf *bytes.Buffer, strs []string) {
	buf.WriteByte('[')
	for i, s := range strs {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, s)
	}
	buf.WriteByte(']')
}

// writeString encodes a string NFC normalized with HTML escaping disabled.
func writeString(buf *bytes.Buffer, s string) {
	normalized := norm.NFC.String(s)
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// Encoding a plain string cannot fail.
	_ = enc.Encode(normalized)
	out := tmp.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	buf.Write(out)
}

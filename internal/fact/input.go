package fact

// Input is the externally supplied input record for one evaluation. Keys are
// input names or entity names; entity collections are ordered sequences of
// records addressed by integer index.
//
// The engine does not prescribe a serialization format; anything that
// decodes into nested map[string]any / []any shapes works (the CLI and the
// harness both decode YAML into this).
type Input map[string]any

// EntityIDs returns [0 .. N-1] where N is the length of the sequence stored
// under the entity name, or nil when the key is absent or not a sequence.
//
// This is the single extensibility point for switching to keyed entities:
// everything downstream consumes the returned IDs, never the raw sequence
// length.
func (in Input) EntityIDs(entity EntityName) []EntityID {
	seq, isSeq := in[string(entity)].([]any)
	if !isSeq {
		return nil
	}
	ids := make([]EntityID, len(seq))
	for i := range seq {
		ids[i] = EntityID(i)
	}
	return ids
}

// Value returns the raw value stored under a top-level input name.
func (in Input) Value(name InputName) (any, bool) {
	v, present := in[string(name)]
	return v, present
}

// PerEntityValue fetches input[entity][id][name], the per-entity form of an
// input field.
func (in Input) PerEntityValue(entity EntityName, id EntityID, name InputName) (any, bool) {
	seq, isSeq := in[string(entity)].([]any)
	if !isSeq || id < 0 || int(id) >= len(seq) {
		return nil, false
	}
	rec, isRec := seq[int(id)].(map[string]any)
	if !isRec {
		return nil, false
	}
	v, present := rec[string(name)]
	return v, present
}

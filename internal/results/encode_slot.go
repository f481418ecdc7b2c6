package results

import "bytes"

// EncodeSlot renders a single slot with the canonical rules of Encode.
// The CLI uses this for per-fact text output.
func EncodeSlot(slot Slot) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeSlot(&buf, slot); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factgraph/internal/keypath"
)

func circlesKey() ArrayKey {
	return ArrayKey{Name: "circles", Elem: KeyMap{ScalarKey{Name: "radius"}}}
}

func TestScalarKeyMatch(t *testing.T) {
	k := ScalarKey{Name: "scale"}

	assert.True(t, k.Match(keypath.Path(keypath.Name("scale"))))
	assert.False(t, k.Match(keypath.Path(keypath.Name("other"))))
	assert.False(t, k.Match(keypath.Path(keypath.Name("scale"), keypath.Name("x"))))
	assert.False(t, k.Match(keypath.Path(keypath.Index(0))))
}

func TestArrayKeyMatch(t *testing.T) {
	k := circlesKey()

	tests := []struct {
		name string
		path keypath.KeyPath
		want bool
	}{
		{"name_only", keypath.Path(keypath.Name("circles")), true},
		{"name_and_index", keypath.Path(keypath.Name("circles"), keypath.Index(0)), true},
		{"any_index_matches", keypath.Path(keypath.Name("circles"), keypath.Index(42)), true},
		{"full_leaf", keypath.Path(keypath.Name("circles"), keypath.Index(1), keypath.Name("radius")), true},
		{"wrong_member", keypath.Path(keypath.Name("circles"), keypath.Index(0), keypath.Name("area")), false},
		{"missing_index_position", keypath.Path(keypath.Name("circles"), keypath.Name("radius")), false},
		{"wrong_name", keypath.Path(keypath.Name("squares")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Match(tt.path))
		})
	}
}

func TestHashKeyMatch(t *testing.T) {
	k := HashKey{Name: "address", Members: KeyMap{
		ScalarKey{Name: "street"},
		ScalarKey{Name: "zip"},
	}}

	assert.True(t, k.Match(keypath.Path(keypath.Name("address"))))
	assert.True(t, k.Match(keypath.Path(keypath.Name("address"), keypath.Name("zip"))))
	assert.False(t, k.Match(keypath.Path(keypath.Name("address"), keypath.Name("city"))))
	assert.False(t, k.Match(keypath.Path(keypath.Name("address"), keypath.Index(0))))
}

func TestKeyMapWriteDropsUndeclaredKeys(t *testing.T) {
	km := KeyMap{ScalarKey{Name: "scale"}, circlesKey()}

	record := map[string]any{
		"scale":     5,
		"circles":   []any{map[string]any{"radius": 1, "color": "red"}},
		"unrelated": "x",
	}
	got := km.Write(record)

	require.Len(t, got, 2)
	assert.Equal(t, 5, got["scale"])
	assert.Equal(t, []any{map[string]any{"radius": 1}}, got["circles"])
	assert.NotContains(t, got, "unrelated")

	// The source record is untouched.
	assert.Contains(t, record, "unrelated")
	assert.Contains(t, record["circles"].([]any)[0], "color")
}

func TestKeyMapWriteKeepsAtomicElements(t *testing.T) {
	km := KeyMap{ArrayKey{Name: "scores"}}
	got := km.Write(map[string]any{"scores": []any{1, 2, 3}})
	assert.Equal(t, []any{1, 2, 3}, got["scores"])
}

func TestKeyMapWriteNestedHash(t *testing.T) {
	km := KeyMap{HashKey{Name: "address", Members: KeyMap{ScalarKey{Name: "zip"}}}}
	got := km.Write(map[string]any{"address": map[string]any{"zip": "10001", "street": "Main"}})
	assert.Equal(t, map[string]any{"zip": "10001"}, got["address"])
}

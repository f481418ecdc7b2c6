package fact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityIDs(t *testing.T) {
	in := Input{"applicants": []any{
		map[string]any{"income": 48},
		map[string]any{"income": 380},
	}}

	assert.Equal(t, []EntityID{0, 1}, in.EntityIDs("applicants"))
	assert.Empty(t, in.EntityIDs("dependents"))
}

func TestEntityIDsNonSequence(t *testing.T) {
	in := Input{"applicants": "not a list"}
	assert.Empty(t, in.EntityIDs("applicants"))
}

func TestPerEntityValue(t *testing.T) {
	in := Input{"applicants": []any{
		map[string]any{"income": 48},
		map[string]any{},
	}}

	v, present := in.PerEntityValue("applicants", 0, "income")
	assert.True(t, present)
	assert.Equal(t, 48, v)

	_, present = in.PerEntityValue("applicants", 1, "income")
	assert.False(t, present)

	_, present = in.PerEntityValue("applicants", 2, "income")
	assert.False(t, present)

	_, present = in.PerEntityValue("dependents", 0, "income")
	assert.False(t, present)
}

func TestValue(t *testing.T) {
	in := Input{"scale": 5}
	v, present := in.Value("scale")
	assert.True(t, present)
	assert.Equal(t, 5, v)
	_, present = in.Value("circles")
	assert.False(t, present)
}

package fact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factgraph/internal/keypath"
)

func TestErrorsEmpty(t *testing.T) {
	var e Errors
	assert.True(t, e.Empty())

	e.AddBadInput(keypath.Path(keypath.Name("scale")), "must be Numeric")
	assert.False(t, e.Empty())

	var unmetOnly Errors
	unmetOnly.AddUnmet("math", "squared_scale")
	assert.False(t, unmetOnly.Empty())
}

func TestAddBadInputDeduplicates(t *testing.T) {
	var e Errors
	path := keypath.Path(keypath.Name("scale"))
	e.AddBadInput(path, "must be Numeric")
	e.AddBadInput(path, "must be Numeric")
	e.AddBadInput(path, "must not be negative")

	require.Len(t, e.BadInputs, 1)
	assert.Equal(t, Messages{"must be Numeric", "must not be negative"}, e.BadInputs["scale"])
}

func TestAddUnmetPreservesOrderPerModule(t *testing.T) {
	var e Errors
	e.AddUnmet("math", "pi")
	e.AddUnmet("math", "squared_scale")
	e.AddUnmet("math", "pi")
	e.AddUnmet("simple", "two")

	assert.Equal(t, []FactName{"pi", "squared_scale"}, e.DependencyUnmet["math"])
	assert.Equal(t, []FactName{"two"}, e.DependencyUnmet["simple"])
}

func TestMergeBadInputs(t *testing.T) {
	var acc Errors
	acc.AddBadInput(keypath.Path(keypath.Name("scale")), "must be Numeric")

	acc.MergeBadInputs(BadInputs{
		"scale":   Messages{"must be Numeric"},
		"circles": Messages{"must be an array"},
	})

	require.Len(t, acc.BadInputs, 2)
	assert.Equal(t, Messages{"must be Numeric"}, acc.BadInputs["scale"])
	assert.Equal(t, Messages{"must be an array"}, acc.BadInputs["circles"])
}

func TestIsError(t *testing.T) {
	assert.True(t, IsError(Errors{BadInputs: BadInputs{"x": {"bad"}}}))
	assert.False(t, IsError(Computed{Payload: 2}))
	assert.False(t, IsError(Incomplete{}))
}

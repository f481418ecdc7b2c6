package fact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factgraph/internal/keypath"
)

func TestContainerInputs(t *testing.T) {
	c := NewDataContainer(map[InputName]any{"scale": 5}, nil)

	assert.Equal(t, 5, c.Input("scale"))
	assert.True(t, c.HasInput("scale"))
	assert.Nil(t, c.Input("missing"))
	assert.False(t, c.HasInput("missing"))
}

func TestContainerDependencies(t *testing.T) {
	deps := map[FactName]any{
		"pi":       Value(Computed{Payload: 3.14}),
		"eligible": map[EntityID]Value{0: Computed{Payload: true}, 1: Computed{Payload: false}},
	}
	c := NewDataContainer(nil, deps)

	assert.Equal(t, Computed{Payload: 3.14}, c.Dependency("pi"))
	assert.Equal(t, 3.14, c.Computed("pi"))

	fanout := c.Fanout("eligible")
	require.Len(t, fanout, 2)
	assert.Equal(t, Computed{Payload: true}, fanout[0])

	assert.Panics(t, func() { c.Dependency("eligible") })
	assert.Panics(t, func() { c.Fanout("pi") })
	assert.Panics(t, func() { c.Dependency("nope") })
}

func TestDataErrorsWithoutDeferred(t *testing.T) {
	c := NewDataContainer(nil, nil)
	assert.Equal(t, Value(Incomplete{}), c.DataErrors())
}

func TestDataErrorsWithDeferred(t *testing.T) {
	var errs Errors
	errs.AddBadInput(keypath.Path(keypath.Name("scale")), "must be Numeric")
	c := NewDeferredDataContainer(nil, nil, errs)

	got := c.DataErrors()
	require.IsType(t, Errors{}, got)
	assert.Equal(t, Messages{"must be Numeric"}, got.(Errors).BadInputs["scale"])
}

func TestMustMatchPassesThroughSuccess(t *testing.T) {
	c := NewDataContainer(nil, map[FactName]any{"pi": Value(Computed{Payload: 3.14})})
	v := c.MustMatch(func() Value {
		return Computed{Payload: c.Computed("pi").(float64) * 2}
	})
	assert.Equal(t, Computed{Payload: 6.28}, v)
}

func TestMustMatchRecoversToDataErrors(t *testing.T) {
	var errs Errors
	errs.AddUnmet("math", "squared_scale")
	c := NewDeferredDataContainer(nil, map[FactName]any{"squared_scale": Value(errs)}, errs)

	v := c.MustMatch(func() Value {
		// Errors is not Computed; this assertion panics and falls through.
		return Computed{Payload: c.Computed("squared_scale")}
	})
	require.IsType(t, Errors{}, v)
	assert.Equal(t, []FactName{"squared_scale"}, v.(Errors).DependencyUnmet["math"])
}

func TestMustMatchWithoutDeferredYieldsIncomplete(t *testing.T) {
	c := NewDataContainer(nil, nil)
	v := c.MustMatch(func() Value {
		return Computed{Payload: c.Input("x").(int)}
	})
	assert.Equal(t, Value(Incomplete{}), v)
}

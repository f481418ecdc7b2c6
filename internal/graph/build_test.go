package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factgraph/internal/fact"
	"github.com/roach88/factgraph/internal/registry"
)

func TestBuildScalarSlots(t *testing.T) {
	ns := registry.New("simple")
	ns.Constant("two", 2)

	g, err := Build(ns.Defs(), fact.Input{})
	require.NoError(t, err)

	node, built := g.Node("simple", "two")
	require.True(t, built)
	scalar, isScalar := node.(ScalarNode)
	require.True(t, isScalar)
	assert.Equal(t, fact.FactName("two"), scalar.Fact.Name)
	assert.Equal(t, fact.NoEntity, scalar.Fact.EntityID)
}

func TestBuildPerEntityExpansion(t *testing.T) {
	ns := registry.New("applicants")
	ns.Fact("income", func(f *registry.Def) {
		f.PerEntity("applicants")
	})

	in := fact.Input{"applicants": []any{
		map[string]any{"income": 48},
		map[string]any{"income": 380},
		map[string]any{"income": 12},
	}}
	g, err := Build(ns.Defs(), in)
	require.NoError(t, err)

	node, built := g.Node("applicants", "income")
	require.True(t, built)
	entities, isEntity := node.(EntityNode)
	require.True(t, isEntity)
	require.Len(t, entities, 3)
	assert.Equal(t, []fact.EntityID{0, 1, 2}, entities.IDs())
	assert.Equal(t, fact.EntityID(1), entities[1].EntityID)
}

func TestBuildEmptyExpansionIsPresent(t *testing.T) {
	ns := registry.New("applicants")
	ns.Fact("income", func(f *registry.Def) {
		f.PerEntity("applicants")
	})

	g, err := Build(ns.Defs(), fact.Input{})
	require.NoError(t, err)

	node, built := g.Node("applicants", "income")
	require.True(t, built)
	entities, isEntity := node.(EntityNode)
	require.True(t, isEntity)
	assert.Empty(t, entities)
}

func TestBuildMissingDependencyReference(t *testing.T) {
	ns := registry.New("circles")
	ns.Fact("areas", func(f *registry.Def) {
		f.DependencyOn("math", "pi")
	})

	_, err := Build(ns.Defs(), fact.Input{})
	require.Error(t, err)
	assert.True(t, IsMissingDependency(err))

	var mde *MissingDependencyError
	require.ErrorAs(t, err, &mde)
	assert.Equal(t, fact.ModuleName("circles"), mde.Module)
	assert.Equal(t, fact.FactName("areas"), mde.Fact)
	assert.Equal(t, fact.ModuleName("math"), mde.MissingModule)
	assert.Equal(t, fact.FactName("pi"), mde.Missing)
	assert.Contains(t, mde.Error(), "circles.areas")
	assert.Contains(t, mde.Error(), "math.pi")
}

func TestBuildLaterDeclarationWins(t *testing.T) {
	ns := registry.New("simple")
	ns.Constant("two", 2)
	ns.Constant("two", 22)

	g, err := Build(ns.Defs(), fact.Input{})
	require.NoError(t, err)

	node, _ := g.Node("simple", "two")
	assert.Equal(t, 22, node.(ScalarNode).Fact.Constant)
}

func TestDefinitionsDoesNotExpand(t *testing.T) {
	ns := registry.New("base")
	ns.InModule("math", func() { ns.Constant("pi", 3.14) })
	ns.InModule("applicants", func() {
		ns.Fact("income", func(f *registry.Def) {
			f.PerEntity("applicants")
		})
	})

	defs := Definitions(ns.Defs())
	require.Len(t, defs, 2)
	income := defs["applicants"]["income"]
	require.NotNil(t, income)
	assert.Equal(t, fact.NoEntity, income.EntityID)
	assert.Equal(t, fact.EntityName("applicants"), income.PerEntity)
	assert.NotNil(t, defs["math"]["pi"])
}

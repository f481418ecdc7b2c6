package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/factgraph/internal/registry"
)

func TestAnalyzeCyclesCleanDAG(t *testing.T) {
	ns := registry.New("math")
	ns.Constant("pi", 3.14)
	ns.Fact("tau", func(f *registry.Def) {
		f.Dependency("pi")
	})

	assert.Empty(t, AnalyzeCycles(ns.Defs()))
}

func TestAnalyzeCyclesSelfLoop(t *testing.T) {
	ns := registry.New("m")
	ns.Fact("ouroboros", func(f *registry.Def) {
		f.Dependency("ouroboros")
	})

	warnings := AnalyzeCycles(ns.Defs())
	require.Len(t, warnings, 1)
	assert.Equal(t, []string{"m.ouroboros", "m.ouroboros"}, warnings[0].Path)
	assert.Contains(t, warnings[0].Message, "depends on itself")
}

func TestAnalyzeCyclesTwoNodeCycle(t *testing.T) {
	ns := registry.New("base")
	ns.InModule("a", func() {
		ns.Fact("x", func(f *registry.Def) {
			f.DependencyOn("b", "y")
		})
	})
	ns.InModule("b", func() {
		ns.Fact("y", func(f *registry.Def) {
			f.DependencyOn("a", "x")
		})
	})

	warnings := AnalyzeCycles(ns.Defs())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "dependency cycle")
	assert.GreaterOrEqual(t, len(warnings[0].Path), 3)
}

func TestAnalyzeCyclesIgnoresUnresolvableRefs(t *testing.T) {
	ns := registry.New("m")
	ns.Fact("dangling", func(f *registry.Def) {
		f.DependencyOn("ghost", "nothing")
	})

	assert.Empty(t, AnalyzeCycles(ns.Defs()))
}

func TestAnalyzeCyclesEmptyRegistry(t *testing.T) {
	assert.Empty(t, AnalyzeCycles(nil))
}

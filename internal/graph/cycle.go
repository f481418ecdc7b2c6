package graph

import (
	"fmt"
	"strings"

	"github.com/roach88/factgraph/internal/fact"
)

// CycleWarning flags a dependency cycle among fact declarations.
//
// The engine's contract is an acyclic dependency set; a cycle manifests at
// evaluation time as unbounded recursion. This analysis is static and
// advisory - Build never runs it and never rejects a cyclic registry. The
// CLI surfaces the warnings so declaration authors see them early.
type CycleWarning struct {
	Path    []string `json:"path"`    // cycle path: ["a.x", "b.y", "a.x"]
	Message string   `json:"message"` // human-readable description
}

// AnalyzeCycles performs static cycle analysis on a registry.
//
// The algorithm:
//  1. Build the fact → dependency edge set from the declarations
//  2. Find strongly connected components with Tarjan's algorithm
//  3. Report each SCC of size > 1, and each self-loop, as a warning
//
// A DAG returns an empty list.
func AnalyzeCycles(defs []*fact.FactDef) []CycleWarning {
	if len(defs) == 0 {
		return nil
	}

	graph := buildDependencyEdges(defs)
	sccs := tarjanSCC(graph)

	var warnings []CycleWarning
	for _, scc := range sccs {
		if len(scc) > 1 || (len(scc) == 1 && hasSelfLoop(scc[0], graph)) {
			warnings = append(warnings, sccToWarning(scc, graph))
		}
	}
	return warnings
}

// coordinate is the "module.name" form used as a node id.
func coordinate(module fact.ModuleName, name fact.FactName) string {
	return fmt.Sprintf("%s.%s", module, name)
}

// dependencyEdges maps a fact coordinate to the coordinates it depends on.
type dependencyEdges map[string][]string

func buildDependencyEdges(defs []*fact.FactDef) dependencyEdges {
	declared := make(map[string]bool, len(defs))
	for _, def := range defs {
		declared[coordinate(def.Module, def.Name)] = true
	}

	graph := make(dependencyEdges, len(defs))
	for _, def := range defs {
		from := coordinate(def.Module, def.Name)
		if graph[from] == nil {
			graph[from] = []string{}
		}
		for _, ref := range def.Dependencies {
			to := coordinate(ref.Module, ref.Name)
			// Unresolvable references are Build's concern, not cycle analysis'.
			if declared[to] {
				graph[from] = append(graph[from], to)
			}
		}
	}
	return graph
}

func hasSelfLoop(node string, graph dependencyEdges) bool {
	for _, neighbor := range graph[node] {
		if neighbor == node {
			return true
		}
	}
	return false
}

// tarjanSCC finds strongly connected components.
// Single-node SCCs without self-loops are not cycles.
func tarjanSCC(graph dependencyEdges) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for node := range graph {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}
	return sccs
}

func sccToWarning(scc []string, graph dependencyEdges) CycleWarning {
	if len(scc) == 1 {
		node := scc[0]
		return CycleWarning{
			Path:    []string{node, node},
			Message: fmt.Sprintf("fact depends on itself: %s", node),
		}
	}

	path := reconstructCyclePath(scc, graph)
	return CycleWarning{
		Path:    path,
		Message: fmt.Sprintf("dependency cycle: %s", strings.Join(path, " -> ")),
	}
}

// reconstructCyclePath walks edges within an SCC from its first node back
// to itself.
func reconstructCyclePath(scc []string, graph dependencyEdges) []string {
	sccSet := make(map[string]bool, len(scc))
	for _, node := range scc {
		sccSet[node] = true
	}

	start := scc[0]
	current := start
	path := []string{current}
	visited := make(map[string]bool)

	for {
		visited[current] = true

		var next string
		for _, neighbor := range graph[current] {
			if sccSet[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}
		if next == "" {
			break
		}

		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}
	return path
}

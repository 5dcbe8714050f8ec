package datastructure

import (
	"github.com/lintang-b-s/hhroute/pkg/util"
)

// StronglyConnectedComponents runs kosaraju's algorithm on the original road network (level 0 edges,
// shortcuts skipped). returns the component id of every vertex and the number of components.
func (g *StaticGraph) StronglyConnectedComponents() ([]Index, int) {
	n := g.NumberOfVertices()

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := 0; v < n; v++ {
		if !visited[v] {
			g.dfs(Index(v), &order, visited, false)
		}
	}

	order = util.ReverseG(order)

	// reset visited
	visited = make([]bool, n)
	sccs := make([]Index, n)
	numComponents := 0
	component := make([]Index, 0, 10)
	for _, v := range order {
		if visited[v] {
			continue
		}
		component = component[:0]
		g.dfs(v, &component, visited, true)
		for _, u := range component {
			sccs[u] = Index(numComponents)
		}
		numComponents++
	}
	return sccs, numComponents
}

// LargestComponent vertices of the biggest strongly connected component.
func (g *StaticGraph) LargestComponent() []Index {
	sccs, numComponents := g.StronglyConnectedComponents()
	if numComponents == 0 {
		return nil
	}
	size := make([]int, numComponents)
	for _, c := range sccs {
		size[c]++
	}
	largest := 0
	for c := range size {
		if size[c] > size[largest] {
			largest = c
		}
	}
	vertices := make([]Index, 0, size[largest])
	for v, c := range sccs {
		if int(c) == largest {
			vertices = append(vertices, Index(v))
		}
	}
	return vertices
}

// dfs. a record u->v with the backward flag stands for the road v->u, the reversed pass follows those.
func (g *StaticGraph) dfs(v Index, output *[]Index, visited []bool, reversed bool) {
	visited[v] = true

	for i := g.firstEdge[v]; i < g.firstEdge[v+1]; i++ {
		e := &g.edges[i]
		if e.IsShortcut() || !e.IsValidAt(0) {
			continue
		}
		if (!reversed && !e.IsForward()) || (reversed && !e.IsBackward()) {
			continue
		}
		if !visited[e.GetTarget()] {
			g.dfs(e.GetTarget(), output, visited, reversed)
		}
	}

	*output = append(*output, v)
}

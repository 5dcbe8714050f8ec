package datastructure

import (
	"fmt"
	"sort"

	"github.com/golang/geo/s2"
)

// SpatialOrder vertex ids sorted by the leaf s2 cell of their coordinates. s2 cell ids follow a hilbert curve,
// vertices close in this order are close on the map, so consecutive runs of it make compact blocks.
func (g *StaticGraph) SpatialOrder() []Index {
	cells := make([]s2.CellID, len(g.vertices))
	order := make([]Index, len(g.vertices))
	for i, v := range g.vertices {
		cells[i] = s2.CellIDFromLatLng(s2.LatLngFromDegrees(v.GetLat(), v.GetLon()))
		order[i] = Index(i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return cells[order[i]] < cells[order[j]]
	})
	return order
}

// Renumber returns the graph whose vertex i is vertex order[i] of g, and the new id of every old vertex.
// adjacency keeps its order so edges stay listed by level.
func (g *StaticGraph) Renumber(order []Index) (*StaticGraph, []Index, error) {
	n := len(g.vertices)
	if len(order) != n {
		return nil, nil, fmt.Errorf("%w: order has %d vertices, graph %d", ErrInvalidHierarchy, len(order), n)
	}

	newID := make([]Index, n)
	for i := range newID {
		newID[i] = INVALID_VERTEX_ID
	}
	for i, old := range order {
		if int(old) >= n || newID[old] != INVALID_VERTEX_ID {
			return nil, nil, fmt.Errorf("%w: order is not a permutation at position %d (vertex %d)",
				ErrInvalidHierarchy, i, old)
		}
		newID[old] = Index(i)
	}

	vertices := make([]*Vertex, n)
	firstEdge := make([]Index, n+1)
	edges := make([]Edge, 0, len(g.edges))
	for i, old := range order {
		v := g.vertices[old]
		vertices[i] = newVertexE6(Index(i), v.level, v.neighborhood, v.lat, v.lon)

		firstEdge[i] = Index(len(edges))
		for _, e := range g.edges[g.firstEdge[old]:g.firstEdge[old+1]] {
			edges = append(edges, newEdgeWithFlags(Index(i), newID[e.target], e.weight, e.flags, e.minLevel, e.level))
		}
	}
	firstEdge[n] = Index(len(edges))

	return NewStaticGraph(vertices, firstEdge, edges, g.numLevels, g.properties), newID, nil
}

// CrossBlockEdges adjacency records whose endpoints land in different blocks of verticesPerBlock consecutive ids.
func (g *StaticGraph) CrossBlockEdges(verticesPerBlock int) int {
	if verticesPerBlock <= 0 {
		verticesPerBlock = DefaultVerticesPerBlock
	}
	cross := 0
	for _, e := range g.edges {
		if int(e.source)/verticesPerBlock != int(e.target)/verticesPerBlock {
			cross++
		}
	}
	return cross
}

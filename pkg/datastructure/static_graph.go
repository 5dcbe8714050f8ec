package datastructure

import (
	"fmt"
	"sort"

	"github.com/lintang-b-s/hhroute/pkg"
	"github.com/lintang-b-s/hhroute/pkg/util"
)

// StaticGraph whole hierarchy resident in memory. adjacency is stored compressed sparse row style,
// the edges of every vertex sorted by level descending so the edges listed at level l are a prefix.
type StaticGraph struct {
	vertices   []*Vertex
	firstEdge  []Index // len(vertices)+1
	edges      []Edge
	numLevels  int
	properties GraphProperties
}

func NewStaticGraph(vertices []*Vertex, firstEdge []Index, edges []Edge, numLevels int,
	properties GraphProperties) *StaticGraph {
	return &StaticGraph{
		vertices:   vertices,
		firstEdge:  firstEdge,
		edges:      edges,
		numLevels:  numLevels,
		properties: properties,
	}
}

func (g *StaticGraph) assertVertex(v Index) {
	util.AssertPanic(int(v) < len(g.vertices), fmt.Sprintf("vertex id %d out of range [0, %d)", v, len(g.vertices)))
}

func (g *StaticGraph) GetVertex(v Index) (*Vertex, error) {
	g.assertVertex(v)
	return g.vertices[v], nil
}

func (g *StaticGraph) GetAdjacentEdges(v Index, level uint8) ([]Edge, error) {
	g.assertVertex(v)
	return listedAt(g.edges[g.firstEdge[v]:g.firstEdge[v+1]], level), nil
}

func (g *StaticGraph) GetNeighborhood(v Index, level uint8) (int, error) {
	g.assertVertex(v)
	return g.vertices[v].GetNeighborhood(level), nil
}

func (g *StaticGraph) NumLevels() int {
	return g.numLevels
}

func (g *StaticGraph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *StaticGraph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *StaticGraph) GetProperties() GraphProperties {
	return g.properties
}

func (g *StaticGraph) GetOutDegree(v Index) int {
	return int(g.firstEdge[v+1] - g.firstEdge[v])
}

// ForVertices iterate vertices in id order.
func (g *StaticGraph) ForVertices(handle func(v *Vertex)) {
	for _, v := range g.vertices {
		handle(v)
	}
}

// TopLevelCoreVertices vertices in the core of the top level, the vertices of the distance table.
func (g *StaticGraph) TopLevelCoreVertices() []Index {
	top := uint8(g.numLevels - 1)
	core := make([]Index, 0)
	for _, v := range g.vertices {
		if v.GetLevel() == top && v.GetNeighborhood(top) == pkg.INFINITY_2 {
			core = append(core, v.GetID())
		}
	}
	return core
}

// listedAt prefix of edges (sorted by level descending) with level >= l.
func listedAt(edges []Edge, level uint8) []Edge {
	n := sort.Search(len(edges), func(i int) bool {
		return edges[i].level < level
	})
	return edges[:n]
}

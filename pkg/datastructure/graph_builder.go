package datastructure

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lintang-b-s/hhroute/pkg"
)

var ErrInvalidHierarchy = errors.New("invalid highway hierarchy")

// GraphBuilder collects vertices and adjacency records of a hierarchy and builds a StaticGraph.
type GraphBuilder struct {
	vertices   []*Vertex
	adjacency  [][]Edge
	properties GraphProperties
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices:  make([]*Vertex, 0),
		adjacency: make([][]Edge, 0),
	}
}

func (b *GraphBuilder) SetDowngradedEdges(downgraded bool) {
	b.properties.DowngradedEdges = downgraded
}

// AddVertex adds a vertex with neighborhood radius per level 0..len(neighborhood)-1, returns its id.
func (b *GraphBuilder) AddVertex(neighborhood []int, lat, lon float64) Index {
	if len(neighborhood) == 0 {
		neighborhood = []int{pkg.INFINITY_1}
	}
	nh := make([]int32, len(neighborhood))
	for i, r := range neighborhood {
		nh[i] = int32(r)
	}
	id := Index(len(b.vertices))
	b.vertices = append(b.vertices, NewVertex(id, uint8(len(neighborhood)-1), nh, lat, lon))
	b.adjacency = append(b.adjacency, make([]Edge, 0, 4))
	return id
}

// AddEdge adds the adjacency record e to its source vertex.
func (b *GraphBuilder) AddEdge(e Edge) {
	b.adjacency[e.source] = append(b.adjacency[e.source], e)
}

// AddRoad adds the records of the road u->v at both endpoints. a two way road (oneway=false) is usable by
// both search directions from both endpoints.
func (b *GraphBuilder) AddRoad(u, v Index, weight uint32, oneway, shortcut, core bool, minLevel, level uint8) {
	b.AddEdge(NewEdge(u, v, weight, true, !oneway, shortcut, core, minLevel, level))
	b.AddEdge(NewEdge(v, u, weight, !oneway, true, shortcut, core, minLevel, level))
}

func (b *GraphBuilder) NumberOfVertices() int {
	return len(b.vertices)
}

func (b *GraphBuilder) Build() (*StaticGraph, error) {
	numLevels := 1
	numEdges := 0
	for _, v := range b.vertices {
		if err := validateNeighborhood(v); err != nil {
			return nil, err
		}
		if int(v.level)+1 > numLevels {
			numLevels = int(v.level) + 1
		}
	}

	for u, edges := range b.adjacency {
		for _, e := range edges {
			if int(e.target) >= len(b.vertices) {
				return nil, fmt.Errorf("%w: edge %d->%d target out of range", ErrInvalidHierarchy, u, e.target)
			}
			if e.minLevel > e.level {
				return nil, fmt.Errorf("%w: edge %d->%d min level %d above level %d", ErrInvalidHierarchy, u,
					e.target, e.minLevel, e.level)
			}
			if int(e.level) >= numLevels {
				numLevels = int(e.level) + 1
			}
		}
		numEdges += len(edges)
	}

	firstEdge := make([]Index, len(b.vertices)+1)
	edges := make([]Edge, 0, numEdges)
	for u := range b.adjacency {
		adj := b.adjacency[u]
		sort.SliceStable(adj, func(i, j int) bool {
			return adj[i].level > adj[j].level
		})
		firstEdge[u] = Index(len(edges))
		edges = append(edges, adj...)
	}
	firstEdge[len(b.vertices)] = Index(len(edges))

	return NewStaticGraph(b.vertices, firstEdge, edges, numLevels, b.properties), nil
}

func validateNeighborhood(v *Vertex) error {
	if len(v.neighborhood) != int(v.level)+1 {
		return fmt.Errorf("%w: vertex %d has %d neighborhood radii for top level %d", ErrInvalidHierarchy,
			v.id, len(v.neighborhood), v.level)
	}
	for l := 1; l < len(v.neighborhood); l++ {
		if v.neighborhood[l] < v.neighborhood[l-1] {
			return fmt.Errorf("%w: vertex %d neighborhood decreases at level %d", ErrInvalidHierarchy, v.id, l)
		}
	}
	for _, r := range v.neighborhood {
		if r < 0 {
			return fmt.Errorf("%w: vertex %d negative neighborhood radius", ErrInvalidHierarchy, v.id)
		}
	}
	return nil
}

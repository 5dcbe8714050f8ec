package datastructure

import (
	"testing"

	"github.com/lintang-b-s/hhroute/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// randomHierarchy two level hierarchy: every vertex at level 1, every edge valid at both levels,
// random level 0 neighborhood radii. a few one way roads and a shortcut per 10 vertices.
func randomHierarchy(t *testing.T, n int, seed uint64) *StaticGraph {
	t.Helper()
	rd := rand.New(rand.NewSource(seed))
	b := NewGraphBuilder()
	for i := 0; i < n; i++ {
		b.AddVertex([]int{rd.Intn(30), pkg.INFINITY_1}, -6.2+rd.Float64()*0.1, 106.8+rd.Float64()*0.1)
	}
	for i := 0; i < 3*n; i++ {
		u, v := Index(rd.Intn(n)), Index(rd.Intn(n))
		if u == v {
			continue
		}
		b.AddRoad(u, v, uint32(1+rd.Intn(20)), rd.Intn(4) == 0, false, rd.Intn(2) == 0, 0, 1)
	}
	for i := 0; i < n/10; i++ {
		u, v := Index(rd.Intn(n)), Index(rd.Intn(n))
		if u == v {
			continue
		}
		b.AddRoad(u, v, uint32(40+rd.Intn(20)), true, true, true, 1, 1)
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestGraphBuilderAdjacencyListedByLevel(t *testing.T) {
	b := NewGraphBuilder()
	v0 := b.AddVertex([]int{5, 10, pkg.INFINITY_2}, 0, 0)
	v1 := b.AddVertex([]int{5, 10, pkg.INFINITY_2}, 0, 0)
	v2 := b.AddVertex([]int{5}, 0, 0)

	b.AddRoad(v0, v2, 3, false, false, false, 0, 0)
	b.AddRoad(v0, v1, 7, false, false, true, 0, 2)
	b.AddRoad(v0, v1, 9, true, true, true, 1, 1)

	g, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumLevels())
	assert.Equal(t, 6, g.NumberOfEdges())

	tests := []struct {
		level    uint8
		expected []uint8 // levels of the listed edges
	}{
		{0, []uint8{2, 1, 0}},
		{1, []uint8{2, 1}},
		{2, []uint8{2}},
	}
	for _, tt := range tests {
		edges, err := g.GetAdjacentEdges(v0, tt.level)
		require.NoError(t, err)
		levels := make([]uint8, len(edges))
		for i := range edges {
			levels[i] = edges[i].GetLevel()
		}
		assert.Equal(t, tt.expected, levels, "level %d", tt.level)
	}

	assert.Equal(t, []Index{v0, v1}, g.TopLevelCoreVertices())
}

func TestGraphBuilderRoadRecords(t *testing.T) {
	b := NewGraphBuilder()
	u := b.AddVertex(nil, 0, 0)
	v := b.AddVertex(nil, 0, 0)
	b.AddRoad(u, v, 4, true, false, false, 0, 0)

	g, err := b.Build()
	require.NoError(t, err)

	atU, err := g.GetAdjacentEdges(u, 0)
	require.NoError(t, err)
	require.Len(t, atU, 1)
	assert.True(t, atU[0].IsForward())
	assert.False(t, atU[0].IsBackward())
	assert.Equal(t, v, atU[0].GetTarget())

	atV, err := g.GetAdjacentEdges(v, 0)
	require.NoError(t, err)
	require.Len(t, atV, 1)
	assert.False(t, atV[0].IsForward())
	assert.True(t, atV[0].IsBackward())
	assert.Equal(t, u, atV[0].GetTarget())

	nh, err := g.GetNeighborhood(u, 0)
	require.NoError(t, err)
	assert.Equal(t, pkg.INFINITY_1, nh)
}

func TestGraphBuilderRejectsInvalidHierarchy(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *GraphBuilder)
	}{
		{
			name: "decreasing neighborhood",
			build: func(b *GraphBuilder) {
				b.AddVertex([]int{10, 5}, 0, 0)
			},
		},
		{
			name: "negative neighborhood",
			build: func(b *GraphBuilder) {
				b.AddVertex([]int{-1}, 0, 0)
			},
		},
		{
			name: "target out of range",
			build: func(b *GraphBuilder) {
				u := b.AddVertex([]int{1}, 0, 0)
				b.AddEdge(NewEdge(u, 7, 1, true, false, false, false, 0, 0))
			},
		},
		{
			name: "min level above level",
			build: func(b *GraphBuilder) {
				u := b.AddVertex([]int{1}, 0, 0)
				v := b.AddVertex([]int{1}, 0, 0)
				b.AddRoad(u, v, 1, false, false, false, 2, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewGraphBuilder()
			tt.build(b)
			_, err := b.Build()
			assert.ErrorIs(t, err, ErrInvalidHierarchy)
		})
	}
}

func TestVertexNeighborhoodAboveTopLevel(t *testing.T) {
	v := NewVertex(3, 1, []int32{4, 9}, -6.175392, 106.827153)
	assert.Equal(t, 4, v.GetNeighborhood(0))
	assert.Equal(t, 9, v.GetNeighborhood(1))
	assert.Equal(t, pkg.INFINITY_1, v.GetNeighborhood(2))
	assert.InDelta(t, -6.175392, v.GetLat(), 1e-6)
	assert.InDelta(t, 106.827153, v.GetLon(), 1e-6)
}

func TestEdgeValidity(t *testing.T) {
	e := NewEdge(0, 1, 5, true, false, true, true, 1, 2)
	assert.False(t, e.IsValidAt(0))
	assert.True(t, e.IsValidAt(1))
	assert.True(t, e.IsValidAt(2))
	assert.False(t, e.IsValidAt(3))
	assert.True(t, e.GetDirection(true))
	assert.False(t, e.GetDirection(false))
	assert.True(t, e.IsShortcut())
	assert.True(t, e.IsCore())
}

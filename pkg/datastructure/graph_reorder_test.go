package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// shuffledGrid side x side grid of two way roads 0.001 degrees apart, vertex ids assigned in random order.
func shuffledGrid(t *testing.T, side int, seed uint64) *StaticGraph {
	t.Helper()
	rd := rand.New(rand.NewSource(seed))
	cell := rd.Perm(side * side) // vertex id -> grid cell

	id := make([]Index, side*side) // grid cell -> vertex id
	b := NewGraphBuilder()
	for v, c := range cell {
		b.AddVertex([]int{rd.Intn(10)}, -6.2+float64(c/side)*0.001, 106.8+float64(c%side)*0.001)
		id[c] = Index(v)
	}
	for c := 0; c < side*side; c++ {
		if c%side+1 < side {
			b.AddRoad(id[c], id[c+1], uint32(1+rd.Intn(9)), false, false, false, 0, 0)
		}
		if c+side < side*side {
			b.AddRoad(id[c], id[c+side], uint32(1+rd.Intn(9)), rd.Intn(4) == 0, false, false, 0, 0)
		}
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestRenumberKeepsGraph(t *testing.T) {
	g := randomHierarchy(t, 50, 9)
	rd := rand.New(rand.NewSource(10))
	order := make([]Index, 50)
	for i, v := range rd.Perm(50) {
		order[i] = Index(v)
	}

	rg, newID, err := g.Renumber(order)
	require.NoError(t, err)
	require.Equal(t, g.NumberOfVertices(), rg.NumberOfVertices())
	require.Equal(t, g.NumberOfEdges(), rg.NumberOfEdges())
	assert.Equal(t, g.NumLevels(), rg.NumLevels())
	assert.Equal(t, g.GetProperties(), rg.GetProperties())

	for old := Index(0); old < 50; old++ {
		require.Equal(t, old, order[newID[old]])

		ov, _ := g.GetVertex(old)
		nv, _ := rg.GetVertex(newID[old])
		assert.Equal(t, newID[old], nv.GetID())
		assert.Equal(t, ov.GetLatE6(), nv.GetLatE6())
		assert.Equal(t, ov.GetLonE6(), nv.GetLonE6())
		assert.Equal(t, ov.GetLevel(), nv.GetLevel())

		for l := uint8(0); int(l) < g.NumLevels(); l++ {
			oe, _ := g.GetAdjacentEdges(old, l)
			ne, _ := rg.GetAdjacentEdges(newID[old], l)
			require.Len(t, ne, len(oe))
			for i := range oe {
				assert.Equal(t, newID[old], ne[i].GetSource())
				assert.Equal(t, newID[oe[i].GetTarget()], ne[i].GetTarget())
				assert.Equal(t, oe[i].GetWeight(), ne[i].GetWeight())
				assert.Equal(t, oe[i].GetFlags(), ne[i].GetFlags())
				assert.Equal(t, oe[i].GetMinLevel(), ne[i].GetMinLevel())
				assert.Equal(t, oe[i].GetLevel(), ne[i].GetLevel())
			}

			onh, _ := g.GetNeighborhood(old, l)
			nnh, _ := rg.GetNeighborhood(newID[old], l)
			assert.Equal(t, onh, nnh)
		}
	}
	assert.ElementsMatch(t, remapIds(g.TopLevelCoreVertices(), newID), rg.TopLevelCoreVertices())
}

func remapIds(ids []Index, newID []Index) []Index {
	mapped := make([]Index, len(ids))
	for i, v := range ids {
		mapped[i] = newID[v]
	}
	return mapped
}

func TestRenumberRejectsInvalidOrder(t *testing.T) {
	g := randomHierarchy(t, 5, 1)

	tests := []struct {
		name  string
		order []Index
	}{
		{"too short", []Index{0, 1, 2, 3}},
		{"duplicate", []Index{0, 1, 2, 3, 3}},
		{"out of range", []Index{0, 1, 2, 3, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := g.Renumber(tt.order)
			assert.ErrorIs(t, err, ErrInvalidHierarchy)
		})
	}
}

func TestSpatialOrderGroupsNearbyVertices(t *testing.T) {
	g := shuffledGrid(t, 20, 4)
	order := g.SpatialOrder()
	require.Len(t, order, g.NumberOfVertices())

	rg, _, err := g.Renumber(order)
	require.NoError(t, err)

	const verticesPerBlock = 16
	before, after := g.CrossBlockEdges(verticesPerBlock), rg.CrossBlockEdges(verticesPerBlock)
	assert.Greater(t, before, 0)
	assert.Less(t, after, before/2, "cross block edges %d before, %d after", before, after)

	// the renumbered graph still pages through the block store
	path := filepath.Join(t.TempDir(), "hh.graph")
	require.NoError(t, rg.WriteGraph(path, verticesPerBlock))
	read, err := ReadGraph(path)
	require.NoError(t, err)
	assertSameGraph(t, rg, read)
}

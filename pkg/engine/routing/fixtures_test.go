package routing

import (
	"testing"

	"github.com/lintang-b-s/hhroute/pkg"
	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// diamondGraph one way roads s=0, a=1, b=2, t=3: s->a 1, s->b 4, a->t 1, b->t 1, a->b 1. single level.
// s -> a -> t costs 2, s -> a -> b -> t 3, s -> b -> t 5.
func diamondGraph(t *testing.T) *da.StaticGraph {
	t.Helper()
	b := da.NewGraphBuilder()
	for i := 0; i < 4; i++ {
		b.AddVertex(nil, -6.2+float64(i)*0.001, 106.8)
	}
	b.AddRoad(0, 1, 1, true, false, false, 0, 0)
	b.AddRoad(0, 2, 4, true, false, false, 0, 0)
	b.AddRoad(1, 3, 1, true, false, false, 0, 0)
	b.AddRoad(2, 3, 1, true, false, false, 0, 0)
	b.AddRoad(1, 2, 1, true, false, false, 0, 0)
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

// lineHierarchy 0-1-2-3-4-5-6, unit weights, two way. 1..5 reach level 1 where the shortcut 1=>5 (weight 4)
// bypasses 2, 3, 4. shortcutWeight other than 4 makes the hierarchy inconsistent.
func lineHierarchy(t *testing.T, shortcutWeight uint32, downgraded bool) *da.StaticGraph {
	t.Helper()
	b := da.NewGraphBuilder()
	b.SetDowngradedEdges(downgraded)
	for i := 0; i <= 6; i++ {
		if i == 0 || i == 6 {
			b.AddVertex([]int{1}, -6.2, 106.8+float64(i)*0.001)
			continue
		}
		b.AddVertex([]int{1, pkg.INFINITY_1}, -6.2, 106.8+float64(i)*0.001)
	}
	b.AddRoad(0, 1, 1, false, false, false, 0, 0)
	for i := da.Index(1); i < 5; i++ {
		b.AddRoad(i, i+1, 1, false, false, true, 0, 0)
	}
	b.AddRoad(5, 6, 1, false, false, false, 0, 0)
	b.AddRoad(1, 5, shortcutWeight, false, true, true, 1, 1)
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

// tableLineHierarchy 0-1-2-3-4-5-6-7-8, unit weights, two way. the top level core is {1, 4, 5, 7}, joined by
// the shortcuts 1=>4 (3), 5=>7 (2) and the level 1 edge 4-5.
func tableLineHierarchy(t *testing.T, downgraded bool) *da.StaticGraph {
	t.Helper()
	b := da.NewGraphBuilder()
	b.SetDowngradedEdges(downgraded)
	for i := 0; i <= 8; i++ {
		switch i {
		case 1, 4, 5, 7:
			b.AddVertex([]int{1, pkg.INFINITY_2}, -6.2, 106.8+float64(i)*0.001)
		default:
			b.AddVertex([]int{1}, -6.2, 106.8+float64(i)*0.001)
		}
	}
	b.AddRoad(0, 1, 1, false, false, false, 0, 0)
	b.AddRoad(1, 2, 1, false, false, true, 0, 0)
	b.AddRoad(2, 3, 1, false, false, true, 0, 0)
	b.AddRoad(3, 4, 1, false, false, true, 0, 0)
	b.AddRoad(4, 5, 1, false, false, true, 0, 1)
	b.AddRoad(5, 6, 1, false, false, true, 0, 0)
	b.AddRoad(6, 7, 1, false, false, true, 0, 0)
	b.AddRoad(7, 8, 1, false, false, false, 0, 0)
	b.AddRoad(1, 4, 3, false, true, true, 1, 1)
	b.AddRoad(5, 7, 2, false, true, true, 1, 1)
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

type hierarchyKind int

const (
	singleLevel hierarchyKind = iota
	twoLevelUnrestrictedTop
	twoLevelCoreTop
)

func (k hierarchyKind) String() string {
	switch k {
	case singleLevel:
		return "single level"
	case twoLevelUnrestrictedTop:
		return "two level"
	default:
		return "two level with core"
	}
}

// randomHierarchy random road network. two level kinds promote every vertex and every edge to level 1 and give
// each vertex a small random level 0 neighborhood, so the level 0 search keeps switching to level 1.
func randomHierarchy(t *testing.T, kind hierarchyKind, n int, seed uint64, oneway, downgraded bool) *da.StaticGraph {
	t.Helper()
	rd := rand.New(rand.NewSource(seed))
	b := da.NewGraphBuilder()
	b.SetDowngradedEdges(downgraded)
	for i := 0; i < n; i++ {
		lat, lon := -6.3+rd.Float64()*0.2, 106.7+rd.Float64()*0.2
		switch kind {
		case singleLevel:
			b.AddVertex(nil, lat, lon)
		case twoLevelUnrestrictedTop:
			b.AddVertex([]int{rd.Intn(25), pkg.INFINITY_1}, lat, lon)
		default:
			b.AddVertex([]int{rd.Intn(25), pkg.INFINITY_2}, lat, lon)
		}
	}

	level := uint8(0)
	if kind != singleLevel {
		level = 1
	}
	for i := 0; i < 3*n; i++ {
		u, v := da.Index(rd.Intn(n)), da.Index(rd.Intn(n))
		if u == v {
			continue
		}
		b.AddRoad(u, v, uint32(1+rd.Intn(20)), oneway && rd.Intn(3) == 0, false, rd.Intn(2) == 0, 0, level)
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

// buildDistanceTable table of the top level core computed with plain dijkstra.
func buildDistanceTable(t *testing.T, g *da.StaticGraph) *da.DistanceTable {
	t.Helper()
	ids := g.TopLevelCoreVertices()
	dt := da.NewDistanceTable(ids)
	dj := NewDijkstra(g)
	top := uint8(g.NumLevels() - 1)
	for _, x := range ids {
		require.NoError(t, dj.ShortestPathTree(x, top, dt.Contains))
		for _, y := range ids {
			if d, ok := dj.SettledDistance(y); ok {
				dt.Set(x, y, d)
			}
		}
	}
	return dt
}

func newTestEngine(g da.Graph, dt *da.DistanceTable) *HHRoutingEngine {
	return NewHHRoutingEngine(g, dt, zap.NewNop())
}

// requireValidPath path is a contiguous chain of original forward road segments s -> t weighing dist.
func requireValidPath(t *testing.T, g da.Graph, s, target da.Index, dist int, path []da.Edge) {
	t.Helper()
	if s == target {
		require.Empty(t, path)
		return
	}
	require.NotEmpty(t, path)
	require.Equal(t, s, path[0].GetSource())
	require.Equal(t, target, path[len(path)-1].GetTarget())

	sum := 0
	for i := range path {
		e := &path[i]
		require.True(t, e.IsForward(), "edge %d->%d is not a forward record", e.GetSource(), e.GetTarget())
		require.False(t, e.IsShortcut(), "edge %d->%d is a shortcut", e.GetSource(), e.GetTarget())
		require.True(t, e.IsValidAt(0))
		if i > 0 {
			require.Equal(t, path[i-1].GetTarget(), e.GetSource(), "path breaks at edge %d", i)
		}
		sum += e.GetWeight()
	}
	require.Equal(t, dist, sum)
}

func edgePairs(path []da.Edge) [][2]da.Index {
	pairs := make([][2]da.Index, len(path))
	for i := range path {
		pairs[i] = [2]da.Index{path[i].GetSource(), path[i].GetTarget()}
	}
	return pairs
}

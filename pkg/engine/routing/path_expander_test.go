package routing

import (
	"testing"

	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func findEdge(t *testing.T, g da.Graph, u, v da.Index, level uint8, shortcut bool) da.Edge {
	t.Helper()
	edges, err := g.GetAdjacentEdges(u, level)
	require.NoError(t, err)
	for _, e := range edges {
		if e.GetTarget() == v && e.IsShortcut() == shortcut {
			return e
		}
	}
	t.Fatalf("no edge %d->%d at level %d", u, v, level)
	return da.Edge{}
}

func TestExpandEdgeShortcut(t *testing.T) {
	g := lineHierarchy(t, 4, false)
	pe := newPathExpander(g, nil, zap.NewNop())

	shortcut := findEdge(t, g, 1, 5, 1, true)
	path, err := pe.expandEdge(shortcut, nil)
	require.NoError(t, err)
	assert.Equal(t, [][2]da.Index{{1, 2}, {2, 3}, {3, 4}, {4, 5}}, edgePairs(path))

	// plain road segments pass through unchanged
	road := findEdge(t, g, 0, 1, 0, false)
	path, err = pe.expandEdge(road, path[:0])
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, road, path[0])
}

func TestExpandEdgeRejectsBrokenShortcut(t *testing.T) {
	g := lineHierarchy(t, 5, false)
	pe := newPathExpander(g, nil, zap.NewNop())

	// core path 1..5 costs 4, not the claimed 5
	_, err := pe.expandEdge(findEdge(t, g, 1, 5, 1, true), nil)
	assert.ErrorIs(t, err, ErrCorruptHierarchy)

	levelZeroShortcut := da.NewEdge(1, 5, 4, true, true, true, true, 0, 1)
	_, err = pe.expandEdge(levelZeroShortcut, nil)
	assert.ErrorIs(t, err, ErrCorruptHierarchy)
}

func TestReverseEdge(t *testing.T) {
	g := diamondGraph(t)
	pe := newPathExpander(g, nil, zap.NewNop())

	// backward search from 3 reaches 1 through the record owned by 3
	backward := findEdge(t, g, 3, 1, 0, false)
	require.True(t, backward.IsBackward())
	require.False(t, backward.IsForward())

	forward, err := pe.reverseEdge(backward)
	require.NoError(t, err)
	assert.Equal(t, da.Index(1), forward.GetSource())
	assert.Equal(t, da.Index(3), forward.GetTarget())
	assert.True(t, forward.IsForward())
	assert.Equal(t, 1, forward.GetWeight())

	_, err = pe.reverseEdge(da.NewEdge(3, 0, 1, false, true, false, false, 0, 0))
	assert.ErrorIs(t, err, ErrCorruptHierarchy)
}

func TestWalkDistanceTable(t *testing.T) {
	g := tableLineHierarchy(t, false)
	dt := buildDistanceTable(t, g)
	pe := newPathExpander(g, dt, zap.NewNop())

	path, err := pe.walkDistanceTable(1, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, [][2]da.Index{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7}}, edgePairs(path))

	path, err = pe.walkDistanceTable(5, 5, nil)
	require.NoError(t, err)
	assert.Empty(t, path)

	// 0 is not a table vertex
	_, err = pe.walkDistanceTable(0, 7, nil)
	assert.ErrorIs(t, err, ErrCorruptHierarchy)
}

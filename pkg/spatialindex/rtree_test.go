package spatialindex

import (
	"testing"

	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// gridGraph 5x5 vertices 0.01 degree (about 1.1 km) apart, south west corner at (-6.2, 106.8).
func gridGraph(t *testing.T) *da.StaticGraph {
	t.Helper()
	b := da.NewGraphBuilder()
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			b.AddVertex(nil, -6.2+float64(i)*0.01, 106.8+float64(j)*0.01)
		}
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestRtreeNearestVertex(t *testing.T) {
	rt := NewRtree()
	require.NoError(t, rt.Build(gridGraph(t), zap.NewNop()))
	assert.Equal(t, 25, rt.Len())

	tests := []struct {
		name     string
		lat, lon float64
		expected da.Index
	}{
		{"on a vertex", -6.18, 106.82, 12},
		{"close to a vertex", -6.1897, 106.8302, 8},
		{"outside the grid", -6.23, 106.79, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, dist, err := rt.NearestVertex(tt.lat, tt.lon, 0.5)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
			assert.GreaterOrEqual(t, dist, 0.0)
		})
	}

	_, _, err := rt.NearestVertex(1.3521, 103.8198, 0.5)
	assert.ErrorIs(t, err, ErrNoVertexNearby)
}

func TestRtreeSearchWithinRadius(t *testing.T) {
	rt := NewRtree()
	require.NoError(t, rt.Build(gridGraph(t), zap.NewNop()))

	assert.ElementsMatch(t, []da.Index{12}, rt.SearchWithinRadius(-6.18, 106.82, 0.5))
	assert.Len(t, rt.SearchWithinRadius(-6.18, 106.82, 2), 9)

	rt.Insert(25, -6.1801, 106.8201)
	assert.ElementsMatch(t, []da.Index{12, 25}, rt.SearchWithinRadius(-6.18, 106.82, 0.5))
}

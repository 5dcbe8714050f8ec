package usecases

import (
	"context"

	"github.com/lintang-b-s/hhroute/pkg/datastructure"
)

type RoutingEngine interface {
	GetGraph() datastructure.Graph
	ShortestPathWithDeadline(ctx context.Context, s, t datastructure.Index) (int, []datastructure.Edge, bool, error)
	Variant() string
}

type SpatialIndex interface {
	NearestVertex(lat, lon, radius float64) (datastructure.Index, float64, error)
}

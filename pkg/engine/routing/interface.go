package routing

import (
	"context"

	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
)

// Router point to point shortest path queries over a highway hierarchy.
type Router interface {
	ShortestPath(s, t da.Index) (int, []da.Edge, bool, error)
	ShortestDistance(s, t da.Index) (int, bool, error)
	ShortestPathWithDeadline(ctx context.Context, s, t da.Index) (int, []da.Edge, bool, error)
}

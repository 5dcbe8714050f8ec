package controllers

import (
	"context"

	"github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, s, t datastructure.Index) (usecases.ShortestPathResult, error)
	Route(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (usecases.ShortestPathResult, error)
	NearestVertex(lat, lon float64) (usecases.NearestVertexResult, error)
}

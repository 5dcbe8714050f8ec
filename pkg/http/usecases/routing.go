package usecases

import (
	"context"
	"errors"

	"github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/engine/routing"
	"github.com/lintang-b-s/hhroute/pkg/geo"
	"github.com/lintang-b-s/hhroute/pkg/spatialindex"
	"github.com/lintang-b-s/hhroute/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrPathNotFound = errors.New("path not found")
)

type ShortestPathResult struct {
	Source   datastructure.Index
	Target   datastructure.Index
	Distance int
	Edges    []datastructure.Edge
	Polyline string
}

type NearestVertexResult struct {
	Vertex   datastructure.Index
	Lat      float64
	Lon      float64
	Distance float64 // km
}

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		searchRadius: searchRadius,
	}
}

// ShortestPath between two vertex ids.
func (rs *RoutingService) ShortestPath(ctx context.Context, s, t datastructure.Index) (ShortestPathResult, error) {
	dist, edges, found, err := rs.engine.ShortestPathWithDeadline(ctx, s, t)
	if err != nil {
		if errors.Is(err, routing.ErrInvalidVertex) {
			return ShortestPathResult{}, err
		}
		rs.log.Error("shortest path query failed", zap.Uint32("source", uint32(s)), zap.Uint32("target", uint32(t)),
			zap.String("variant", rs.engine.Variant()), zap.Error(err))
		return ShortestPathResult{}, util.WrapErrorf(err, util.ErrInternalServerError, "shortest path %d -> %d", s, t)
	}
	if !found {
		return ShortestPathResult{}, util.WrapErrorf(ErrPathNotFound, util.ErrNotFound, "no path found from %d to %d",
			s, t)
	}

	pathPolyline, err := rs.polyline(s, edges)
	if err != nil {
		return ShortestPathResult{}, util.WrapErrorf(err, util.ErrInternalServerError, "path geometry")
	}
	return ShortestPathResult{
		Source:   s,
		Target:   t,
		Distance: dist,
		Edges:    edges,
		Polyline: pathPolyline,
	}, nil
}

// Route snaps both coordinates to their nearest vertex and routes between them.
func (rs *RoutingService) Route(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (ShortestPathResult,
	error) {
	s, _, err := rs.spatialIndex.NearestVertex(origLat, origLon, rs.searchRadius)
	if err != nil {
		return ShortestPathResult{}, util.WrapErrorf(err, util.ErrNotFound, "no road near origin %f,%f", origLat,
			origLon)
	}
	t, _, err := rs.spatialIndex.NearestVertex(dstLat, dstLon, rs.searchRadius)
	if err != nil {
		return ShortestPathResult{}, util.WrapErrorf(err, util.ErrNotFound, "no road near destination %f,%f", dstLat,
			dstLon)
	}
	return rs.ShortestPath(ctx, s, t)
}

func (rs *RoutingService) NearestVertex(lat, lon float64) (NearestVertexResult, error) {
	v, _, err := rs.spatialIndex.NearestVertex(lat, lon, rs.searchRadius)
	if err != nil {
		if errors.Is(err, spatialindex.ErrNoVertexNearby) {
			return NearestVertexResult{}, util.WrapErrorf(err, util.ErrNotFound, "no vertex near %f,%f", lat, lon)
		}
		return NearestVertexResult{}, err
	}
	vertex, err := rs.engine.GetGraph().GetVertex(v)
	if err != nil {
		return NearestVertexResult{}, err
	}
	return NearestVertexResult{
		Vertex:   v,
		Lat:      vertex.GetLat(),
		Lon:      vertex.GetLon(),
		Distance: geo.CalculateHaversineDistance(lat, lon, vertex.GetLat(), vertex.GetLon()),
	}, nil
}

func (rs *RoutingService) polyline(s datastructure.Index, edges []datastructure.Edge) (string, error) {
	graph := rs.engine.GetGraph()
	coords := make([]geo.Coordinate, 0, len(edges)+1)

	vertex, err := graph.GetVertex(s)
	if err != nil {
		return "", err
	}
	coords = append(coords, geo.NewCoordinate(vertex.GetLat(), vertex.GetLon()))
	for i := range edges {
		vertex, err := graph.GetVertex(edges[i].GetTarget())
		if err != nil {
			return "", err
		}
		coords = append(coords, geo.NewCoordinate(vertex.GetLat(), vertex.GetLon()))
	}
	return geo.EncodePolyline(coords), nil
}

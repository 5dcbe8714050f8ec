package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var ErrNoVertexNearby = errors.New("no vertex near the query point")

const (
	maxSearchExpansions = 6
)

type Rtree struct {
	tr *rtree.RTreeG[datastructure.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. one point entry per vertex of the graph.
func (rt *Rtree) Build(graph datastructure.Graph, log *zap.Logger) error {
	log.Info("Building R-tree spatial index...")
	n := graph.NumberOfVertices()
	for v := 0; v < n; v++ {
		vertex, err := graph.GetVertex(datastructure.Index(v))
		if err != nil {
			return err
		}
		p := [2]float64{vertex.GetLon(), vertex.GetLat()}
		rt.tr.Insert(p, p, vertex.GetID())

		if n >= 10 && v%(n/10) == 0 {
			log.Info("Building R-tree spatial index...", zap.Float64("progress", 100*float64(v)/float64(n)))
		}
	}
	log.Info("R-tree spatial index built.", zap.Int("vertices", rt.tr.Len()))
	return nil
}

func (rt *Rtree) Insert(v datastructure.Index, lat, lon float64) {
	p := [2]float64{lon, lat}
	rt.tr.Insert(p, p, v)
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius search for all vertices within the bounding box of radius (in km) around (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	rect := geo.BoundingRect(qLat, qLon, radius)

	results := make([]datastructure.Index, 0, 10)
	rt.tr.Search([2]float64{rect.Lo().Lng.Degrees(), rect.Lo().Lat.Degrees()},
		[2]float64{rect.Hi().Lng.Degrees(), rect.Hi().Lat.Degrees()},
		func(min, max [2]float64, data datastructure.Index) bool {
			results = append(results, data)
			return true
		})
	return results
}

// NearestVertex closest vertex to (qLat, qLon). the search box starts at radius km and doubles until a vertex
// is found. returns the vertex and its distance in km.
func (rt *Rtree) NearestVertex(qLat, qLon, radius float64) (datastructure.Index, float64, error) {
	for i := 0; i < maxSearchExpansions; i++ {
		rect := geo.BoundingRect(qLat, qLon, radius)

		best, bestDist := datastructure.INVALID_VERTEX_ID, math.MaxFloat64
		rt.tr.Search([2]float64{rect.Lo().Lng.Degrees(), rect.Lo().Lat.Degrees()},
			[2]float64{rect.Hi().Lng.Degrees(), rect.Hi().Lat.Degrees()},
			func(min, max [2]float64, data datastructure.Index) bool {
				dist := geo.S2Distance(qLat, qLon, min[1], min[0])
				if dist < bestDist || (dist == bestDist && data < best) {
					best, bestDist = data, dist
				}
				return true
			})
		// the box corners are radius km away, its inscribed circle radius/sqrt(2)
		if best != datastructure.INVALID_VERTEX_ID &&
			(bestDist <= radius/math.Sqrt2 || i == maxSearchExpansions-1) {
			return best, bestDist, nil
		}
		radius *= 2
	}
	return datastructure.INVALID_VERTEX_ID, 0, ErrNoVertexNearby
}

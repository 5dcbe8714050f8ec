package routing

import (
	"context"
	"sync"
	"time"

	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
	met "github.com/lintang-b-s/hhroute/pkg/metrics"
	"go.uber.org/zap"
)

// HHRoutingEngine shares one loaded hierarchy between goroutines. every query borrows a HHBidirectionalSearch
// from the pool.
type HHRoutingEngine struct {
	graph      da.Graph
	dt         *da.DistanceTable
	strategy   searchStrategy
	logger     *zap.Logger
	searchPool sync.Pool
}

func NewHHRoutingEngine(graph da.Graph, dt *da.DistanceTable, logger *zap.Logger) *HHRoutingEngine {
	e := &HHRoutingEngine{
		graph:    graph,
		dt:       dt,
		strategy: newSearchStrategy(dt, graph.GetProperties()),
		logger:   logger,
	}
	e.BuildSearchPool()
	logger.Info("highway hierarchies routing engine ready",
		zap.String("variant", e.Variant()),
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("levels", graph.NumLevels()))
	return e
}

func (hh *HHRoutingEngine) BuildSearchPool() {
	hh.searchPool = sync.Pool{
		New: func() any {
			return NewHHBidirectionalSearch(hh)
		},
	}
}

func (hh *HHRoutingEngine) GetGraph() da.Graph {
	return hh.graph
}

func (hh *HHRoutingEngine) GetDistanceTable() *da.DistanceTable {
	return hh.dt
}

// Variant name of the query variant chosen for the loaded graph, e.g. "dt-yes-downgraded-no".
func (hh *HHRoutingEngine) Variant() string {
	return hh.strategy.String()
}

func (hh *HHRoutingEngine) ShortestPath(s, t da.Index) (int, []da.Edge, bool, error) {
	return hh.ShortestPathWithDeadline(context.Background(), s, t)
}

func (hh *HHRoutingEngine) ShortestPathWithDeadline(ctx context.Context, s, t da.Index) (int, []da.Edge, bool,
	error) {
	bs := hh.searchPool.Get().(*HHBidirectionalSearch)
	defer hh.searchPool.Put(bs)

	start := time.Now()
	dist, path, found, err := bs.ShortestPathWithDeadline(ctx, s, t)
	if err != nil {
		return dist, path, found, err
	}
	hh.observe(start, bs.GetStats(), found)
	return dist, path, found, nil
}

func (hh *HHRoutingEngine) ShortestDistance(s, t da.Index) (int, bool, error) {
	bs := hh.searchPool.Get().(*HHBidirectionalSearch)
	defer hh.searchPool.Put(bs)

	start := time.Now()
	dist, found, err := bs.ShortestDistance(s, t)
	if err != nil {
		return dist, found, err
	}
	hh.observe(start, bs.GetStats(), found)
	return dist, found, nil
}

func (hh *HHRoutingEngine) observe(start time.Time, stats QueryStats, found bool) {
	met.QueryDuration.WithLabelValues(hh.Variant()).Observe(time.Since(start).Seconds())
	met.QuerySettledVertices.Observe(float64(stats.TotalSettled()))
	if !found {
		met.QueryUnreachableTotal.Inc()
	}
	if stats.UsedDistanceTable {
		met.DistanceTableHitsTotal.Inc()
	}
}

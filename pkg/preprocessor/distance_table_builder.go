package preprocessor

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/lintang-b-s/hhroute/pkg"
	"github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/engine/routing"
	"github.com/lintang-b-s/hhroute/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DistanceTableBuilder fills the distance table of the top level core with one dijkstra shortest path tree
// per table vertex. rows are computed concurrently, each worker owns its own Dijkstra.
type DistanceTableBuilder struct {
	graph      datastructure.Graph
	logger     *zap.Logger
	numWorkers int
}

func NewDistanceTableBuilder(graph datastructure.Graph, logger *zap.Logger, numWorkers int) *DistanceTableBuilder {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &DistanceTableBuilder{
		graph:      graph,
		logger:     logger,
		numWorkers: numWorkers,
	}
}

// Build distance table over ids. searches run at the top level of the hierarchy and never leave the vertex set.
func (b *DistanceTableBuilder) Build(ctx context.Context, ids []datastructure.Index) (*datastructure.DistanceTable,
	error) {
	dt := datastructure.NewDistanceTable(ids)
	n := dt.Size()
	if n == 0 {
		return dt, nil
	}
	top := uint8(b.graph.NumLevels() - 1)

	b.logger.Info("Building distance table of top level core...",
		zap.Int("vertices", n), zap.Uint8("level", top), zap.Int("workers", b.numWorkers))
	start := time.Now()

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	numShards := util.MinInt(b.numWorkers, n)
	g.SetLimit(numShards)
	for shard := 0; shard < numShards; shard++ {
		g.Go(func() error {
			dijkstra := routing.NewDijkstra(b.graph)
			row := make([]int32, n)
			for i := shard; i < n; i += numShards {
				if util.StopConcurrentOperation(gctx) {
					return gctx.Err()
				}
				if err := dijkstra.ShortestPathTree(ids[i], top, dt.Contains); err != nil {
					return err
				}
				for j, y := range ids {
					d, ok := dijkstra.SettledDistance(y)
					if !ok || d >= pkg.UNREACHABLE {
						row[j] = pkg.UNREACHABLE
						continue
					}
					row[j] = int32(d)
				}
				dt.SetRow(i, row)

				if c := done.Add(1); c%1000 == 0 {
					b.logger.Info("distance table rows computed", zap.Int64("rows", c), zap.Int("total", n))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.logger.Info("Distance table built", zap.Int("vertices", n), zap.Duration("took", time.Since(start)))
	return dt, nil
}

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lintang-b-s/hhroute/pkg/concurrent"
	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/engine"
	"github.com/lintang-b-s/hhroute/pkg/engine/routing"
	log "github.com/lintang-b-s/hhroute/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	graphFile      = flag.String("graph", "./data/hh.graph", "highway hierarchy graph file")
	graphStorage   = flag.String("storage", engine.STORAGE_MEMORY, "graph storage: memory or block")
	blockCacheSize = flag.Int("block_cache_size", 256, "block cache size of the block storage")
	dtFile         = flag.String("dtable", "", "distance table file, empty to query without it")
	numQueries     = flag.Int("n", 10000, "number of random queries")
	numWorkers     = flag.Int("workers", 16, "number of concurrent queries")
	seed           = flag.Uint64("seed", 0, "random seed, 0 = current time")
	outFile        = flag.String("out", "rand_queries_result.csv", "per query result file")
	largestSCC     = flag.Bool("largest_scc", true, "draw query vertices from the largest strongly connected component")
)

type spParam struct {
	row int
	s   da.Index
	t   da.Index
}

type spResult struct {
	row              int
	hhDist, djDist   int
	hhTime, djTime   time.Duration
	hhEdges, djEdges int
	err              error
}

// compares the highway hierarchies query with plain dijkstra on random vertex pairs.
func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	re, err := engine.NewEngine(engine.Config{
		GraphFilePath:         *graphFile,
		GraphStorage:          *graphStorage,
		BlockCacheSize:        *blockCacheSize,
		DistanceTableFilePath: *dtFile,
	}, logger)
	if err != nil {
		panic(err)
	}
	defer re.Close()

	hh := re.GetRoutingEngine()
	g := hh.GetGraph()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	candidates := make([]da.Index, g.NumberOfVertices())
	for v := range candidates {
		candidates[v] = da.Index(v)
	}
	if sg, ok := g.(*da.StaticGraph); ok && *largestSCC {
		candidates = sg.LargestComponent()
		logger.Info("largest strongly connected component", zap.Int("vertices", len(candidates)))
	} else if *largestSCC {
		logger.Warn("strongly connected components need the memory storage, drawing from all vertices")
	}

	rd := rand.New(rand.NewSource(*seed))
	queries := make([]spParam, *numQueries)
	for i := range queries {
		queries[i] = spParam{
			row: i,
			s:   candidates[rd.Intn(len(candidates))],
			t:   candidates[rd.Intn(len(candidates))],
		}
	}

	dijkstraPool := sync.Pool{
		New: func() any {
			return routing.NewDijkstra(g)
		},
	}

	calcSP := func(p spParam) spResult {
		res := spResult{row: p.row}

		before := time.Now()
		res.hhDist, res.hhEdges, res.err = pathLength(hh.ShortestPath(p.s, p.t))
		res.hhTime = time.Since(before)
		if res.err != nil {
			return res
		}

		dj := dijkstraPool.Get().(*routing.Dijkstra)
		defer dijkstraPool.Put(dj)
		before = time.Now()
		res.djDist, res.djEdges, res.err = pathLength(dj.ShortestPath(p.s, p.t))
		res.djTime = time.Since(before)
		return res
	}

	workers := concurrent.NewWorkerPool[spParam, spResult](*numWorkers, len(queries))
	for _, q := range queries {
		workers.AddJob(q)
	}
	workers.Close()
	workers.Start(calcSP)
	workers.Wait()

	results := make([]spResult, len(queries))
	for res := range workers.CollectResults() {
		results[res.row] = res
	}

	fout, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	defer w.Flush()

	fmt.Fprintln(w, "s,t,hh_distance,dijkstra_distance,hh_edges,dijkstra_edges,hh_us,dijkstra_us")
	var (
		mismatches, failures int
		hhTotal, djTotal     time.Duration
	)
	for i, res := range results {
		if res.err != nil {
			failures++
			logger.Error("query failed", zap.Uint32("s", uint32(queries[i].s)), zap.Uint32("t", uint32(queries[i].t)),
				zap.Error(res.err))
			continue
		}
		if res.hhDist != res.djDist {
			mismatches++
			logger.Warn("distance mismatch", zap.Uint32("s", uint32(queries[i].s)),
				zap.Uint32("t", uint32(queries[i].t)), zap.Int("hh", res.hhDist), zap.Int("dijkstra", res.djDist))
		}
		hhTotal += res.hhTime
		djTotal += res.djTime
		fmt.Fprintf(w, "%d,%d,%d,%d,%d,%d,%d,%d\n", queries[i].s, queries[i].t, res.hhDist, res.djDist,
			res.hhEdges, res.djEdges, res.hhTime.Microseconds(), res.djTime.Microseconds())
	}

	n := len(results) - failures
	if n == 0 {
		n = 1
	}
	logger.Info("random queries done",
		zap.String("variant", hh.Variant()),
		zap.Uint64("seed", *seed),
		zap.Int("queries", len(results)),
		zap.Int("mismatches", mismatches),
		zap.Int("failures", failures),
		zap.Duration("hhAvg", hhTotal/time.Duration(n)),
		zap.Duration("dijkstraAvg", djTotal/time.Duration(n)))
}

func pathLength(dist int, path []da.Edge, _ bool, err error) (int, int, error) {
	return dist, len(path), err
}

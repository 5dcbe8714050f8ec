package main

import (
	"flag"

	"github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/logger"
	"go.uber.org/zap"
)

var (
	inFile           = flag.String("in", "./data/hh.graph", "highway hierarchy graph file")
	outFile          = flag.String("out", "./data/hh_block.graph", "re-blocked graph file")
	verticesPerBlock = flag.Int("vertices_per_block", datastructure.DefaultVerticesPerBlock,
		"consecutive vertices stored in one block")
	cacheSize    = flag.Int("cache_size", 64, "block cache size used to verify the written file")
	spatialOrder = flag.Bool("spatial_order", true,
		"renumber vertices along the s2 cell order so every block covers a compact area")
)

// rewrites a graph file with another block size and reads every vertex back through the block store.
// with spatial_order the vertex ids change and the distance table has to be rebuilt for the new file.
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Reading graph from ", zap.String("graphFilePath", *inFile))
	graph, err := datastructure.ReadGraph(*inFile)
	if err != nil {
		panic(err)
	}

	if *spatialOrder {
		before := graph.CrossBlockEdges(*verticesPerBlock)
		graph, _, err = graph.Renumber(graph.SpatialOrder())
		if err != nil {
			panic(err)
		}
		logger.Info("Renumbered vertices in spatial order",
			zap.Int("crossBlockEdgesBefore", before),
			zap.Int("crossBlockEdgesAfter", graph.CrossBlockEdges(*verticesPerBlock)))
		logger.Warn("Vertex ids changed, rebuild the distance table with cmd/distancetable -graph",
			zap.String("graphFilePath", *outFile))
	}

	logger.Info("Writing block graph to ", zap.String("graphFilePath", *outFile),
		zap.Int("verticesPerBlock", *verticesPerBlock))
	if err := graph.WriteGraph(*outFile, *verticesPerBlock); err != nil {
		panic(err)
	}

	bg, err := datastructure.OpenBlockGraph(*outFile, *cacheSize, logger)
	if err != nil {
		panic(err)
	}
	defer bg.Close()

	edges := 0
	for v := 0; v < bg.NumberOfVertices(); v++ {
		adj, err := bg.GetAdjacentEdges(datastructure.Index(v), 0)
		if err != nil {
			panic(err)
		}
		edges += len(adj)
	}

	stats := bg.Stats()
	logger.Info("Block graph verified",
		zap.Int("vertices", bg.NumberOfVertices()),
		zap.Int("edges", edges),
		zap.Int("blocks", bg.NumberOfBlocks()),
		zap.Uint64("blockReads", stats.BlockReads),
		zap.Uint64("cacheHits", stats.CacheHits),
		zap.Duration("decodeTime", stats.DecodeTime))
}

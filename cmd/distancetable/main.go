package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/logger"
	"github.com/lintang-b-s/hhroute/pkg/preprocessor"
	"go.uber.org/zap"
)

var (
	graphFile = flag.String("graph", "./data/hh.graph", "highway hierarchy graph file")
	outFile   = flag.String("out", "./data/hh.dtable", "distance table output file")
	workers   = flag.Int("workers", 0, "number of concurrent shortest path tree searches, 0 = number of cpus")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Reading graph from ", zap.String("graphFilePath", *graphFile))
	graph, err := datastructure.ReadGraph(*graphFile)
	if err != nil {
		panic(err)
	}

	ids := graph.TopLevelCoreVertices()
	builder := preprocessor.NewDistanceTableBuilder(graph, logger, *workers)
	dt, err := builder.Build(context.Background(), ids)
	if err != nil {
		panic(err)
	}

	logger.Info("Writing distance table to ", zap.String("distanceTableFilePath", *outFile))
	if err := dt.WriteDistanceTable(*outFile); err != nil {
		panic(err)
	}
}

package engine

import (
	"fmt"

	"github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/engine/routing"
	"go.uber.org/zap"
)

const (
	STORAGE_MEMORY = "memory"
	STORAGE_BLOCK  = "block"
)

type Config struct {
	GraphFilePath         string
	GraphStorage          string // memory | block
	BlockCacheSize        int
	DistanceTableFilePath string // empty: no distance table
}

type Engine struct {
	hhRoutingEngine *routing.HHRoutingEngine
	closeFn         func() error
}

func (e *Engine) GetRoutingEngine() *routing.HHRoutingEngine {
	return e.hhRoutingEngine
}

// Close releases the graph file when the graph is read block by block.
func (e *Engine) Close() error {
	if e.closeFn == nil {
		return nil
	}
	return e.closeFn()
}

func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting query engine of Highway Hierarchies...")

	var (
		graph   datastructure.Graph
		closeFn func() error
	)
	switch cfg.GraphStorage {
	case STORAGE_MEMORY, "":
		logger.Info("Reading graph from ", zap.String("graphFilePath", cfg.GraphFilePath))
		g, err := datastructure.ReadGraph(cfg.GraphFilePath)
		if err != nil {
			return nil, err
		}
		graph = g
	case STORAGE_BLOCK:
		logger.Info("Opening block graph from ", zap.String("graphFilePath", cfg.GraphFilePath),
			zap.Int("blockCacheSize", cfg.BlockCacheSize))
		g, err := datastructure.OpenBlockGraph(cfg.GraphFilePath, cfg.BlockCacheSize, logger)
		if err != nil {
			return nil, err
		}
		graph = g
		closeFn = g.Close
	default:
		return nil, fmt.Errorf("unknown graph storage %q, want %q or %q", cfg.GraphStorage, STORAGE_MEMORY,
			STORAGE_BLOCK)
	}

	var dt *datastructure.DistanceTable
	if cfg.DistanceTableFilePath != "" {
		logger.Info("Reading distance table from ", zap.String("distanceTableFilePath", cfg.DistanceTableFilePath))
		var err error
		dt, err = datastructure.ReadDistanceTable(cfg.DistanceTableFilePath, graph)
		if err != nil {
			if closeFn != nil {
				closeFn()
			}
			return nil, err
		}
	}

	return &Engine{
		hhRoutingEngine: routing.NewHHRoutingEngine(graph, dt, logger),
		closeFn:         closeFn,
	}, nil
}

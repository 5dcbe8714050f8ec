package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/hhroute/pkg/engine"
	"github.com/lintang-b-s/hhroute/pkg/http"
	"github.com/lintang-b-s/hhroute/pkg/http/usecases"
	"github.com/lintang-b-s/hhroute/pkg/logger"
	"github.com/lintang-b-s/hhroute/pkg/spatialindex"
	"github.com/lintang-b-s/hhroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", true, "limit requests per client ip (rate_limit_rps, rate_limit_burst)")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngine(engine.Config{
		GraphFilePath:         viper.GetString("graph_file"),
		GraphStorage:          viper.GetString("graph_storage"),
		BlockCacheSize:        viper.GetInt("block_cache_size"),
		DistanceTableFilePath: viper.GetString("distance_table_file"),
	}, logger)
	if err != nil {
		panic(err)
	}
	defer routingEngine.Close()

	rtree := spatialindex.NewRtree()
	if err := rtree.Build(routingEngine.GetRoutingEngine().GetGraph(), logger); err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine.GetRoutingEngine(), rtree,
		viper.GetFloat64("nearest_search_radius_km"))
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, *useRateLimit, routingService)

	signal := http.GracefulShutdown()

	logger.Info("Highway Hierarchies Routing Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil && err != context.Canceled {
		logger.Error("api stopped with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}

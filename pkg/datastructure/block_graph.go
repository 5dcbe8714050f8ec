package datastructure

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/hhroute/pkg/metrics"
	"github.com/lintang-b-s/hhroute/pkg/util"
	"go.uber.org/zap"
)

// BlockGraph graph file accessed block by block. decoded blocks are kept in an lru cache of at most
// cacheSize blocks, a miss reads exactly one block with ReadAt. safe for concurrent queries.
type BlockGraph struct {
	f      *os.File
	gf     *graphFile
	cache  *lru.Cache[uint32, *graphBlock]
	logger *zap.Logger

	blockReads atomic.Uint64
	cacheHits  atomic.Uint64
	decodeTime atomic.Int64 // nanoseconds
}

type BlockStats struct {
	BlockReads uint64
	CacheHits  uint64
	DecodeTime time.Duration
}

func OpenBlockGraph(path string, cacheSize int, logger *zap.Logger) (*BlockGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	gf, err := readGraphFileHeader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[uint32, *graphBlock](cacheSize)
	if err != nil {
		f.Close()
		return nil, err
	}

	logger.Info("opened block graph", zap.String("path", path),
		zap.Uint32("vertices", gf.header.NumVertices),
		zap.Uint32("edges", gf.header.NumEdges),
		zap.Uint32("levels", gf.header.NumLevels),
		zap.Uint32("blocks", gf.header.NumBlocks),
		zap.Int("cacheSize", cacheSize))

	return &BlockGraph{
		f:      f,
		gf:     gf,
		cache:  cache,
		logger: logger,
	}, nil
}

func (g *BlockGraph) Close() error {
	g.cache.Purge()
	return g.f.Close()
}

func (g *BlockGraph) assertVertex(v Index) {
	util.AssertPanic(uint32(v) < g.gf.header.NumVertices,
		fmt.Sprintf("vertex id %d out of range [0, %d)", v, g.gf.header.NumVertices))
}

// getBlock returns the decoded block containing v, reading it from the file on a cache miss.
func (g *BlockGraph) getBlock(v Index) (*graphBlock, error) {
	g.assertVertex(v)
	b := uint32(v) / g.gf.header.VerticesPerBlock
	if block, ok := g.cache.Get(b); ok {
		g.cacheHits.Add(1)
		metrics.BlockCacheHitsTotal.Inc()
		return block, nil
	}

	start := time.Now()
	entry := g.gf.index[b]
	data := make([]byte, entry.Length)
	if _, err := g.f.ReadAt(data, int64(entry.Offset)); err != nil {
		return nil, fmt.Errorf("%w: read block %d: %v", ErrCorruptBlock, b, err)
	}

	first, last := g.gf.blockRange(b)
	block, err := decodeBlock(data, first, last, int(g.gf.header.NumLevels))
	if err != nil {
		g.logger.Error("failed to decode graph block", zap.Uint32("block", b), zap.Error(err))
		return nil, err
	}

	elapsed := time.Since(start)
	g.blockReads.Add(1)
	g.decodeTime.Add(int64(elapsed))
	metrics.BlockReadsTotal.Inc()
	metrics.BlockDecodeSeconds.Observe(elapsed.Seconds())

	g.cache.Add(b, block)
	return block, nil
}

func (g *BlockGraph) GetVertex(v Index) (*Vertex, error) {
	block, err := g.getBlock(v)
	if err != nil {
		return nil, err
	}
	return block.vertex(v), nil
}

func (g *BlockGraph) GetAdjacentEdges(v Index, level uint8) ([]Edge, error) {
	block, err := g.getBlock(v)
	if err != nil {
		return nil, err
	}
	return listedAt(block.adjacentEdges(v), level), nil
}

func (g *BlockGraph) GetNeighborhood(v Index, level uint8) (int, error) {
	block, err := g.getBlock(v)
	if err != nil {
		return 0, err
	}
	return block.vertex(v).GetNeighborhood(level), nil
}

func (g *BlockGraph) NumLevels() int {
	return int(g.gf.header.NumLevels)
}

func (g *BlockGraph) NumberOfVertices() int {
	return int(g.gf.header.NumVertices)
}

func (g *BlockGraph) NumberOfBlocks() int {
	return int(g.gf.header.NumBlocks)
}

func (g *BlockGraph) GetProperties() GraphProperties {
	return g.gf.properties()
}

// Stats block reads, cache hits and accumulated read+decode time since open or the last ResetStats.
func (g *BlockGraph) Stats() BlockStats {
	return BlockStats{
		BlockReads: g.blockReads.Load(),
		CacheHits:  g.cacheHits.Load(),
		DecodeTime: time.Duration(g.decodeTime.Load()),
	}
}

func (g *BlockGraph) ResetStats() {
	g.blockReads.Store(0)
	g.cacheHits.Store(0)
	g.decodeTime.Store(0)
}

func (g *BlockGraph) ClearCache() {
	g.cache.Purge()
}

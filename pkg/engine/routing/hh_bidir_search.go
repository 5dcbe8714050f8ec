package routing

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/hhroute/pkg"
	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/util"
	"go.uber.org/zap"
)

type searchState uint8

const (
	INITIALIZED searchState = iota
	RUNNING
	HIT_FOUND
	EXHAUSTED
	EXPANDING
	DONE
)

func (s searchState) String() string {
	switch s {
	case INITIALIZED:
		return "initialized"
	case RUNNING:
		return "running"
	case HIT_FOUND:
		return "hit_found"
	case EXHAUSTED:
		return "exhausted"
	case EXPANDING:
		return "expanding"
	default:
		return "done"
	}
}

// QueryStats search space of the last query.
type QueryStats struct {
	SettledVertices   [2][]int // per direction, per level
	RelaxedEdges      int
	FrontierSizes     [2]int
	UsedDistanceTable bool
}

func (qs *QueryStats) reset(numLevels int) {
	for dir := range qs.SettledVertices {
		if cap(qs.SettledVertices[dir]) < numLevels {
			qs.SettledVertices[dir] = make([]int, numLevels)
		}
		qs.SettledVertices[dir] = qs.SettledVertices[dir][:numLevels]
		clear(qs.SettledVertices[dir])
	}
	qs.RelaxedEdges = 0
	qs.FrontierSizes = [2]int{}
	qs.UsedDistanceTable = false
}

func (qs *QueryStats) TotalSettled() int {
	total := 0
	for dir := range qs.SettledVertices {
		for _, n := range qs.SettledVertices[dir] {
			total += n
		}
	}
	return total
}

// searchResult. via the distance table the path is fwd tree to fwdHandle, table walk, bwd tree from bwdHandle.
// otherwise fwdHandle and bwdHandle belong to the same meeting vertex.
type searchResult struct {
	distance  int
	viaTable  bool
	fwdHandle int32
	bwdHandle int32
}

/*
HHBidirectionalSearch highway hierarchies query:

Sanders, P. and Schultes, D. (2005) "Highway Hierarchies Hasten Exact Shortest Path Queries", in G.S. Brodal and
S. Leonardi (eds.) Algorithms – ESA 2005. Berlin, Heidelberg: Springer, pp. 568–579.

one instance per goroutine. both search spaces are reset, not reallocated, at the start of every query.
*/
type HHBidirectionalSearch struct {
	graph    da.Graph
	dt       *da.DistanceTable
	strategy searchStrategy
	logger   *zap.Logger

	spaces   [2]*searchSpace
	expander *pathExpander
	state    searchState
	stats    QueryStats
}

func NewHHBidirectionalSearch(engine *HHRoutingEngine) *HHBidirectionalSearch {
	return newHHBidirectionalSearch(engine.graph, engine.dt, engine.strategy, engine.logger)
}

func newHHBidirectionalSearch(graph da.Graph, dt *da.DistanceTable, strategy searchStrategy,
	logger *zap.Logger) *HHBidirectionalSearch {
	return &HHBidirectionalSearch{
		graph:    graph,
		dt:       dt,
		strategy: strategy,
		logger:   logger,
		spaces: [2]*searchSpace{
			newSearchSpace(INITIAL_QUEUE_SIZE, INITIAL_MAP_SIZE),
			newSearchSpace(INITIAL_QUEUE_SIZE, INITIAL_MAP_SIZE),
		},
		expander: newPathExpander(graph, dt, logger),
	}
}

func (bs *HHBidirectionalSearch) GetStats() QueryStats {
	return bs.stats
}

func (bs *HHBidirectionalSearch) validateVertex(v da.Index) error {
	if int(v) >= bs.graph.NumberOfVertices() {
		return util.WrapErrorf(ErrInvalidVertex, util.ErrBadParamInput, "vertex id %d out of range [0, %d)", v,
			bs.graph.NumberOfVertices())
	}
	return nil
}

// ShortestPath distance and original road segments s->t. an unreachable target is not an error: distance is
// pkg.INF_DISTANCE, the edge list empty and found false.
func (bs *HHBidirectionalSearch) ShortestPath(s, t da.Index) (int, []da.Edge, bool, error) {
	return bs.ShortestPathWithDeadline(context.Background(), s, t)
}

// ShortestPathWithDeadline checks ctx between two queue extractions and gives up with ctx.Err().
func (bs *HHBidirectionalSearch) ShortestPathWithDeadline(ctx context.Context, s, t da.Index) (int, []da.Edge,
	bool, error) {
	if err := bs.validateVertex(s); err != nil {
		return pkg.INF_DISTANCE, nil, false, err
	}
	if err := bs.validateVertex(t); err != nil {
		return pkg.INF_DISTANCE, nil, false, err
	}
	if s == t {
		bs.stats.reset(bs.graph.NumLevels())
		bs.state = DONE
		return 0, []da.Edge{}, true, nil
	}

	res, err := bs.search(ctx, s, t)
	if err != nil {
		return pkg.INF_DISTANCE, nil, false, err
	}
	if bs.state == EXHAUSTED {
		bs.state = DONE
		return pkg.INF_DISTANCE, []da.Edge{}, false, nil
	}

	bs.state = EXPANDING
	path, err := bs.expandPath(res)
	if err != nil {
		return pkg.INF_DISTANCE, nil, false, err
	}
	bs.state = DONE
	return res.distance, path, true, nil
}

// ShortestDistance distance only, no path expansion.
func (bs *HHBidirectionalSearch) ShortestDistance(s, t da.Index) (int, bool, error) {
	if err := bs.validateVertex(s); err != nil {
		return pkg.INF_DISTANCE, false, err
	}
	if err := bs.validateVertex(t); err != nil {
		return pkg.INF_DISTANCE, false, err
	}
	if s == t {
		return 0, true, nil
	}
	res, err := bs.search(context.Background(), s, t)
	if err != nil {
		return pkg.INF_DISTANCE, false, err
	}
	bs.state = DONE
	if res.distance == pkg.INF_DISTANCE {
		return pkg.INF_DISTANCE, false, nil
	}
	return res.distance, true, nil
}

func (bs *HHBidirectionalSearch) search(ctx context.Context, s, t da.Index) (searchResult, error) {
	res := searchResult{distance: pkg.INF_DISTANCE, fwdHandle: NO_PARENT, bwdHandle: NO_PARENT}

	bs.state = INITIALIZED
	bs.stats.reset(bs.graph.NumLevels())
	for _, space := range bs.spaces {
		space.reset()
	}

	sGap, err := bs.graph.GetNeighborhood(s, 0)
	if err != nil {
		return res, err
	}
	tGap, err := bs.graph.GetNeighborhood(t, 0)
	if err != nil {
		return res, err
	}
	bs.spaces[FWD].discover(s, da.NewHHKey(0, 0, sGap), NO_PARENT, da.Edge{})
	bs.spaces[BWD].discover(t, da.NewHHKey(0, 0, tGap), NO_PARENT, da.Edge{})

	// tentative shortest distance (upper bound)
	d := pkg.INF_DISTANCE
	meeting := da.INVALID_VERTEX_ID

	bs.state = RUNNING
	direction := FWD
	for !bs.spaces[FWD].isEmpty() || !bs.spaces[BWD].isEmpty() {
		if util.StopConcurrentOperation(ctx) {
			return res, ctx.Err()
		}

		// switch search direction if queue of current direction is empty
		if bs.spaces[direction].isEmpty() {
			direction = 1 - direction
		}
		space, other := bs.spaces[direction], bs.spaces[1-direction]

		uh, err := space.extractMin()
		if err != nil {
			return res, err
		}
		u := space.at(uh)
		bs.stats.SettledVertices[direction][u.key.GetLevel()]++

		// abort criteria for current direction
		if u.key.GetDistance() > d {
			space.clearQueue()
			continue
		}

		if oh, ok := other.settledHandle(u.vertex); ok {
			if dist := u.key.GetDistance() + other.at(oh).key.GetDistance(); dist < d {
				d = dist
				meeting = u.vertex
				bs.state = HIT_FOUND
			}
		}

		if u.key.GetGap() >= pkg.INFINITY_2 {
			// reached top level core
			if u.key.GetGap() == pkg.INFINITY_2 && bs.strategy.useDistanceTable {
				space.frontier = append(space.frontier, uh)
				continue
			}
			gap, err := bs.graph.GetNeighborhood(u.vertex, u.key.GetLevel())
			if err != nil {
				return res, err
			}
			u.key.SetGap(gap)
		}

		if err := bs.relaxAdjacentEdges(direction, uh); err != nil {
			return res, err
		}
		direction = 1 - direction
	}

	bs.stats.FrontierSizes = [2]int{len(bs.spaces[FWD].frontier), len(bs.spaces[BWD].frontier)}

	if bs.strategy.useDistanceTable {
		if dTable, fh, bh := bs.shortestDistanceByTable(); dTable < d {
			// shortest path is between top level core vertices
			bs.stats.UsedDistanceTable = true
			bs.state = HIT_FOUND
			res.distance = dTable
			res.viaTable = true
			res.fwdHandle = fh
			res.bwdHandle = bh
			return res, nil
		}
	}

	if d == pkg.INF_DISTANCE {
		bs.state = EXHAUSTED
		return res, nil
	}

	// shortest path is found in lower levels
	res.distance = d
	res.fwdHandle, _ = bs.spaces[FWD].get(meeting)
	res.bwdHandle, _ = bs.spaces[BWD].get(meeting)
	return res, nil
}

// relaxAdjacentEdges relax the edges of the settled vertex uh listed at its search level.
func (bs *HHBidirectionalSearch) relaxAdjacentEdges(direction int, uh int32) error {
	space := bs.spaces[direction]
	forward := direction == FWD

	u := space.at(uh)
	uVertexId, uKey := u.vertex, u.key

	uVertex, err := bs.graph.GetVertex(uVertexId)
	if err != nil {
		return err
	}
	edges, err := bs.graph.GetAdjacentEdges(uVertexId, uKey.GetLevel())
	if err != nil {
		return err
	}

	for i := range edges {
		e := &edges[i]
		// if edge is not in graph for current direction -> skip
		if !e.GetDirection(forward) {
			continue
		}

		weight := e.GetWeight()
		gap := uKey.GetGap()

		// switch to next level
		lvl := uKey.GetLevel()
		for weight > gap && lvl < uVertex.GetLevel() {
			lvl++
			gap = uVertex.GetNeighborhood(lvl)
		}

		if !e.IsValidAt(lvl) {
			continue
		}

		// restriction 1 (only local search)
		if weight > gap {
			continue
		}

		// restriction 2 (don't leave core)
		if bs.strategy.checkCoreConsistency {
			uNh := uVertex.GetNeighborhood(lvl)
			if uNh < pkg.INFINITY_2 {
				targetNh, err := bs.graph.GetNeighborhood(e.GetTarget(), lvl)
				if err != nil {
					return err
				}
				if leavesCore(uNh, targetNh) {
					continue
				}
			}
		}

		if gap < pkg.INFINITY_2 {
			gap -= weight
		}

		bs.stats.RelaxedEdges++
		key := da.NewHHKey(uKey.GetDistance()+weight, lvl, gap)
		vh, ok := space.get(e.GetTarget())
		if !ok {
			space.discover(e.GetTarget(), key, uh, *e)
			continue
		}
		v := space.at(vh)
		if v.settled || !key.Less(v.key) {
			continue
		}
		if err := space.decreaseKey(vh, key, uh, *e); err != nil {
			return fmt.Errorf("decrease key of vertex %d: %w", e.GetTarget(), err)
		}
	}
	return nil
}

// shortestDistanceByTable min over frontier pairs of table distance plus both partial distances.
func (bs *HHBidirectionalSearch) shortestDistanceByTable() (int, int32, int32) {
	d := pkg.INF_DISTANCE
	fh, bh := NO_PARENT, NO_PARENT
	fwd, bwd := bs.spaces[FWD], bs.spaces[BWD]
	for _, x := range fwd.frontier {
		xv := fwd.at(x)
		for _, y := range bwd.frontier {
			yv := bwd.at(y)
			dxy := bs.dt.Get(xv.vertex, yv.vertex)
			if dxy == pkg.UNREACHABLE {
				continue
			}
			if dist := dxy + xv.key.GetDistance() + yv.key.GetDistance(); dist < d {
				d = dist
				fh, bh = x, y
			}
		}
	}
	return d, fh, bh
}

func (bs *HHBidirectionalSearch) expandPath(res searchResult) ([]da.Edge, error) {
	fwd, bwd := bs.spaces[FWD], bs.spaces[BWD]

	path := make([]da.Edge, 0, 64)
	path, err := bs.expander.expandForwardTree(util.ReverseG(fwd.edgesToRoot(res.fwdHandle)), path)
	if err != nil {
		return nil, err
	}

	if res.viaTable {
		path, err = bs.expander.walkDistanceTable(fwd.at(res.fwdHandle).vertex, bwd.at(res.bwdHandle).vertex, path)
		if err != nil {
			return nil, err
		}
	}

	path, err = bs.expander.expandBackwardTree(bwd.edgesToRoot(res.bwdHandle), path)
	if err != nil {
		return nil, err
	}

	if bs.logger.Core().Enabled(zap.DebugLevel) {
		bs.logger.Debug("expanded shortest path",
			zap.Int("distance", res.distance),
			zap.Int("edges", len(path)),
			zap.Bool("viaTable", res.viaTable),
			zap.Int("settled", bs.stats.TotalSettled()),
			zap.String("state", bs.state.String()))
	}
	return path, nil
}

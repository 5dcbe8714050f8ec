package routing

import (
	"github.com/lintang-b-s/hhroute/pkg"
	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
	"github.com/lintang-b-s/hhroute/pkg/util"
)

// Dijkstra plain single direction dijkstra over one level of the hierarchy. used to recompute the paths
// bypassed by shortcuts, to build the distance table and as reference for the hierarchy query.
type Dijkstra struct {
	graph           da.Graph
	space           *searchSpace
	numSettledNodes int
}

func NewDijkstra(graph da.Graph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		space: newSearchSpace(INITIAL_DIJKSTRA_QUEUE_SIZE, INITIAL_DIJKSTRA_MAP_SIZE),
	}
}

// search from source over the edges listed at level accepted by relaxable. stops when target is settled,
// returns the handle of target or NO_PARENT. paths longer than bound are not explored.
func (dj *Dijkstra) search(source, target da.Index, level uint8, bound int,
	relaxable func(e *da.Edge) bool) (int32, error) {
	sp := dj.space
	sp.reset()
	dj.numSettledNodes = 0
	sp.discover(source, da.NewDijkstraKey(0), NO_PARENT, da.Edge{})

	for !sp.isEmpty() {
		uh, err := sp.extractMin()
		if err != nil {
			return NO_PARENT, err
		}
		dj.numSettledNodes++
		u := sp.at(uh)
		uVertex, uDist := u.vertex, u.key.GetDistance()
		if uVertex == target {
			return uh, nil
		}

		edges, err := dj.graph.GetAdjacentEdges(uVertex, level)
		if err != nil {
			return NO_PARENT, err
		}
		for i := range edges {
			e := &edges[i]
			if !relaxable(e) {
				continue
			}
			dist := uDist + e.GetWeight()
			if dist > bound {
				continue
			}
			key := da.NewDijkstraKey(dist)
			vh, ok := sp.get(e.GetTarget())
			if !ok {
				sp.discover(e.GetTarget(), key, uh, *e)
				continue
			}
			if v := sp.at(vh); !v.settled && key.Less(v.key) {
				if err := sp.decreaseKey(vh, key, uh, *e); err != nil {
					return NO_PARENT, err
				}
			}
		}
	}
	return NO_PARENT, nil
}

func (dj *Dijkstra) pathTo(h int32) []da.Edge {
	return util.ReverseG(dj.space.edgesToRoot(h))
}

// ShortestPath reference shortest path over the original road network (level 0, no shortcuts).
func (dj *Dijkstra) ShortestPath(s, t da.Index) (int, []da.Edge, bool, error) {
	th, err := dj.search(s, t, 0, pkg.INF_DISTANCE, func(e *da.Edge) bool {
		return e.IsForward() && e.IsValidAt(0) && !e.IsShortcut()
	})
	if err != nil {
		return pkg.INF_DISTANCE, nil, false, err
	}
	if th == NO_PARENT {
		return pkg.INF_DISTANCE, []da.Edge{}, false, nil
	}
	return dj.space.at(th).key.GetDistance(), dj.pathTo(th), true, nil
}

// ShortestPathTree settles every vertex reachable from s over the forward edges valid at level whose target is
// accepted by inCore. distances are read with SettledDistance.
func (dj *Dijkstra) ShortestPathTree(s da.Index, level uint8, inCore func(v da.Index) bool) error {
	_, err := dj.search(s, da.INVALID_VERTEX_ID, level, pkg.INF_DISTANCE, func(e *da.Edge) bool {
		return e.IsForward() && e.IsValidAt(level) && inCore(e.GetTarget())
	})
	return err
}

func (dj *Dijkstra) SettledDistance(v da.Index) (int, bool) {
	h, ok := dj.space.settledHandle(v)
	if !ok {
		return pkg.INF_DISTANCE, false
	}
	return dj.space.at(h).key.GetDistance(), true
}

func (dj *Dijkstra) GetNumSettledNodes() int {
	return dj.numSettledNodes
}

// corePath shortest path s->t inside the core of level: forward core edges valid at level, at most bound long.
func (dj *Dijkstra) corePath(s, t da.Index, level uint8, bound int) (int, []da.Edge, bool, error) {
	th, err := dj.search(s, t, level, bound, func(e *da.Edge) bool {
		return e.IsForward() && e.IsCore() && e.IsValidAt(level)
	})
	if err != nil {
		return pkg.INF_DISTANCE, nil, false, err
	}
	if th == NO_PARENT {
		return pkg.INF_DISTANCE, nil, false, nil
	}
	return dj.space.at(th).key.GetDistance(), dj.pathTo(th), true, nil
}

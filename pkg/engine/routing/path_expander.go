package routing

import (
	"fmt"

	"github.com/lintang-b-s/hhroute/pkg"
	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
	"go.uber.org/zap"
)

// pathExpander turns the edges of the search trees into the sequence of original road segments.
type pathExpander struct {
	graph    da.Graph
	dt       *da.DistanceTable
	dijkstra *Dijkstra
	logger   *zap.Logger
}

func newPathExpander(graph da.Graph, dt *da.DistanceTable, logger *zap.Logger) *pathExpander {
	return &pathExpander{
		graph:    graph,
		dt:       dt,
		dijkstra: NewDijkstra(graph),
		logger:   logger,
	}
}

func (pe *pathExpander) corrupt(format string, a ...any) error {
	err := fmt.Errorf("%w: %s", ErrCorruptHierarchy, fmt.Sprintf(format, a...))
	pe.logger.Error("inconsistent highway hierarchy", zap.Error(err))
	return err
}

// expandForwardTree. treeEdges are the forward search tree edges in travel order.
func (pe *pathExpander) expandForwardTree(treeEdges []da.Edge, out []da.Edge) ([]da.Edge, error) {
	var err error
	for _, e := range treeEdges {
		out, err = pe.expandEdge(e, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// expandBackwardTree. treeEdges are the backward search tree edges from the meeting vertex towards the target.
// a backward tree edge owned by u with target v stands for the road v->u.
func (pe *pathExpander) expandBackwardTree(treeEdges []da.Edge, out []da.Edge) ([]da.Edge, error) {
	for _, e := range treeEdges {
		forwardEdge, err := pe.reverseEdge(e)
		if err != nil {
			return nil, err
		}
		out, err = pe.expandEdge(forwardEdge, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// reverseEdge forward record of the road a backward tree edge describes: owned by e.target, pointing to
// e.source, same weight and kind. minimum level record wins when parallel records exist.
func (pe *pathExpander) reverseEdge(e da.Edge) (da.Edge, error) {
	edges, err := pe.graph.GetAdjacentEdges(e.GetTarget(), 0)
	if err != nil {
		return da.Edge{}, err
	}
	found := false
	var best da.Edge
	for _, cand := range edges {
		if cand.GetTarget() != e.GetSource() || !cand.IsForward() || cand.GetWeight() != e.GetWeight() ||
			cand.IsShortcut() != e.IsShortcut() {
			continue
		}
		if !found || cand.GetMinLevel() < best.GetMinLevel() {
			best = cand
			found = true
		}
	}
	if !found {
		return da.Edge{}, pe.corrupt("no forward edge %d->%d of weight %d", e.GetTarget(), e.GetSource(),
			e.GetWeight())
	}
	return best, nil
}

// expandEdge appends the original road segments of the forward edge e. a shortcut with min level m is the
// shortest path inside the core of level m-1, recomputed and expanded recursively.
func (pe *pathExpander) expandEdge(e da.Edge, out []da.Edge) ([]da.Edge, error) {
	if !e.IsShortcut() {
		return append(out, e), nil
	}

	if e.GetMinLevel() == 0 {
		return nil, pe.corrupt("shortcut %d->%d has min level 0", e.GetSource(), e.GetTarget())
	}
	level := e.GetMinLevel() - 1
	dist, subpath, found, err := pe.dijkstra.corePath(e.GetSource(), e.GetTarget(), level, e.GetWeight())
	if err != nil {
		return nil, err
	}
	if !found || dist != e.GetWeight() {
		return nil, pe.corrupt("shortcut %d->%d of weight %d not reproducible in core of level %d (found=%v dist=%d)",
			e.GetSource(), e.GetTarget(), e.GetWeight(), level, found, dist)
	}

	for _, sub := range subpath {
		out, err = pe.expandEdge(sub, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// walkDistanceTable path x->y between top level core vertices guided by the distance table: repeatedly take
// the first top level edge whose weight equals the drop of the table distance to y.
func (pe *pathExpander) walkDistanceTable(x, y da.Index, out []da.Edge) ([]da.Edge, error) {
	top := uint8(pe.graph.NumLevels() - 1)
	remaining := pe.dt.Get(x, y)
	if remaining == pkg.UNREACHABLE {
		return nil, pe.corrupt("distance table has no entry %d->%d", x, y)
	}

	cur := x
	for steps := 0; cur != y; steps++ {
		if steps > pe.dt.Size() {
			return nil, pe.corrupt("distance table walk %d->%d does not terminate", x, y)
		}
		edges, err := pe.graph.GetAdjacentEdges(cur, top)
		if err != nil {
			return nil, err
		}

		next := false
		for _, e := range edges {
			if !e.IsForward() || !e.IsValidAt(top) || !pe.dt.Contains(e.GetTarget()) {
				continue
			}
			rest := pe.dt.Get(e.GetTarget(), y)
			if rest == pkg.UNREACHABLE || remaining-e.GetWeight() != rest {
				continue
			}
			out, err = pe.expandEdge(e, out)
			if err != nil {
				return nil, err
			}
			remaining = rest
			cur = e.GetTarget()
			next = true
			break
		}
		if !next {
			return nil, pe.corrupt("distance table walk %d->%d stuck at %d", x, y, cur)
		}
	}
	return out, nil
}

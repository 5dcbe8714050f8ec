package routing

import (
	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
)

// discoveredVertex search state of a vertex in one direction. parent is the arena handle of the
// vertex it was reached from, edge the adjacency record (owned by the parent) used to reach it.
type discoveredVertex struct {
	vertex  da.Index
	key     da.HHKey
	parent  int32
	edge    da.Edge
	settled bool
}

func (dv *discoveredVertex) isRoot() bool {
	return dv.parent == NO_PARENT
}

/*
searchSpace one search direction: arena of discovered vertices addressed by int32 handles, a vertex id -> handle map
and a d-ary heap of handles. reset between queries without giving back the allocated memory.
*/
type searchSpace struct {
	arena    []discoveredVertex
	handles  map[da.Index]int32
	pq       *da.MinHeap
	frontier []int32 // settled vertices whose gap reached the top level core sentinel
}

func newSearchSpace(queueSize, mapSize int) *searchSpace {
	pq := da.NewFourAryHeap()
	pq.Preallocate(queueSize)
	return &searchSpace{
		arena:    make([]discoveredVertex, 0, mapSize),
		handles:  make(map[da.Index]int32, mapSize),
		pq:       pq,
		frontier: make([]int32, 0, 16),
	}
}

func (s *searchSpace) reset() {
	s.arena = s.arena[:0]
	clear(s.handles)
	s.pq.Clear()
	s.frontier = s.frontier[:0]
}

func (s *searchSpace) at(h int32) *discoveredVertex {
	return &s.arena[h]
}

func (s *searchSpace) get(v da.Index) (int32, bool) {
	h, ok := s.handles[v]
	return h, ok
}

// settledHandle handle of v if v was already extracted from this direction's queue.
func (s *searchSpace) settledHandle(v da.Index) (int32, bool) {
	h, ok := s.handles[v]
	if !ok || !s.arena[h].settled {
		return 0, false
	}
	return h, true
}

func (s *searchSpace) discover(v da.Index, key da.HHKey, parent int32, edge da.Edge) int32 {
	h := int32(len(s.arena))
	s.arena = append(s.arena, discoveredVertex{
		vertex: v,
		key:    key,
		parent: parent,
		edge:   edge,
	})
	s.handles[v] = h
	s.pq.Insert(h, key)
	return h
}

func (s *searchSpace) decreaseKey(h int32, key da.HHKey, parent int32, edge da.Edge) error {
	if err := s.pq.DecreaseKey(h, key); err != nil {
		return err
	}
	dv := &s.arena[h]
	dv.key = key
	dv.parent = parent
	dv.edge = edge
	return nil
}

func (s *searchSpace) extractMin() (int32, error) {
	node, err := s.pq.ExtractMin()
	if err != nil {
		return 0, err
	}
	h := node.GetItem()
	s.arena[h].settled = true
	return h, nil
}

func (s *searchSpace) isEmpty() bool {
	return s.pq.IsEmpty()
}

// clearQueue abandons the direction, the remaining queued vertices are never settled.
func (s *searchSpace) clearQueue() {
	s.pq.Clear()
}

// edgesToRoot adjacency records on the tree path from h up to the root, nearest to h first.
func (s *searchSpace) edgesToRoot(h int32) []da.Edge {
	edges := make([]da.Edge, 0, 16)
	for !s.arena[h].isRoot() {
		edges = append(edges, s.arena[h].edge)
		h = s.arena[h].parent
	}
	return edges
}

func (s *searchSpace) size() int {
	return len(s.arena)
}

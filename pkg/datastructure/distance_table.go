package datastructure

import (
	"github.com/lintang-b-s/hhroute/pkg"
)

// DistanceTable shortest distances between all top level core vertices. row major, directed.
type DistanceTable struct {
	ids   []Index         // matrix index -> vertex id
	remap map[Index]int32 // vertex id -> matrix index
	dist  []int32
}

func NewDistanceTable(ids []Index) *DistanceTable {
	n := len(ids)
	dt := &DistanceTable{
		ids:   make([]Index, n),
		remap: make(map[Index]int32, n),
		dist:  make([]int32, n*n),
	}
	copy(dt.ids, ids)
	for i, v := range ids {
		dt.remap[v] = int32(i)
	}
	for i := range dt.dist {
		dt.dist[i] = pkg.UNREACHABLE
	}
	return dt
}

func (dt *DistanceTable) Size() int {
	return len(dt.ids)
}

func (dt *DistanceTable) GetIds() []Index {
	return dt.ids
}

func (dt *DistanceTable) Contains(v Index) bool {
	_, ok := dt.remap[v]
	return ok
}

// Get distance from a to b, pkg.UNREACHABLE if b is not reachable from a or one of them is not a table vertex.
func (dt *DistanceTable) Get(a, b Index) int {
	i, ok := dt.remap[a]
	if !ok {
		return pkg.UNREACHABLE
	}
	j, ok := dt.remap[b]
	if !ok {
		return pkg.UNREACHABLE
	}
	return int(dt.dist[int(i)*len(dt.ids)+int(j)])
}

// SetRow writes the distances from the i-th table vertex. rows are disjoint, workers may fill different rows concurrently.
func (dt *DistanceTable) SetRow(i int, row []int32) {
	copy(dt.dist[i*len(dt.ids):(i+1)*len(dt.ids)], row)
}

func (dt *DistanceTable) Set(a, b Index, d int) {
	i, ok := dt.remap[a]
	if !ok {
		return
	}
	j, ok := dt.remap[b]
	if !ok {
		return
	}
	dt.dist[int(i)*len(dt.ids)+int(j)] = int32(d)
}

func (dt *DistanceTable) IndexOf(v Index) (int, bool) {
	i, ok := dt.remap[v]
	return int(i), ok
}

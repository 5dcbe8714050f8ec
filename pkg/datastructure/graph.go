package datastructure

import (
	"math"

	"github.com/lintang-b-s/hhroute/pkg"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
)

// Graph leveled highway hierarchy graph. implemented by StaticGraph (whole graph in memory)
// and BlockGraph (block paged file with lru block cache).
type Graph interface {
	GetVertex(v Index) (*Vertex, error)
	// GetAdjacentEdges edges of v listed at level (every edge with GetLevel() >= level).
	GetAdjacentEdges(v Index, level uint8) ([]Edge, error)
	GetNeighborhood(v Index, level uint8) (int, error)
	NumLevels() int
	NumberOfVertices() int
	GetProperties() GraphProperties
}

type GraphProperties struct {
	// DowngradedEdges edges are annotated so that the search does not need the core consistency check.
	DowngradedEdges bool
}

type Vertex struct {
	id           Index
	level        uint8   // top level
	neighborhood []int32 // neighborhood radius for level 0..level
	lat, lon     int32   // microdegree
}

func NewVertex(id Index, level uint8, neighborhood []int32, lat, lon float64) *Vertex {
	return &Vertex{
		id:           id,
		level:        level,
		neighborhood: neighborhood,
		lat:          int32(math.Round(lat * pkg.COORD_FACTOR)),
		lon:          int32(math.Round(lon * pkg.COORD_FACTOR)),
	}
}

func newVertexE6(id Index, level uint8, neighborhood []int32, latE6, lonE6 int32) *Vertex {
	return &Vertex{
		id:           id,
		level:        level,
		neighborhood: neighborhood,
		lat:          latE6,
		lon:          lonE6,
	}
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLevel() uint8 {
	return v.level
}

// GetNeighborhood. vertex does not exist above its top level, there it is never part of the core.
func (v *Vertex) GetNeighborhood(level uint8) int {
	if level > v.level || int(level) >= len(v.neighborhood) {
		return pkg.INFINITY_1
	}
	return int(v.neighborhood[level])
}

func (v *Vertex) GetLat() float64 {
	return float64(v.lat) / pkg.COORD_FACTOR
}

func (v *Vertex) GetLon() float64 {
	return float64(v.lon) / pkg.COORD_FACTOR
}

func (v *Vertex) GetLatE6() int32 {
	return v.lat
}

func (v *Vertex) GetLonE6() int32 {
	return v.lon
}

const (
	EDGE_FORWARD uint8 = 1 << iota
	EDGE_BACKWARD
	EDGE_SHORTCUT
	EDGE_CORE
)

// Edge adjacency record owned by its source vertex. a record with the backward flag set
// describes the road target->source as seen from the backward search.
type Edge struct {
	source   Index
	target   Index
	weight   uint32
	flags    uint8
	minLevel uint8 // lowest level containing the edge
	level    uint8 // highest level the edge is a highway edge of
}

func NewEdge(source, target Index, weight uint32, forward, backward, shortcut, core bool,
	minLevel, level uint8) Edge {
	var flags uint8
	if forward {
		flags |= EDGE_FORWARD
	}
	if backward {
		flags |= EDGE_BACKWARD
	}
	if shortcut {
		flags |= EDGE_SHORTCUT
	}
	if core {
		flags |= EDGE_CORE
	}
	return Edge{
		source:   source,
		target:   target,
		weight:   weight,
		flags:    flags,
		minLevel: minLevel,
		level:    level,
	}
}

func newEdgeWithFlags(source, target Index, weight uint32, flags, minLevel, level uint8) Edge {
	return Edge{
		source:   source,
		target:   target,
		weight:   weight,
		flags:    flags,
		minLevel: minLevel,
		level:    level,
	}
}

func (e *Edge) GetSource() Index {
	return e.source
}

func (e *Edge) GetTarget() Index {
	return e.target
}

func (e *Edge) GetWeight() int {
	return int(e.weight)
}

func (e *Edge) GetFlags() uint8 {
	return e.flags
}

func (e *Edge) IsForward() bool {
	return e.flags&EDGE_FORWARD != 0
}

func (e *Edge) IsBackward() bool {
	return e.flags&EDGE_BACKWARD != 0
}

// GetDirection usable by the forward (forward=true) or backward search.
func (e *Edge) GetDirection(forward bool) bool {
	if forward {
		return e.IsForward()
	}
	return e.IsBackward()
}

func (e *Edge) IsShortcut() bool {
	return e.flags&EDGE_SHORTCUT != 0
}

func (e *Edge) IsCore() bool {
	return e.flags&EDGE_CORE != 0
}

func (e *Edge) GetMinLevel() uint8 {
	return e.minLevel
}

func (e *Edge) GetLevel() uint8 {
	return e.level
}

// IsValidAt edge belongs to the graph of the given level.
func (e *Edge) IsValidAt(level uint8) bool {
	return e.minLevel <= level && level <= e.level
}

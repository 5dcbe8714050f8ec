package pkg

import "math"

const (
	// INFINITY_1 neighborhood radius of a vertex that is not in the core of a level.
	INFINITY_1 = math.MaxInt32
	// INFINITY_2 neighborhood radius of a vertex in the top level core (distance table applies).
	INFINITY_2 = math.MaxInt32 - 1

	INF_DISTANCE = math.MaxInt
	UNREACHABLE  = math.MaxInt32
)

const (
	DEBUG = false

	// microdegree coordinates
	COORD_FACTOR = 1e6
)

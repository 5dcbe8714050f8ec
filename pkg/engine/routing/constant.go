package routing

const (
	FWD = 0
	BWD = 1

	INITIAL_QUEUE_SIZE          = 300
	INITIAL_MAP_SIZE            = 5000
	INITIAL_DIJKSTRA_QUEUE_SIZE = 50
	INITIAL_DIJKSTRA_MAP_SIZE   = 100

	NO_PARENT int32 = -1
)

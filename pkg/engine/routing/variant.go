package routing

import (
	"github.com/lintang-b-s/hhroute/pkg"
	da "github.com/lintang-b-s/hhroute/pkg/datastructure"
)

// searchStrategy selected once per graph load from (distance table present, downgraded edges).
type searchStrategy struct {
	// useDistanceTable stop at top level core vertices and join the frontiers through the distance table.
	useDistanceTable bool
	// checkCoreConsistency restriction 2: do not relax an edge from a core vertex to a vertex outside the core
	// of the same level. graphs with downgraded edges already encode this in the edge levels.
	checkCoreConsistency bool
}

func newSearchStrategy(dt *da.DistanceTable, properties da.GraphProperties) searchStrategy {
	return searchStrategy{
		useDistanceTable:     dt != nil,
		checkCoreConsistency: !properties.DowngradedEdges,
	}
}

func (st searchStrategy) String() string {
	name := "dt-no"
	if st.useDistanceTable {
		name = "dt-yes"
	}
	if st.checkCoreConsistency {
		return name + "-downgraded-no"
	}
	return name + "-downgraded-yes"
}

// leavesCore u is in the core of level lvl and target is not.
func leavesCore(uNeighborhood, targetNeighborhood int) bool {
	return uNeighborhood < pkg.INFINITY_2 && targetNeighborhood == pkg.INFINITY_1
}

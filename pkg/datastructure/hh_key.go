package datastructure

// HHKey priority of a discovered vertex. ordered by (distance, level, gap) ascending.
type HHKey struct {
	distance int
	level    uint8
	gap      int
}

func NewHHKey(distance int, level uint8, gap int) HHKey {
	return HHKey{distance: distance, level: level, gap: gap}
}

// NewDijkstraKey key of plain dijkstra searches, level and gap are unused.
func NewDijkstraKey(distance int) HHKey {
	return HHKey{distance: distance}
}

func (k HHKey) GetDistance() int {
	return k.distance
}

func (k HHKey) GetLevel() uint8 {
	return k.level
}

func (k HHKey) GetGap() int {
	return k.gap
}

func (k *HHKey) SetGap(gap int) {
	k.gap = gap
}

// Compare -1 if k < other, 0 if equal, 1 otherwise.
func (k HHKey) Compare(other HHKey) int {
	switch {
	case k.distance != other.distance:
		if k.distance < other.distance {
			return -1
		}
		return 1
	case k.level != other.level:
		if k.level < other.level {
			return -1
		}
		return 1
	case k.gap != other.gap:
		if k.gap < other.gap {
			return -1
		}
		return 1
	}
	return 0
}

func (k HHKey) Less(other HHKey) bool {
	return k.Compare(other) < 0
}

package tracker

import "sort"

// Movement records how far elements carrying one value have traveled.
//
// Movement is keyed by raw value, not by element identity: when the input
// contains duplicates, all elements with the same value share one record and
// the distances interleave. This matches the observable behavior consumers
// already depend on; keying by original index would change the shape of the
// data (see DESIGN.md).
type Movement struct {
	Value         int   `json:"value"`
	FirstIndex    int   `json:"firstIndex"` // Where the value was first written or swapped
	LastIndex     int   `json:"lastIndex"`
	Moves         int64 `json:"moves"`
	TotalDistance int64 `json:"totalDistance"`
}

// movementTable aggregates Movement records for a run.
type movementTable struct {
	byValue map[int]*Movement
}

func newMovementTable() *movementTable {
	return &movementTable{byValue: make(map[int]*Movement)}
}

// record notes that value landed at index. The first sighting establishes
// the baseline position; later sightings accumulate distance. Returns the
// distance traveled by this move (0 for the first sighting).
func (mt *movementTable) record(value, index int) int64 {
	m, ok := mt.byValue[value]
	if !ok {
		mt.byValue[value] = &Movement{
			Value:      value,
			FirstIndex: index,
			LastIndex:  index,
		}
		return 0
	}

	dist := int64(index - m.LastIndex)
	if dist < 0 {
		dist = -dist
	}
	m.Moves++
	m.TotalDistance += dist
	m.LastIndex = index
	return dist
}

// farthest returns up to n movements ordered by total distance, descending.
// Ties break on value for deterministic output.
func (mt *movementTable) farthest(n int) []Movement {
	all := make([]Movement, 0, len(mt.byValue))
	for _, m := range mt.byValue {
		all = append(all, *m)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].TotalDistance != all[j].TotalDistance {
			return all[i].TotalDistance > all[j].TotalDistance
		}
		return all[i].Value < all[j].Value
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

func (mt *movementTable) reset() {
	mt.byValue = make(map[int]*Movement)
}

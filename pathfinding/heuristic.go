package pathfinding

import "math"

// Heuristic estimates the remaining cost from (x, y) to (tx, ty).
type Heuristic interface {
	Cost(x, y, tx, ty int) float64
}

// Manhattan scales the manhattan distance by the cheapest tile cost. It is
// admissible for 4-way movement when MinimumCost is not above any tile cost.
type Manhattan struct {
	MinimumCost float64
}

func (h Manhattan) Cost(x, y, tx, ty int) float64 {
	return h.MinimumCost * float64(absInt(tx-x)+absInt(ty-y))
}

// Closest is the straight line distance.
type Closest struct{}

func (Closest) Cost(x, y, tx, ty int) float64 {
	dx := float64(tx - x)
	dy := float64(ty - y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ClosestSquared is the squared straight line distance. It is not admissible
// and trades path quality for fewer expanded nodes.
type ClosestSquared struct{}

func (ClosestSquared) Cost(x, y, tx, ty int) float64 {
	dx := float64(tx - x)
	dy := float64(ty - y)
	return dx*dx + dy*dy
}

// ParseHeuristic maps a heuristic name to its implementation. The empty name
// yields a nil Heuristic, leaving the Finder default in place.
func ParseHeuristic(name string, minimumCost float64) (Heuristic, bool) {
	switch name {
	case "":
		return nil, true
	case "manhattan":
		return Manhattan{MinimumCost: minimumCost}, true
	case "closest":
		return Closest{}, true
	case "closest_squared":
		return ClosestSquared{}, true
	default:
		return nil, false
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

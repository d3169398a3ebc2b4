package pathfinding

import (
	"math"

	"github.com/milk9111/tilemap/tilemap"
)

// DefaultMaxSearchDistance bounds the depth of a search when no option is given.
const DefaultMaxSearchDistance = 64

// Finder runs A* searches over a MapPath.
type Finder struct {
	paths             *MapPath
	maxSearchDistance int
	diagonal          bool
	heuristic         Heuristic
}

type FinderOption func(*Finder)

// WithMaxSearchDistance limits how many steps away from the start a search may go.
func WithMaxSearchDistance(n int) FinderOption {
	return func(f *Finder) {
		if n > 0 {
			f.maxSearchDistance = n
		}
	}
}

// WithDiagonal allows diagonal steps. Corners are never cut: both orthogonal
// neighbours of a diagonal step must be passable.
func WithDiagonal(enabled bool) FinderOption {
	return func(f *Finder) { f.diagonal = enabled }
}

// WithHeuristic replaces the default estimate: Manhattan for 4-way searches,
// Closest once diagonals are allowed.
func WithHeuristic(h Heuristic) FinderOption {
	return func(f *Finder) {
		if h != nil {
			f.heuristic = h
		}
	}
}

func NewFinder(paths *MapPath, opts ...FinderOption) *Finder {
	f := &Finder{
		paths:             paths,
		maxSearchDistance: DefaultMaxSearchDistance,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.heuristic == nil {
		if f.diagonal {
			f.heuristic = Closest{}
		} else {
			f.heuristic = Manhattan{MinimumCost: 1}
		}
	}
	return f
}

func (f *Finder) MapPath() *MapPath { return f.paths }

// FindPath searches a path for mover from its current tile to (dtx, dty).
func (f *Finder) FindPath(mover Pathfindable, dtx, dty int, ignoreObjectsID bool) (*Path, bool) {
	return f.FindPathFrom(mover, mover.InTileX(), mover.InTileY(), dtx, dty, ignoreObjectsID)
}

// FindPathFrom searches a path for mover's footprint from (sx, sy) to
// (dtx, dty). The returned path starts with the start tile. ok is false when
// the destination is blocked or unreachable within the search distance.
func (f *Finder) FindPathFrom(mover Pathfindable, sx, sy, dtx, dty int, ignoreObjectsID bool) (*Path, bool) {
	grid := f.paths.Grid()
	w := grid.InTileWidth()
	if !grid.InBounds(sx, sy) || !f.passable(mover, dtx, dty, ignoreObjectsID) {
		return nil, false
	}
	if sx == dtx && sy == dty {
		return NewPath(tilemap.CoordTile{X: sx, Y: sy}), true
	}

	n := w * grid.InTileHeight()
	cost := make([]float64, n)
	for i := range cost {
		cost[i] = math.Inf(1)
	}
	estimate := make([]float64, n)
	depth := make([]int, n)
	seq := make([]int, n)
	cameFrom := make([]int, n)
	for i := range cameFrom {
		cameFrom[i] = -1
	}

	// Ties on f favour the node added first.
	open := NewSortedList(func(a, b int) bool {
		fa := cost[a] + estimate[a]
		fb := cost[b] + estimate[b]
		if fa != fb {
			return fa < fb
		}
		return seq[a] < seq[b]
	})

	startIdx := sy*w + sx
	goalIdx := dty*w + dtx
	cost[startIdx] = 0
	estimate[startIdx] = f.heuristic.Cost(sx, sy, dtx, dty)
	open.Add(startIdx)
	next := 1

	maxDepth := 0
	for maxDepth < f.maxSearchDistance && open.Size() > 0 {
		cur, _ := open.First()
		if cur == goalIdx {
			break
		}
		open.Remove(cur)
		cx, cy := cur%w, cur/w

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				diagonal := dx != 0 && dy != 0
				if diagonal && !f.diagonal {
					continue
				}
				nx, ny := cx+dx, cy+dy
				if !f.passable(mover, nx, ny, ignoreObjectsID) {
					continue
				}
				if diagonal && (!f.passable(mover, cx+dx, cy, ignoreObjectsID) || !f.passable(mover, cx, cy+dy, ignoreObjectsID)) {
					continue
				}

				step := f.paths.Cost(mover, nx, ny)
				if diagonal {
					step *= math.Sqrt2
				}
				nextCost := cost[cur] + step
				idx := ny*w + nx
				if nextCost >= cost[idx] {
					continue
				}
				cost[idx] = nextCost
				estimate[idx] = f.heuristic.Cost(nx, ny, dtx, dty)
				cameFrom[idx] = cur
				depth[idx] = depth[cur] + 1
				maxDepth = max(maxDepth, depth[idx])
				seq[idx] = next
				next++
				open.Add(idx)
			}
		}
	}

	if cameFrom[goalIdx] == -1 {
		return nil, false
	}
	return reconstructPath(cameFrom, w, startIdx, goalIdx), true
}

// passable reports whether the mover's whole footprint fits with its top left
// tile at (tx, ty).
func (f *Finder) passable(mover Pathfindable, tx, ty int, ignoreObjectsID bool) bool {
	tw := max(mover.InTileWidth(), 1)
	th := max(mover.InTileHeight(), 1)
	for y := ty; y < ty+th; y++ {
		for x := tx; x < tx+tw; x++ {
			if f.paths.IsBlocked(mover, x, y, ignoreObjectsID) {
				return false
			}
		}
	}
	return true
}

func reconstructPath(cameFrom []int, w, startIdx, goalIdx int) *Path {
	steps := make([]tilemap.CoordTile, 0, 32)
	for cur := goalIdx; cur != -1; cur = cameFrom[cur] {
		steps = append(steps, tilemap.CoordTile{X: cur % w, Y: cur / w})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return &Path{steps: steps}
}

package pathfinding

import "github.com/milk9111/tilemap/tilemap"

// Path is a sequence of tile steps from the start tile to the destination.
type Path struct {
	steps []tilemap.CoordTile
}

func NewPath(steps ...tilemap.CoordTile) *Path {
	return &Path{steps: append([]tilemap.CoordTile(nil), steps...)}
}

func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.steps)
}

func (p *Path) Step(i int) tilemap.CoordTile { return p.steps[i] }
func (p *Path) X(i int) int                  { return p.steps[i].X }
func (p *Path) Y(i int) int                  { return p.steps[i].Y }

// Last returns the destination step.
func (p *Path) Last() (tilemap.CoordTile, bool) {
	if p.Len() == 0 {
		return tilemap.CoordTile{}, false
	}
	return p.steps[len(p.steps)-1], true
}

func (p *Path) Contains(x, y int) bool {
	if p == nil {
		return false
	}
	for _, s := range p.steps {
		if s.X == x && s.Y == y {
			return true
		}
	}
	return false
}

// Steps returns a copy of the steps.
func (p *Path) Steps() []tilemap.CoordTile {
	if p == nil {
		return nil
	}
	return append([]tilemap.CoordTile(nil), p.steps...)
}

package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tilemap/prefabs"
)

// Box is a named collision rectangle whose origin is its bottom center,
// offset from the owner position. With Mirror the X offset flips when the
// owner is mirrored.
type Box struct {
	Name    string
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
	Mirror  bool
}

func BoxFromSpec(spec prefabs.BoxSpec) Box {
	return Box{
		Name:    spec.Name,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
		Width:   spec.Width,
		Height:  spec.Height,
		Mirror:  spec.Mirror,
	}
}

func (b Box) offsetX(mirrored bool) float64 {
	if b.Mirror && mirrored {
		return -b.OffsetX
	}
	return b.OffsetX
}

// BB returns the box at pos. Y grows downwards, so B holds the top edge and T
// the bottom edge.
func (b Box) BB(pos cp.Vector, mirrored bool) cp.BB {
	cx := pos.X + b.offsetX(mirrored)
	bottom := pos.Y + b.OffsetY
	return cp.BB{L: cx - b.Width/2, B: bottom - b.Height, R: cx + b.Width/2, T: bottom}
}

// SweptBB covers the box at both positions.
func (b Box) SweptBB(old, cur cp.Vector, mirrored bool) cp.BB {
	return b.BB(old, mirrored).Merge(b.BB(cur, mirrored))
}

// Categories derives four sensors from the box: bottom and top on the Y axis
// at the edge centers, left and right on the X axis at mid height. Each sensor
// only reacts to moves towards its own side.
func (b Box) Categories(groups []string) []Category {
	prefix := ""
	if b.Name != "" {
		prefix = b.Name + "."
	}
	g := append([]string(nil), groups...)
	mid := b.OffsetY - b.Height/2
	return []Category{
		{Name: prefix + "bottom", Axis: AxisY, Direction: DirectionPositive, OffsetX: b.OffsetX, OffsetY: b.OffsetY, Mirror: b.Mirror, Groups: g},
		{Name: prefix + "top", Axis: AxisY, Direction: DirectionNegative, OffsetX: b.OffsetX, OffsetY: b.OffsetY - b.Height, Mirror: b.Mirror, Groups: g},
		{Name: prefix + "left", Axis: AxisX, Direction: DirectionNegative, OffsetX: b.OffsetX, EdgeX: -b.Width / 2, OffsetY: mid, Mirror: b.Mirror, Groups: g},
		{Name: prefix + "right", Axis: AxisX, Direction: DirectionPositive, OffsetX: b.OffsetX, EdgeX: b.Width / 2, OffsetY: mid, Mirror: b.Mirror, Groups: g},
	}
}

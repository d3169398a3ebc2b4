package collision

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilemap/prefabs"
)

var ErrEmptyCategoryName = errors.New("collision: category name is empty")

// Category is a sensor point of a collidable, checked on one axis. The offset
// is relative to the collidable position; with Mirror the X offset flips when
// the collidable is mirrored. EdgeX is added after the flip, so a sensor on a
// box side stays on that side. An empty Groups reacts to every tile group.
type Category struct {
	Name      string
	Axis      Axis
	Direction Direction
	OffsetX   float64
	OffsetY   float64
	EdgeX     float64
	Mirror    bool
	Groups    []string
}

func (c Category) offsetX(mirrored bool) float64 {
	if c.Mirror && mirrored {
		return c.EdgeX - c.OffsetX
	}
	return c.EdgeX + c.OffsetX
}

// Accepts reports whether the category reacts to tiles of group.
func (c Category) Accepts(group string) bool {
	if len(c.Groups) == 0 {
		return true
	}
	for _, g := range c.Groups {
		if g == group {
			return true
		}
	}
	return false
}

func CategoryFromSpec(spec prefabs.CollisionCategorySpec) (Category, error) {
	if spec.Name == "" {
		return Category{}, ErrEmptyCategoryName
	}
	axis, err := ParseAxis(spec.Axis)
	if err != nil {
		return Category{}, fmt.Errorf("collision: category %s: %w", spec.Name, err)
	}
	dir, err := ParseDirection(spec.Direction)
	if err != nil {
		return Category{}, fmt.Errorf("collision: category %s: %w", spec.Name, err)
	}
	return Category{
		Name:      spec.Name,
		Axis:      axis,
		Direction: dir,
		OffsetX:   spec.X,
		OffsetY:   spec.Y,
		EdgeX:     spec.EdgeX,
		Mirror:    spec.Mirror,
		Groups:    append([]string(nil), spec.Groups...),
	}, nil
}

package collision

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/tilemap/prefabs"
)

// Transformable is a moving object with the position of the previous tick.
type Transformable interface {
	Position() cp.Vector
	OldPosition() cp.Vector
	SetPosition(p cp.Vector)
	Mirrored() bool
}

// Listener is notified of every boundary crossed by a category sensor.
type Listener interface {
	NotifyTileCollided(result Result, category Category)
}

// Hit is a crossed boundary together with the sensor that crossed it. Target
// is the owner coordinate on the hit axis that puts the sensor on the boundary.
type Hit struct {
	Result   Result
	Category Category
	Target   float64
}

// TileCollidable resolves the move of a Transformable against the tiles of a
// MapCollision, once per tick.
type TileCollidable struct {
	mc         *MapCollision
	categories []Category
	box        *Box
	listeners  []Listener
	enabled    bool
}

func NewTileCollidable(mc *MapCollision, categories ...Category) *TileCollidable {
	return &TileCollidable{
		mc:         mc,
		categories: append([]Category(nil), categories...),
		enabled:    true,
	}
}

// TileCollidableFromSpec builds a collidable from its prefab component.
// Without explicit categories they are derived from the box.
func TileCollidableFromSpec(mc *MapCollision, spec prefabs.CollidableComponentSpec) (*TileCollidable, error) {
	tc := NewTileCollidable(mc)
	if spec.Box != nil {
		box := BoxFromSpec(*spec.Box)
		tc.SetBox(&box)
	}
	for _, cs := range spec.Categories {
		c, err := CategoryFromSpec(cs)
		if err != nil {
			return nil, err
		}
		tc.categories = append(tc.categories, c)
	}
	if len(tc.categories) == 0 {
		if tc.box == nil {
			return nil, fmt.Errorf("collision: collidable needs a box or categories")
		}
		tc.categories = tc.box.Categories(spec.Groups)
	}
	tc.enabled = !spec.Disabled
	return tc, nil
}

// SetBox enables the swept box prefilter: moves whose swept box touches no
// tile with formulas skip every sensor.
func (tc *TileCollidable) SetBox(box *Box) {
	tc.box = box
}

func (tc *TileCollidable) Box() *Box { return tc.box }

func (tc *TileCollidable) AddListener(l Listener) {
	tc.listeners = append(tc.listeners, l)
}

func (tc *TileCollidable) RemoveListener(l Listener) {
	for i, existing := range tc.listeners {
		if existing == l {
			tc.listeners = append(tc.listeners[:i], tc.listeners[i+1:]...)
			return
		}
	}
}

func (tc *TileCollidable) SetEnabled(enabled bool) {
	tc.enabled = enabled
}

func (tc *TileCollidable) Enabled() bool { return tc.enabled }

func (tc *TileCollidable) Categories() []Category {
	return append([]Category(nil), tc.categories...)
}

// Update checks every category against the move from the old to the current
// position of t. Each axis is then resolved on its own: the position is
// clamped so the sensor of the first crossed boundary rests on it. Listeners
// are notified of every hit, and the hits are returned.
func (tc *TileCollidable) Update(t Transformable) []Hit {
	if !tc.enabled || tc.mc == nil {
		return nil
	}
	old, cur := t.OldPosition(), t.Position()
	if old == cur {
		return nil
	}
	mirrored := t.Mirrored()
	if tc.box != nil && !tc.mc.HasFormulasIn(tc.box.SweptBB(old, cur, mirrored)) {
		return nil
	}

	var hits []Hit
	for _, c := range tc.categories {
		ox := c.offsetX(mirrored)
		offset := cp.Vector{X: ox, Y: c.OffsetY}
		res, ok := tc.mc.ComputeCollision(c, old.Add(offset), cur.Add(offset))
		if !ok {
			continue
		}
		target := res.Value - c.OffsetY
		if c.Axis == AxisX {
			target = res.Value - ox
		}
		hits = append(hits, Hit{Result: res, Category: c, Target: target})
	}
	if len(hits) == 0 {
		return nil
	}

	var bestX, bestY *Hit
	for i := range hits {
		h := &hits[i]
		if h.Category.Axis == AxisX {
			bestX = earliest(bestX, h, cur.X-old.X)
		} else {
			bestY = earliest(bestY, h, cur.Y-old.Y)
		}
	}
	pos := cur
	if bestX != nil {
		pos.X = bestX.Target
	}
	if bestY != nil {
		pos.Y = bestY.Target
	}
	t.SetPosition(pos)

	for _, h := range hits {
		for _, l := range tc.listeners {
			l.NotifyTileCollided(h.Result, h.Category)
		}
	}
	return hits
}

// earliest keeps the hit reached first along a move of delta.
func earliest(best, h *Hit, delta float64) *Hit {
	if best == nil {
		return h
	}
	if delta > 0 && h.Target < best.Target || delta < 0 && h.Target > best.Target {
		return h
	}
	return best
}

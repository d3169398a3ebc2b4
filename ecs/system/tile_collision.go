package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tilemap/collision"
	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
)

// TileCollisionSystem resolves the move of every collidable entity against
// the tile formulas and stops its velocity on the hit axes.
type TileCollisionSystem struct{}

func NewTileCollisionSystem() *TileCollisionSystem {
	return &TileCollisionSystem{}
}

type transformBody struct {
	t *component.Transform
}

func (b transformBody) Position() cp.Vector    { return cp.Vector{X: b.t.X, Y: b.t.Y} }
func (b transformBody) OldPosition() cp.Vector { return cp.Vector{X: b.t.OldX, Y: b.t.OldY} }
func (b transformBody) Mirrored() bool         { return b.t.Mirrored }

func (b transformBody) SetPosition(p cp.Vector) {
	b.t.X, b.t.Y = p.X, p.Y
}

func (ts *TileCollisionSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.TileCollidableComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tc *collision.TileCollidable, t *component.Transform) {
		dx, dy := t.X-t.OldX, t.Y-t.OldY
		hits := tc.Update(transformBody{t: t})

		state, ok := ecs.Get(w, e, component.TileCollisionStateComponent.Kind())
		if !ok {
			state = &component.TileCollisionState{}
			if err := ecs.Add(w, e, component.TileCollisionStateComponent.Kind(), state); err != nil {
				panic("tile collision: add state: " + err.Error())
			}
		}
		*state = component.TileCollisionState{Hits: hits}

		vel, hasVel := ecs.Get(w, e, component.VelocityComponent.Kind())
		for _, h := range hits {
			if h.Category.Axis == collision.AxisY {
				if dy > 0 {
					state.Grounded = true
				} else {
					state.Ceiling = true
				}
				if hasVel {
					vel.Y = 0
				}
			} else {
				state.Wall = true
				if hasVel && dx != 0 {
					vel.X = 0
				}
			}

			evt := ecs.TileCollisionEvent{
				Entity:   e,
				Category: h.Category.Name,
				Value:    h.Result.Value,
			}
			if h.Result.Formula != nil {
				evt.Formula = h.Result.Formula.Name
			}
			if h.Result.Tile != nil {
				evt.TileX, evt.TileY = h.Result.Tile.TX, h.Result.Tile.TY
			}
			w.Events().Push(ecs.Event{Type: ecs.EventTileCollided, Data: evt})
		}
	})
}

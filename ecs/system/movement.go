package system

import (
	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
)

// MovementSystem records the previous position of every transform and then
// applies gravity and velocity.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (ms *MovementSystem) Update(w *ecs.World) {
	if ms == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		t.OldX, t.OldY = t.X, t.Y
	})

	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, v *component.Velocity, t *component.Transform) {
		v.Y += v.Gravity
		if v.MaxFall > 0 && v.Y > v.MaxFall {
			v.Y = v.MaxFall
		}
		t.X += v.X
		t.Y += v.Y
		if v.X < 0 {
			t.Mirrored = true
		} else if v.X > 0 {
			t.Mirrored = false
		}
	})
}

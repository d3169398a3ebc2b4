package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/tilemap/collision"
	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
	"github.com/milk9111/tilemap/pathfinding"
	"github.com/milk9111/tilemap/prefabs"
)

var ErrNoMapCollision = errors.New("no map collision to collide with")

// Env holds the maps the built components are bound to. Either may be nil
// when no prefab needs it.
type Env struct {
	Paths      *pathfinding.MapPath
	Collisions *collision.MapCollision
}

type buildContext struct {
	PrefabPath string
	Env        Env
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":   addTransform,
	"velocity":    addVelocity,
	"mover":       addMover,
	"pathfinding": addPathfinding,
	"collidable":  addCollidable,
}

var componentBuildOrder = []string{
	"transform",
	"velocity",
	"mover",
	"pathfinding",
	"collidable",
}

func BuildEntity(w *ecs.World, prefabPath string, env Env) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Env: env}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			DestroyEntity(w, e, env)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		DestroyEntity(w, e, env)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	if m, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok {
		if err := PlaceMover(w, e, env.Paths, m.TX, m.TY); err != nil {
			DestroyEntity(w, e, env)
			return 0, fmt.Errorf("build entity: %q: %w", prefabPath, err)
		}
	}

	return e, nil
}

// PlaceMover moves the mover of e to a tile, moving its occupancy along and
// putting its transform on the bottom center of the footprint. Any path in
// progress is dropped.
func PlaceMover(w *ecs.World, e ecs.Entity, paths *pathfinding.MapPath, tx, ty int) error {
	m, ok := ecs.Get(w, e, component.MoverComponent.Kind())
	if !ok {
		return fmt.Errorf("place mover: entity %v has no mover", e)
	}
	pf, hasPath := ecs.Get(w, e, component.PathfindingComponent.Kind())
	if paths != nil {
		if hasPath && pf.Moving && pf.Path != nil && pf.Step+1 < pf.Path.Len() {
			next := pf.Path.Step(pf.Step + 1)
			paths.RemoveArea(next.X, next.Y, m.Width, m.Height, m.ID)
		}
		paths.RemoveArea(m.TX, m.TY, m.Width, m.Height, m.ID)
		paths.AddArea(tx, ty, m.Width, m.Height, m.ID)
	}
	m.SetLocation(tx, ty)
	if hasPath {
		pf.Path = nil
		pf.Step = 0
		pf.Moving = false
		pf.Progress = 0
	}

	if paths == nil {
		return nil
	}
	tw, th := float64(paths.Grid().TileWidth()), float64(paths.Grid().TileHeight())
	return SetEntityTransform(w, e, float64(tx)*tw+float64(m.Width)*tw/2, float64(ty+m.Height)*th)
}

// DestroyEntity frees the occupancy of the entity mover before destroying it.
func DestroyEntity(w *ecs.World, e ecs.Entity, env Env) bool {
	if m, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok && env.Paths != nil {
		env.Paths.RemoveArea(m.TX, m.TY, m.Width, m.Height, m.ID)
		if pf, ok := ecs.Get(w, e, component.PathfindingComponent.Kind()); ok && pf.Moving && pf.Path != nil && pf.Step+1 < pf.Path.Len() {
			next := pf.Path.Step(pf.Step + 1)
			env.Paths.RemoveArea(next.X, next.Y, m.Width, m.Height, m.ID)
		}
	}
	return ecs.DestroyEntity(w, e)
}

// SetEntityTransform moves e, resetting its previous position so no
// collision is resolved for the jump.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X, t.Y = x, y
	t.OldX, t.OldY = x, y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		OldX:     spec.X,
		OldY:     spec.Y,
		Mirrored: spec.Mirrored,
	})
}

type velocitySpec = prefabs.VelocityComponentSpec

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[velocitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{
		X:       spec.X,
		Y:       spec.Y,
		Gravity: spec.Gravity,
		MaxFall: spec.MaxFall,
	})
}

type moverSpec = prefabs.MoverComponentSpec

// addMover only builds the mover; BuildEntity places it once every component
// exists.
func addMover(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[moverSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mover spec: %w", err)
	}
	return ecs.Add(w, e, component.MoverComponent.Kind(), pathfinding.MoverFromSpec(e.ObjectID(), spec))
}

type pathfindingSpec = prefabs.PathfindingComponentSpec

func addPathfinding(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pathfindingSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pathfinding spec: %w", err)
	}
	return ecs.Add(w, e, component.PathfindingComponent.Kind(), &component.Pathfinding{
		Speed:         spec.Speed,
		RepathFrames:  spec.RepathFrames,
		MaxWaitFrames: spec.MaxWaitFrames,
	})
}

type collidableSpec = prefabs.CollidableComponentSpec

func addCollidable(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collidableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collidable spec: %w", err)
	}
	if ctx.Env.Collisions == nil {
		return ErrNoMapCollision
	}
	tc, err := collision.TileCollidableFromSpec(ctx.Env.Collisions, spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TileCollidableComponent.Kind(), tc)
}

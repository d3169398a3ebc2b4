package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/tilemap/collision"
	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
	"github.com/milk9111/tilemap/pathfinding"
	"github.com/milk9111/tilemap/tilemap"
)

func newTestEnv(t *testing.T) Env {
	t.Helper()
	grid := tilemap.NewGrid(16, 16, 8, 8)
	for ty := 0; ty < 8; ty++ {
		for tx := 0; tx < 8; tx++ {
			grid.SetTile(tx, ty, 0, 1)
		}
	}
	groups := tilemap.NewGroups()
	if err := groups.LoadFile("groups.yaml"); err != nil {
		t.Fatalf("load groups: %v", err)
	}
	paths := pathfinding.NewMapPath(grid, groups)
	if err := paths.LoadPathfindingFile("pathfinding.yaml"); err != nil {
		t.Fatalf("load pathfinding: %v", err)
	}
	mc := collision.NewMapCollision(grid, groups)
	if err := mc.LoadFile("collisions.yaml"); err != nil {
		t.Fatalf("load collisions: %v", err)
	}
	return Env{Paths: paths, Collisions: mc}
}

func TestBuildWalker(t *testing.T) {
	env := newTestEnv(t)
	w := ecs.NewWorld()

	e, err := BuildEntity(w, "walker.yaml", env)
	if err != nil {
		t.Fatalf("build walker: %v", err)
	}

	m, ok := ecs.Get(w, e, component.MoverComponent.Kind())
	if !ok {
		t.Fatal("expected mover")
	}
	if m.ID != e.ObjectID() {
		t.Fatalf("mover id %d, want %d", m.ID, e.ObjectID())
	}
	if !m.IsBlocking("block") || m.IsBlocking("road") || m.Cost("ground") != 2 {
		t.Fatalf("unexpected mover rules")
	}
	pf, ok := ecs.Get(w, e, component.PathfindingComponent.Kind())
	if !ok || pf.Speed != 0.125 || pf.RepathFrames != 30 || pf.MaxWaitFrames != 20 {
		t.Fatalf("unexpected pathfinding %+v", pf)
	}
	if ids := env.Paths.ObjectsID(0, 0); len(ids) != 1 || ids[0] != m.ID {
		t.Fatalf("expected walker to occupy (0,0), got %v", ids)
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || tr.X != 8 || tr.Y != 16 {
		t.Fatalf("unexpected transform %+v", tr)
	}
}

func TestPlaceAndDestroyMover(t *testing.T) {
	env := newTestEnv(t)
	w := ecs.NewWorld()

	e, err := BuildEntity(w, "walker.yaml", env)
	if err != nil {
		t.Fatal(err)
	}
	m, _ := ecs.Get(w, e, component.MoverComponent.Kind())

	if err := PlaceMover(w, e, env.Paths, 3, 4); err != nil {
		t.Fatal(err)
	}
	if len(env.Paths.ObjectsID(0, 0)) != 0 {
		t.Fatal("old tile should be free")
	}
	if ids := env.Paths.ObjectsID(3, 4); len(ids) != 1 || ids[0] != m.ID {
		t.Fatalf("expected mover at (3,4), got %v", ids)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 56 || tr.Y != 80 || tr.OldX != tr.X || tr.OldY != tr.Y {
		t.Fatalf("unexpected transform %+v", tr)
	}

	if !DestroyEntity(w, e, env) {
		t.Fatal("destroy failed")
	}
	if len(env.Paths.ObjectsID(3, 4)) != 0 {
		t.Fatal("destroyed mover should free its tile")
	}
}

func TestBuildJumper(t *testing.T) {
	env := newTestEnv(t)
	w := ecs.NewWorld()

	e, err := BuildEntity(w, "jumper.yaml", env)
	if err != nil {
		t.Fatalf("build jumper: %v", err)
	}
	tc, ok := ecs.Get(w, e, component.TileCollidableComponent.Kind())
	if !ok {
		t.Fatal("expected collidable")
	}
	if len(tc.Categories()) != 4 || tc.Box() == nil || tc.Box().Name != "body" {
		t.Fatalf("expected box derived categories, got %+v", tc.Categories())
	}
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok || v.Gravity != 0.4 || v.MaxFall != 8 {
		t.Fatalf("unexpected velocity %+v", v)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing_prefab", func(t *testing.T) {
		w := ecs.NewWorld()
		if _, err := BuildEntity(w, "nope.yaml", env); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("collidable_without_map", func(t *testing.T) {
		w := ecs.NewWorld()
		_, err := BuildEntity(w, "jumper.yaml", Env{Paths: env.Paths})
		if !errors.Is(err, ErrNoMapCollision) {
			t.Fatalf("expected ErrNoMapCollision, got %v", err)
		}
		if len(ecs.Entities(w)) != 0 {
			t.Fatal("failed build should not leave an entity")
		}
	})
}

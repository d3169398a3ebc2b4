package scene

import (
	"testing"

	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
)

func loadDemo(t *testing.T) *Scene {
	t.Helper()
	s, err := Load("demo", DefaultOptions())
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	return s
}

func TestLoadDemo(t *testing.T) {
	s := loadDemo(t)

	if n := len(ecs.Entities(s.World)); n != 4 {
		t.Fatalf("expected 4 entities, got %d", n)
	}
	movers := s.Movers()
	if len(movers) != 3 {
		t.Fatalf("expected 3 movers, got %d", len(movers))
	}

	e, ok := s.MoverAt(1, 8)
	if !ok || e != movers[0] {
		t.Fatalf("expected the first walker at (1,8), got %v ok=%v", e, ok)
	}
	m, _ := ecs.Get(s.World, e, component.MoverComponent.Kind())
	if ids := s.Paths.ObjectsID(1, 8); len(ids) != 1 || ids[0] != m.ID {
		t.Fatalf("expected (1,8) to hold %d, got %v", m.ID, ids)
	}
	pf, _ := ecs.Get(s.World, e, component.PathfindingComponent.Kind())
	if !pf.HasDestination || pf.DestX != 22 || pf.DestY != 8 {
		t.Fatalf("unexpected destination %+v", pf)
	}

	jumper, ok := ecs.First(s.World, component.TileCollidableComponent.Kind())
	if !ok {
		t.Fatal("expected a collidable jumper")
	}
	tr, _ := ecs.Get(s.World, jumper, component.TransformComponent.Kind())
	if tr.X != 40 || tr.Y != 208 {
		t.Fatalf("jumper at (%v,%v), want (40,208)", tr.X, tr.Y)
	}
}

func TestUpdateMovesBoatAndLandsJumper(t *testing.T) {
	s := loadDemo(t)
	boat, ok := s.MoverAt(15, 10)
	if !ok {
		t.Fatal("expected the boat at (15,10)")
	}
	pf, _ := ecs.Get(s.World, boat, component.PathfindingComponent.Kind())
	jumper, _ := ecs.First(s.World, component.TileCollidableComponent.Kind())

	collided := 0
	for tick := 0; tick < 120; tick++ {
		for _, evt := range s.Update() {
			if evt.Type == ecs.EventTileCollided {
				if ce := evt.Data.(ecs.TileCollisionEvent); ce.Entity == jumper {
					collided++
				}
			}
		}
	}

	if !pf.Arrived {
		t.Fatalf("boat did not arrive: %+v", pf)
	}
	m, _ := ecs.Get(s.World, boat, component.MoverComponent.Kind())
	if m.TX != 18 || m.TY != 11 {
		t.Fatalf("boat at (%d,%d), want (18,11)", m.TX, m.TY)
	}

	tr, _ := ecs.Get(s.World, jumper, component.TransformComponent.Kind())
	if tr.Y != 240 {
		t.Fatalf("jumper y %v, want 240", tr.Y)
	}
	state, ok := ecs.Get(s.World, jumper, component.TileCollisionStateComponent.Kind())
	if !ok || !state.Grounded {
		t.Fatalf("jumper should be grounded, got %+v", state)
	}
	if collided == 0 {
		t.Fatal("expected collision events for the jumper")
	}
}

func TestSendMoverMidStep(t *testing.T) {
	s := loadDemo(t)
	walker, _ := s.MoverAt(1, 8)
	m, _ := ecs.Get(s.World, walker, component.MoverComponent.Kind())
	pf, _ := ecs.Get(s.World, walker, component.PathfindingComponent.Kind())

	for tick := 0; tick < 10 && !pf.Moving; tick++ {
		s.Update()
	}
	if !pf.Moving || m.TX != 1 {
		t.Fatalf("walker should be leaving (1,8): %+v at (%d,%d)", pf, m.TX, m.TY)
	}

	// back to where it started, while the step to (2,8) is in progress
	s.SendMover(walker, 1, 8)
	for tick := 0; tick < 40 && !pf.Arrived; tick++ {
		s.Update()
	}

	if !pf.Arrived || m.TX != 1 || m.TY != 8 {
		t.Fatalf("walker at (%d,%d) arrived=%v, want (1,8)", m.TX, m.TY, pf.Arrived)
	}
	if ids := s.Paths.ObjectsID(2, 8); len(ids) != 0 {
		t.Fatalf("(2,8) still held by %v", ids)
	}
	if ids := s.Paths.ObjectsID(1, 8); len(ids) != 1 || ids[0] != m.ID {
		t.Fatalf("(1,8) holds %v, want [%d]", ids, m.ID)
	}
}

func TestEditTiles(t *testing.T) {
	s := loadDemo(t)
	walker, _ := s.MoverAt(1, 8)
	m, _ := ecs.Get(s.World, walker, component.MoverComponent.Kind())

	if s.Paths.IsBlocked(m, 5, 0, false) {
		t.Fatal("grass should be walkable")
	}
	s.SetTile(5, 0, 0, 2)
	if !s.Paths.IsBlocked(m, 5, 0, false) {
		t.Fatal("wall should block")
	}
	if got := s.Paths.TilePath(5, 0).Category(); got != "block" {
		t.Fatalf("category %q, want block", got)
	}

	s.ChangeGroup(0, 0, "wall")
	for _, c := range [][2]int{{0, 0}, {3, 3}, {23, 0}} {
		if got := s.Paths.TilePath(c[0], c[1]).Category(); got != "block" {
			t.Fatalf("(%d,%d) category %q, want block", c[0], c[1], got)
		}
	}
	if got := s.Paths.TilePath(1, 8).Category(); got != "road" {
		t.Fatalf("road tile changed to %q", got)
	}
}

func TestReload(t *testing.T) {
	s := loadDemo(t)
	cases := []struct {
		name    string
		matched bool
	}{
		{"prefabs/groups.yaml", true},
		{"pathfinding.yaml", true},
		{"collisions.yaml", true},
		{"prefabs/scripts/slope_up.tengo", true},
		{"minimap.yaml", true},
		{"walker.yaml", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			matched, err := s.Reload(c.name)
			if err != nil {
				t.Fatalf("reload: %v", err)
			}
			if matched != c.matched {
				t.Fatalf("matched %v, want %v", matched, c.matched)
			}
		})
	}
}

func TestDespawnFreesTiles(t *testing.T) {
	s := loadDemo(t)
	walker, _ := s.MoverAt(1, 8)
	if !s.Despawn(walker) {
		t.Fatal("despawn failed")
	}
	if ids := s.Paths.ObjectsID(1, 8); len(ids) != 0 {
		t.Fatalf("expected (1,8) free, got %v", ids)
	}
	if _, ok := s.MoverAt(1, 8); ok {
		t.Fatal("despawned mover still found")
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name  string
		level string
		opts  func(o *Options)
	}{
		{"missing_level", "nope", func(*Options) {}},
		{"bad_heuristic", "demo", func(o *Options) { o.Heuristic = "euclid" }},
		{"missing_groups", "demo", func(o *Options) { o.GroupsFile = "nope.yaml" }},
		{"missing_collisions", "demo", func(o *Options) { o.CollisionsFile = "nope.yaml" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			opts := DefaultOptions()
			c.opts(&opts)
			if _, err := Load(c.level, opts); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

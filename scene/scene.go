package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/tilemap/collision"
	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
	"github.com/milk9111/tilemap/ecs/entity"
	"github.com/milk9111/tilemap/ecs/system"
	"github.com/milk9111/tilemap/levels"
	"github.com/milk9111/tilemap/pathfinding"
	"github.com/milk9111/tilemap/tilemap"
)

// Options names the config resources of a scene and tunes the path finder.
type Options struct {
	GroupsFile      string
	PathfindingFile string
	CollisionsFile  string
	MinimapFile     string

	Diagonal          bool
	MaxSearchDistance int
	Heuristic         string
}

func DefaultOptions() Options {
	return Options{
		GroupsFile:        "groups.yaml",
		PathfindingFile:   "pathfinding.yaml",
		CollisionsFile:    "collisions.yaml",
		MinimapFile:       "minimap.yaml",
		MaxSearchDistance: pathfinding.DefaultMaxSearchDistance,
	}
}

// Scene is a loaded level with its classifiers, pathfinding and collision
// maps, and the entities living on it.
type Scene struct {
	Level      *levels.Level
	Grid       *tilemap.Grid
	Groups     *tilemap.Groups
	Paths      *pathfinding.MapPath
	Finder     *pathfinding.Finder
	Collisions *collision.MapCollision
	Minimap    *tilemap.Minimap
	World      *ecs.World
	Scheduler  *ecs.Scheduler

	opts Options
}

// Load reads a level and its config files and spawns the level entities.
func Load(levelPath string, opts Options) (*Scene, error) {
	lvl, err := levels.LoadLevel(levelPath)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", levelPath, err)
	}
	return New(lvl, opts)
}

// New builds a scene from an already decoded level.
func New(lvl *levels.Level, opts Options) (*Scene, error) {
	heuristic, ok := pathfinding.ParseHeuristic(opts.Heuristic, 1)
	if !ok {
		return nil, fmt.Errorf("scene: unknown heuristic %q", opts.Heuristic)
	}

	s := &Scene{
		Level:  lvl,
		Grid:   lvl.Grid(),
		Groups: tilemap.NewGroups(),
		World:  ecs.NewWorld(),
		opts:   opts,
	}
	if err := s.Groups.LoadFile(opts.GroupsFile); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	s.Paths = pathfinding.NewMapPath(s.Grid, s.Groups)
	if err := s.Paths.LoadPathfindingFile(opts.PathfindingFile); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s.Finder = pathfinding.NewFinder(s.Paths,
		pathfinding.WithDiagonal(opts.Diagonal),
		pathfinding.WithMaxSearchDistance(opts.MaxSearchDistance),
		pathfinding.WithHeuristic(heuristic),
	)

	s.Collisions = collision.NewMapCollision(s.Grid, s.Groups)
	if err := s.Collisions.LoadFile(opts.CollisionsFile); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	if opts.MinimapFile != "" {
		mm, err := tilemap.LoadMinimapFile(opts.MinimapFile)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		s.Minimap = mm
	} else {
		s.Minimap = tilemap.NewMinimap(nil)
	}

	s.Scheduler = ecs.NewScheduler(
		system.NewMovementSystem(),
		system.NewPathfindingSystem(s.Finder),
		system.NewTileCollisionSystem(),
	)

	for _, le := range lvl.Entities {
		if _, err := s.Spawn(le); err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	}
	return s, nil
}

func (s *Scene) env() entity.Env {
	return entity.Env{Paths: s.Paths, Collisions: s.Collisions}
}

// Spawn builds a level entity on its tile. A mover is placed on the tile,
// anything else stands on the bottom center of it. The dest_x and dest_y
// props give a mover its first destination.
func (s *Scene) Spawn(le levels.Entity) (ecs.Entity, error) {
	e, err := entity.BuildEntity(s.World, le.Type, s.env())
	if err != nil {
		return 0, err
	}

	if ecs.Has(s.World, e, component.MoverComponent.Kind()) {
		if err := entity.PlaceMover(s.World, e, s.Paths, le.X, le.Y); err != nil {
			entity.DestroyEntity(s.World, e, s.env())
			return 0, err
		}
	} else if ecs.Has(s.World, e, component.TransformComponent.Kind()) {
		tw, th := float64(s.Grid.TileWidth()), float64(s.Grid.TileHeight())
		if err := entity.SetEntityTransform(s.World, e, (float64(le.X)+0.5)*tw, float64(le.Y+1)*th); err != nil {
			return 0, err
		}
	}

	dx, okX := le.PropInt("dest_x")
	dy, okY := le.PropInt("dest_y")
	if okX && okY {
		s.SendMover(e, dx, dy)
	}
	return e, nil
}

// Despawn destroys e and frees the tiles its mover holds.
func (s *Scene) Despawn(e ecs.Entity) bool {
	return entity.DestroyEntity(s.World, e, s.env())
}

// SendMover gives the mover of e a new destination.
func (s *Scene) SendMover(e ecs.Entity, tx, ty int) bool {
	pf, ok := ecs.Get(s.World, e, component.PathfindingComponent.Kind())
	if !ok {
		return false
	}
	pf.SetDestination(tx, ty)
	return true
}

// Movers returns every entity with a mover, in slot order.
func (s *Scene) Movers() []ecs.Entity {
	return s.World.Query(component.MoverComponent.Kind())
}

// MoverAt returns the mover occupying the tile, if any.
func (s *Scene) MoverAt(tx, ty int) (ecs.Entity, bool) {
	for _, e := range s.Movers() {
		m, _ := ecs.Get(s.World, e, component.MoverComponent.Kind())
		if tx >= m.TX && tx < m.TX+m.Width && ty >= m.TY && ty < m.TY+m.Height {
			return e, true
		}
	}
	return 0, false
}

// Update runs one tick and returns the events it produced.
func (s *Scene) Update() []ecs.Event {
	return s.Scheduler.Tick(s.World)
}

// SetTile replaces the tile at (tx, ty) and recomputes its category.
func (s *Scene) SetTile(tx, ty, sheet, number int) {
	s.Grid.SetTile(tx, ty, sheet, number)
	s.Paths.UpdateTile(tx, ty)
}

// ChangeGroup moves the graphic of the tile at (tx, ty) to group. Every tile
// sharing the graphic follows, so the whole map is refreshed.
func (s *Scene) ChangeGroup(tx, ty int, group string) {
	s.Groups.ChangeGroup(s.Grid.Tile(tx, ty), group)
	s.Paths.Refresh()
}

// Reload reloads the config resource called name, as reported by a
// prefabs.Watcher. It reports whether name belongs to the scene.
func (s *Scene) Reload(name string) (bool, error) {
	base := filepath.Base(name)
	switch {
	case base == filepath.Base(s.opts.GroupsFile):
		if err := s.Groups.LoadFile(s.opts.GroupsFile); err != nil {
			return true, fmt.Errorf("scene: reload: %w", err)
		}
		if err := s.Paths.LoadPathfinding(s.Paths.Config()); err != nil {
			return true, fmt.Errorf("scene: reload: %w", err)
		}
		if err := s.Collisions.LoadFile(s.opts.CollisionsFile); err != nil {
			return true, fmt.Errorf("scene: reload: %w", err)
		}
	case base == filepath.Base(s.opts.PathfindingFile):
		if err := s.Paths.LoadPathfindingFile(s.opts.PathfindingFile); err != nil {
			return true, fmt.Errorf("scene: reload: %w", err)
		}
	case base == filepath.Base(s.opts.CollisionsFile), strings.HasSuffix(base, ".tengo"):
		if err := s.Collisions.LoadFile(s.opts.CollisionsFile); err != nil {
			return true, fmt.Errorf("scene: reload: %w", err)
		}
	case s.opts.MinimapFile != "" && base == filepath.Base(s.opts.MinimapFile):
		mm, err := tilemap.LoadMinimapFile(s.opts.MinimapFile)
		if err != nil {
			return true, fmt.Errorf("scene: reload: %w", err)
		}
		s.Minimap = mm
	default:
		return false, nil
	}
	return true, nil
}

package system

import (
	"github.com/milk9111/tilemap/common"
	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
	"github.com/milk9111/tilemap/pathfinding"
)

const (
	defaultPathSpeed        = 0.125
	defaultPathRepathFrames = 30
	defaultMaxWaitFrames    = 30
)

// PathfindingSystem moves entities with a mover tile by tile towards their
// destination. A mover occupies its footprint in the map, and reserves the
// footprint of the next step before moving into it.
type PathfindingSystem struct {
	paths  *pathfinding.MapPath
	finder *pathfinding.Finder
}

func NewPathfindingSystem(finder *pathfinding.Finder) *PathfindingSystem {
	return &PathfindingSystem{paths: finder.MapPath(), finder: finder}
}

func (ps *PathfindingSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.finder == nil {
		return
	}

	ecs.ForEach2(w, component.MoverComponent.Kind(), component.PathfindingComponent.Kind(), func(e ecs.Entity, m *pathfinding.Mover, pf *component.Pathfinding) {
		if pf.Speed <= 0 {
			pf.Speed = defaultPathSpeed
		}
		if pf.RepathFrames <= 0 {
			pf.RepathFrames = defaultPathRepathFrames
		}
		if pf.MaxWaitFrames <= 0 {
			pf.MaxWaitFrames = defaultMaxWaitFrames
		}

		if pf.HasDestination {
			pf.FrameCounter++
			if !pf.Moving {
				ps.nextStep(w, e, m, pf)
			}
			if pf.Moving {
				ps.advance(m, pf)
			}
		}

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			ps.place(m, pf, t)
		}
	})
}

// nextStep runs on a tile boundary: it arrives, searches a path or reserves
// the next step.
func (ps *PathfindingSystem) nextStep(w *ecs.World, e ecs.Entity, m *pathfinding.Mover, pf *component.Pathfinding) {
	if m.TX == pf.DestX && m.TY == pf.DestY {
		pf.Stop()
		pf.Arrived = true
		w.Events().Push(ecs.Event{Type: ecs.EventArrived, Data: ecs.PathEvent{Entity: e, TileX: m.TX, TileY: m.TY}})
		return
	}

	if pf.Path == nil || pf.Repath || pf.FrameCounter%pf.RepathFrames == 0 {
		pf.Repath = false
		path, ok := ps.finder.FindPath(m, pf.DestX, pf.DestY, false)
		if !ok {
			// other movers may leave, so wait behind them
			path, ok = ps.finder.FindPath(m, pf.DestX, pf.DestY, true)
		}
		if !ok {
			pf.Stop()
			pf.Failed = true
			w.Events().Push(ecs.Event{Type: ecs.EventPathBlocked, Data: ecs.PathEvent{Entity: e, TileX: pf.DestX, TileY: pf.DestY}})
			return
		}
		pf.Path = path
		pf.Step = 0
	}

	if pf.Step+1 >= pf.Path.Len() {
		pf.Path = nil
		return
	}
	next := pf.Path.Step(pf.Step + 1)
	if !ps.paths.IsAreaAvailable(m, next.X, next.Y, m.Width, m.Height, m.ID) {
		pf.Waiting++
		if pf.Waiting > pf.MaxWaitFrames {
			pf.Waiting = 0
			pf.Path = nil
			w.Events().Push(ecs.Event{Type: ecs.EventPathBlocked, Data: ecs.PathEvent{Entity: e, TileX: next.X, TileY: next.Y}})
		}
		return
	}

	pf.Waiting = 0
	ps.paths.AddArea(next.X, next.Y, m.Width, m.Height, m.ID)
	pf.Moving = true
	pf.Progress = 0
}

func (ps *PathfindingSystem) advance(m *pathfinding.Mover, pf *component.Pathfinding) {
	pf.Progress += pf.Speed
	if pf.Progress < 1 {
		return
	}
	next := pf.Path.Step(pf.Step + 1)
	ps.paths.RemoveArea(m.TX, m.TY, m.Width, m.Height, m.ID)
	ps.paths.AddArea(next.X, next.Y, m.Width, m.Height, m.ID)
	m.SetLocation(next.X, next.Y)
	pf.Step++
	pf.Progress = 0
	pf.Moving = false
}

// place puts the transform at the bottom center of the mover footprint,
// interpolated towards the next step while moving.
func (ps *PathfindingSystem) place(m *pathfinding.Mover, pf *component.Pathfinding, t *component.Transform) {
	x, y := ps.footprintPosition(m, m.TX, m.TY)
	if pf.Moving && pf.Path != nil && pf.Step+1 < pf.Path.Len() {
		next := pf.Path.Step(pf.Step + 1)
		nx, ny := ps.footprintPosition(m, next.X, next.Y)
		if nx < x {
			t.Mirrored = true
		} else if nx > x {
			t.Mirrored = false
		}
		x = common.Lerp(x, nx, pf.Progress)
		y = common.Lerp(y, ny, pf.Progress)
	}
	t.X, t.Y = x, y
}

func (ps *PathfindingSystem) footprintPosition(m *pathfinding.Mover, tx, ty int) (float64, float64) {
	grid := ps.paths.Grid()
	tw, th := float64(grid.TileWidth()), float64(grid.TileHeight())
	return float64(tx)*tw + float64(m.Width)*tw/2, float64(ty+m.Height) * th
}

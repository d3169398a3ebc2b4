package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
	"github.com/milk9111/tilemap/pathfinding"
	"github.com/milk9111/tilemap/prefabs"
	"github.com/milk9111/tilemap/scene"
	"github.com/milk9111/tilemap/tilemap"
)

const (
	panelWidth = 160

	wallSheet  = 0
	wallNumber = 2
)

var (
	emptyColor    = color.NRGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}
	unknownColor  = color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
	occupiedColor = color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0x60}
	selectedColor = color.NRGBA(colornames.Yellow)
	moverColor    = color.NRGBA(colornames.White)
	pathColor     = color.NRGBA(colornames.Orange)
	bodyColor     = color.NRGBA(colornames.Deepskyblue)
)

// Viewer draws a scene and lets the user drive its movers. Left click selects
// a mover or sends the selected one, right click toggles a wall and middle
// click moves the clicked graphic to the next group.
type Viewer struct {
	scene   *scene.Scene
	watcher *prefabs.Watcher
	ui      *ebitenui.UI
	status  *statusPanel

	width, height int
	scale         int
	clipboard     bool
	debug         bool
	paused        bool

	selected    ecs.Entity
	hasSelected bool
	// replaced remembers the tile under a toggled wall.
	replaced map[tilemap.CoordTile]*tilemap.Tile
	message  string
	frames   int
}

func NewViewer(s *scene.Scene, watcher *prefabs.Watcher, scale int, clipboardOK, debug bool) *Viewer {
	v := &Viewer{
		scene:     s,
		watcher:   watcher,
		width:     s.Grid.Width() + panelWidth,
		height:    s.Grid.Height(),
		scale:     scale,
		clipboard: clipboardOK,
		debug:     debug,
		replaced:  make(map[tilemap.CoordTile]*tilemap.Tile),
	}
	if movers := s.Movers(); len(movers) > 0 {
		v.selected, v.hasSelected = movers[0], true
	}
	v.status = newStatusPanel(v)
	v.ui = v.status.ui
	return v
}

func (v *Viewer) Update() error {
	v.frames++
	v.reloadChanged()
	v.handleInput()

	if !v.paused {
		for _, evt := range v.scene.Update() {
			v.logEvent(evt)
		}
	}

	v.status.refresh()
	v.ui.Update()
	return nil
}

func (v *Viewer) reloadChanged() {
	if v.watcher == nil {
		return
	}
	for _, name := range v.watcher.Poll() {
		matched, err := v.scene.Reload(name)
		switch {
		case err != nil:
			log.Printf("reload %s: %v", name, err)
			v.message = "reload failed: " + name
		case matched:
			log.Printf("reloaded %s", name)
			v.message = "reloaded " + name
		}
	}
}

func (v *Viewer) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.copyPath()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.cycleSelection()
	}

	tx, ty, ok := v.cursorTile()
	if !ok {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if e, found := v.scene.MoverAt(tx, ty); found {
			v.selected, v.hasSelected = e, true
		} else if v.hasSelected {
			v.send(tx, ty)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		v.toggleWall(tx, ty)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		v.cycleGroup(tx, ty)
	}
}

func (v *Viewer) cursorTile() (int, int, bool) {
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= v.scene.Grid.Width() || my >= v.scene.Grid.Height() {
		return 0, 0, false
	}
	return mx / v.scene.Grid.TileWidth(), my / v.scene.Grid.TileHeight(), true
}

func (v *Viewer) cycleSelection() {
	movers := v.scene.Movers()
	if len(movers) == 0 {
		v.hasSelected = false
		return
	}
	next := 0
	for i, e := range movers {
		if v.hasSelected && e == v.selected {
			next = (i + 1) % len(movers)
		}
	}
	v.selected, v.hasSelected = movers[next], true
}

// send moves the selected mover to the tile, or to the closest tile it can
// stand on when that one is taken.
func (v *Viewer) send(tx, ty int) {
	m, ok := ecs.Get(v.scene.World, v.selected, component.MoverComponent.Kind())
	if !ok {
		return
	}
	if !v.scene.Paths.IsAreaAvailable(m, tx, ty, m.Width, m.Height, m.ID) {
		free, found := v.scene.Paths.ClosestAvailableTile(m, m.TX, m.TY, m.Width, m.Height, tx, ty, 1, 1, 8)
		if !found {
			v.message = fmt.Sprintf("no free tile near %d,%d", tx, ty)
			return
		}
		tx, ty = free.X, free.Y
	}
	v.scene.SendMover(v.selected, tx, ty)
	v.message = fmt.Sprintf("mover %d -> %d,%d", m.ID, tx, ty)
}

func (v *Viewer) toggleWall(tx, ty int) {
	key := tilemap.CoordTile{X: tx, Y: ty}
	if old, ok := v.replaced[key]; ok {
		delete(v.replaced, key)
		if old == nil {
			v.scene.Grid.RemoveTile(tx, ty)
			v.scene.Paths.UpdateTile(tx, ty)
		} else {
			v.scene.SetTile(tx, ty, old.Sheet, old.Number)
		}
		return
	}
	var saved *tilemap.Tile
	if t := v.scene.Grid.Tile(tx, ty); t != nil {
		copied := *t
		saved = &copied
	}
	v.replaced[key] = saved
	v.scene.SetTile(tx, ty, wallSheet, wallNumber)
}

// cycleGroup reassigns the graphic under (tx, ty) to the group after its
// current one, in name order. Every tile with that graphic follows.
func (v *Viewer) cycleGroup(tx, ty int) {
	tile := v.scene.Grid.Tile(tx, ty)
	names := v.scene.Groups.Names()
	if tile == nil || len(names) == 0 {
		return
	}
	current := v.scene.Groups.Group(tile)
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
		}
	}
	v.scene.ChangeGroup(tx, ty, next)
	v.message = fmt.Sprintf("%d:%d %s -> %s", tile.Sheet, tile.Number, current, next)
}

func (v *Viewer) copyPath() {
	pf, ok := v.selectedPath()
	if !ok || pf.Path == nil {
		v.message = "no path to copy"
		return
	}
	steps := make([]string, 0, pf.Path.Len())
	for _, step := range pf.Path.Steps() {
		steps = append(steps, fmt.Sprintf("%d,%d", step.X, step.Y))
	}
	text := strings.Join(steps, " ")
	if !v.clipboard {
		log.Printf("path: %s", text)
		v.message = "path logged"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	v.message = fmt.Sprintf("copied %d steps", pf.Path.Len())
}

func (v *Viewer) selectedPath() (*component.Pathfinding, bool) {
	if !v.hasSelected {
		return nil, false
	}
	return ecs.Get(v.scene.World, v.selected, component.PathfindingComponent.Kind())
}

func (v *Viewer) logEvent(evt ecs.Event) {
	switch data := evt.Data.(type) {
	case ecs.PathEvent:
		log.Printf("%s: entity %v at %d,%d", evt.Type, data.Entity, data.TileX, data.TileY)
	case ecs.TileCollisionEvent:
		if v.debug {
			log.Printf("%s: entity %v %s/%s at %d,%d = %.2f", evt.Type, data.Entity, data.Category, data.Formula, data.TileX, data.TileY, data.Value)
		}
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(emptyColor)
	v.drawTiles(screen)
	v.drawPaths(screen)
	v.drawMovers(screen)
	v.drawBodies(screen)
	v.ui.Draw(screen)
}

func (v *Viewer) drawTiles(screen *ebiten.Image) {
	g := v.scene.Grid
	tw, th := float32(g.TileWidth()), float32(g.TileHeight())
	g.ForEach(func(t *tilemap.Tile) {
		c, ok := v.scene.Minimap.Color(t.Ref())
		if !ok {
			c = unknownColor
		}
		x, y := float32(t.TX)*tw, float32(t.TY)*th
		vector.FillRect(screen, x, y, tw, th, c, false)
		if tp := v.scene.Paths.TilePath(t.TX, t.TY); tp != nil && tp.Occupied() {
			vector.FillRect(screen, x, y, tw, th, occupiedColor, false)
		}
	})
}

func (v *Viewer) drawPaths(screen *ebiten.Image) {
	tw, th := float32(v.scene.Grid.TileWidth()), float32(v.scene.Grid.TileHeight())
	ecs.ForEach(v.scene.World, component.PathfindingComponent.Kind(), func(e ecs.Entity, pf *component.Pathfinding) {
		if pf.Path == nil {
			return
		}
		c := pathColor
		if v.hasSelected && e == v.selected {
			c = selectedColor
		}
		for i := pf.Step; i+1 < pf.Path.Len(); i++ {
			a, b := pf.Path.Step(i), pf.Path.Step(i+1)
			vector.StrokeLine(screen,
				(float32(a.X)+0.5)*tw, (float32(a.Y)+0.5)*th,
				(float32(b.X)+0.5)*tw, (float32(b.Y)+0.5)*th,
				2, c, false)
		}
	})
}

func (v *Viewer) drawMovers(screen *ebiten.Image) {
	tw, th := float32(v.scene.Grid.TileWidth()), float32(v.scene.Grid.TileHeight())
	ecs.ForEach2(v.scene.World, component.MoverComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *pathfinding.Mover, t *component.Transform) {
		w, h := float32(m.Width)*tw-4, float32(m.Height)*th-4
		x, y := float32(t.X)-w/2, float32(t.Y)-h-2
		c := moverColor
		if v.hasSelected && e == v.selected {
			c = selectedColor
		}
		vector.StrokeRect(screen, x, y, w, h, 2, c, false)
	})
}

func (v *Viewer) drawBodies(screen *ebiten.Image) {
	ecs.ForEach2(v.scene.World, component.TileCollidableComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tc *collidable, t *component.Transform) {
		box := tc.Box()
		if box == nil {
			return
		}
		bb := box.BB(transformPosition(t), t.Mirrored)
		vector.StrokeRect(screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), 1, bodyColor, false)
	})
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

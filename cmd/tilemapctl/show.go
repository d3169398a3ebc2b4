package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"

	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
	"github.com/milk9111/tilemap/pathfinding"
	"github.com/milk9111/tilemap/scene"
	"github.com/milk9111/tilemap/tilemap"
)

var categoryRunes = map[string]rune{
	"road":   '=',
	"ground": '.',
	"block":  '#',
	"water":  '~',
}

const (
	moverRune   = '@'
	pathRune    = '*'
	unknownRune = '?'
)

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "draw the level in the terminal, with a path when a destination is given",
		Flags: flags(
			[]cli.Flag{prefabFlag(), &cli.BoolFlag{Name: "ignore-occupants", Usage: "walk through tiles held by other movers"}},
			tileFlags("s", "start"),
			tileFlags("d", "destination"),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadScene(cmd)
			if err != nil {
				return err
			}
			var path *pathfinding.Path
			if cmd.IsSet("dx") || cmd.IsSet("dy") {
				if path, err = findPath(cmd, s); err != nil {
					return err
				}
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			for {
				drawMap(screen, s, path)
				screen.Show()
				switch ev := screen.PollEvent().(type) {
				case *tcell.EventKey:
					if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
						return nil
					}
				case *tcell.EventResize:
					screen.Sync()
				case nil:
					return nil
				}
			}
		},
	}
}

// drawMap draws one cell per tile: the category rune coloured with the
// minimap colour, movers on top, then the path.
func drawMap(screen tcell.Screen, s *scene.Scene, path *pathfinding.Path) {
	screen.Clear()
	base := tcell.StyleDefault

	for ty := 0; ty < s.Grid.InTileHeight(); ty++ {
		for tx := 0; tx < s.Grid.InTileWidth(); tx++ {
			tile := s.Grid.Tile(tx, ty)
			if tile == nil {
				continue
			}
			r := unknownRune
			if tp := s.Paths.TilePath(tx, ty); tp != nil {
				if cr, ok := categoryRunes[tp.Category()]; ok {
					r = cr
				}
			}
			screen.SetContent(tx, ty, r, nil, tileStyle(base, s, tile))
		}
	}

	ecs.ForEach(s.World, component.MoverComponent.Kind(), func(e ecs.Entity, m *pathfinding.Mover) {
		for y := m.TY; y < m.TY+m.Height; y++ {
			for x := m.TX; x < m.TX+m.Width; x++ {
				screen.SetContent(x, y, moverRune, nil, base.Bold(true))
			}
		}
	})

	if path != nil {
		for i := 1; i < path.Len(); i++ {
			screen.SetContent(path.X(i), path.Y(i), pathRune, nil, base.Foreground(tcell.ColorYellow).Bold(true))
		}
	}

	status := fmt.Sprintf("%dx%d tiles  q to quit", s.Grid.InTileWidth(), s.Grid.InTileHeight())
	for i, r := range status {
		screen.SetContent(i, s.Grid.InTileHeight()+1, r, nil, base)
	}
}

func tileStyle(base tcell.Style, s *scene.Scene, tile *tilemap.Tile) tcell.Style {
	c, ok := s.Minimap.Color(tile.Ref())
	if !ok {
		return base
	}
	return base.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/milk9111/tilemap/pathfinding"
	"github.com/milk9111/tilemap/prefabs"
	"github.com/milk9111/tilemap/scene"
	"github.com/milk9111/tilemap/tilemap"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "tilemapctl",
		Usage: "query the pathfinding and collision maps of a level",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "level", Value: "demo", Usage: "level name in levels/ or a path to a level JSON file"},
			&cli.StringFlag{Name: "prefabs", Value: "prefabs", Usage: "directory searched for config files before the embedded ones"},
			&cli.BoolFlag{Name: "diagonal", Usage: "allow diagonal steps"},
			&cli.StringFlag{Name: "heuristic", Usage: "manhattan, closest or closest_squared; defaults to closest with --diagonal, manhattan otherwise"},
			&cli.IntFlag{Name: "max-search", Value: pathfinding.DefaultMaxSearchDistance, Usage: "maximum search distance in steps"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			}
			prefabs.SetDiskRoot(cmd.String("prefabs"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			pathCommand(),
			freeCommand(),
			closestCommand(),
			categoriesCommand(),
			groupsCommand(),
			minimapCommand(),
			showCommand(),
		},
	}
}

func loadScene(cmd *cli.Command) (*scene.Scene, error) {
	opts := scene.DefaultOptions()
	opts.Diagonal = cmd.Bool("diagonal")
	opts.Heuristic = cmd.String("heuristic")
	opts.MaxSearchDistance = cmd.Int("max-search")
	return scene.Load(cmd.String("level"), opts)
}

// moverFromPrefab builds a mover off the map from the mover component of a
// prefab. It holds no tile, so it gets no object id.
func moverFromPrefab(name string, tx, ty int) (*pathfinding.Mover, error) {
	spec, err := prefabs.LoadEntityBuildSpec(name)
	if err != nil {
		return nil, err
	}
	raw, ok := spec.Components["mover"]
	if !ok {
		return nil, fmt.Errorf("prefab %s has no mover component", name)
	}
	ms, err := prefabs.DecodeComponentSpec[prefabs.MoverComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode mover of %s: %w", name, err)
	}
	m := pathfinding.MoverFromSpec(pathfinding.NoObjectID, ms)
	m.SetLocation(tx, ty)
	return m, nil
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func prefabFlag() cli.Flag {
	return &cli.StringFlag{Name: "prefab", Value: "walker.yaml", Usage: "prefab whose mover component is used"}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{Name: "out", Usage: "output file, standard output when empty"}
}

func tileFlags(prefix, what string) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: prefix + "x", Usage: what + " tile x"},
		&cli.IntFlag{Name: prefix + "y", Usage: what + " tile y"},
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func formatPath(p *pathfinding.Path) string {
	steps := make([]string, 0, p.Len())
	for _, step := range p.Steps() {
		steps = append(steps, fmt.Sprintf("%d,%d", step.X, step.Y))
	}
	return strings.Join(steps, " ")
}

func findPath(cmd *cli.Command, s *scene.Scene) (*pathfinding.Path, error) {
	m, err := moverFromPrefab(cmd.String("prefab"), cmd.Int("sx"), cmd.Int("sy"))
	if err != nil {
		return nil, err
	}
	path, ok := s.Finder.FindPath(m, cmd.Int("dx"), cmd.Int("dy"), cmd.Bool("ignore-occupants"))
	if !ok {
		return nil, fmt.Errorf("no path from %d,%d to %d,%d", m.TX, m.TY, cmd.Int("dx"), cmd.Int("dy"))
	}
	return path, nil
}

func pathCommand() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "find a path for a prefab mover",
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
			path, err := findPath(cmd, s)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(output(cmd), formatPath(path))
			return err
		},
	}
}

func freeCommand() *cli.Command {
	return &cli.Command{
		Name:  "free",
		Usage: "find a free tile around an area",
		Flags: flags(
			[]cli.Flag{
				prefabFlag(),
				&cli.IntFlag{Name: "w", Value: 1, Usage: "area width in tiles"},
				&cli.IntFlag{Name: "h", Value: 1, Usage: "area height in tiles"},
				&cli.IntFlag{Name: "radius", Value: 4, Usage: "search radius in tiles"},
			},
			tileFlags("", "area"),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadScene(cmd)
			if err != nil {
				return err
			}
			m, err := moverFromPrefab(cmd.String("prefab"), cmd.Int("x"), cmd.Int("y"))
			if err != nil {
				return err
			}
			free, ok := s.Paths.FreeTileAround(m, cmd.Int("x"), cmd.Int("y"), cmd.Int("w"), cmd.Int("h"), cmd.Int("radius"))
			if !ok {
				return fmt.Errorf("no free tile within %d tiles", cmd.Int("radius"))
			}
			_, err = fmt.Fprintf(output(cmd), "%d,%d\n", free.X, free.Y)
			return err
		},
	}
}

func closestCommand() *cli.Command {
	return &cli.Command{
		Name:  "closest",
		Usage: "find the available tile closest to a destination area",
		Flags: flags(
			[]cli.Flag{
				prefabFlag(),
				&cli.IntFlag{Name: "dw", Value: 1, Usage: "destination width in tiles"},
				&cli.IntFlag{Name: "dh", Value: 1, Usage: "destination height in tiles"},
				&cli.IntFlag{Name: "radius", Value: 8, Usage: "search radius in tiles"},
			},
			tileFlags("s", "start"),
			tileFlags("d", "destination"),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadScene(cmd)
			if err != nil {
				return err
			}
			m, err := moverFromPrefab(cmd.String("prefab"), cmd.Int("sx"), cmd.Int("sy"))
			if err != nil {
				return err
			}
			tile, ok := s.Paths.ClosestAvailableTile(m, m.TX, m.TY, m.Width, m.Height,
				cmd.Int("dx"), cmd.Int("dy"), cmd.Int("dw"), cmd.Int("dh"), cmd.Int("radius"))
			if !ok {
				return fmt.Errorf("no available tile within %d tiles", cmd.Int("radius"))
			}
			_, err = fmt.Fprintf(output(cmd), "%d,%d\n", tile.X, tile.Y)
			return err
		},
	}
}

func categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "list the pathfinding categories and their groups",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadScene(cmd)
			if err != nil {
				return err
			}
			w := output(cmd)
			for _, c := range s.Paths.Config() {
				if _, err := fmt.Fprintf(w, "%s: %s\n", c.Name, strings.Join(c.Groups, ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func groupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "groups",
		Usage: "tile group files",
		Commands: []*cli.Command{{
			Name:  "export",
			Usage: "write the loaded tile groups as YAML",
			Flags: []cli.Flag{outFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				s, err := loadScene(cmd)
				if err != nil {
					return err
				}
				data, err := tilemap.EncodeGroups(s.Groups.Export())
				if err != nil {
					return err
				}
				return writeOut(cmd, data)
			},
		}},
	}
}

func minimapCommand() *cli.Command {
	return &cli.Command{
		Name:  "minimap",
		Usage: "minimap colours and images",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "write the minimap colour table as YAML",
				Flags: []cli.Flag{outFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					s, err := loadScene(cmd)
					if err != nil {
						return err
					}
					data, err := tilemap.ExportMinimap(s.Minimap.Colors())
					if err != nil {
						return err
					}
					return writeOut(cmd, data)
				},
			},
			{
				Name:  "render",
				Usage: "render the level as a PNG, one pixel per tile",
				Flags: []cli.Flag{outFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					s, err := loadScene(cmd)
					if err != nil {
						return err
					}
					img := s.Minimap.Render(s.Grid)
					if cmd.String("out") == "" {
						return png.Encode(output(cmd), img)
					}
					f, err := os.Create(cmd.String("out"))
					if err != nil {
						return err
					}
					if err := png.Encode(f, img); err != nil {
						f.Close()
						return err
					}
					return f.Close()
				},
			},
		},
	}
}

func writeOut(cmd *cli.Command, data []byte) error {
	if name := cmd.String("out"); name != "" {
		return os.WriteFile(name, data, 0o644)
	}
	_, err := output(cmd).Write(data)
	return err
}

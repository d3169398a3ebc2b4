package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/tilemap/pathfinding"
	"github.com/milk9111/tilemap/prefabs"
	"github.com/milk9111/tilemap/scene"
)

func main() {
	levelName := flag.String("level", "demo", "level name in levels/ or a path to a level JSON file")
	prefabsDir := flag.String("prefabs", "prefabs", "directory searched for config files before the embedded ones")
	diagonal := flag.Bool("diagonal", false, "allow diagonal steps")
	heuristic := flag.String("heuristic", "", "manhattan, closest or closest_squared; defaults to closest with -diagonal, manhattan otherwise")
	maxSearch := flag.Int("max-search", pathfinding.DefaultMaxSearchDistance, "maximum search distance in steps")
	scale := flag.Int("scale", 3, "window pixels per map pixel")
	watch := flag.Bool("watch", true, "reload config files when they change on disk")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	prefabs.SetDiskRoot(*prefabsDir)

	opts := scene.DefaultOptions()
	opts.Diagonal = *diagonal
	opts.Heuristic = *heuristic
	opts.MaxSearchDistance = *maxSearch

	s, err := scene.Load(*levelName, opts)
	if err != nil {
		log.Fatal(err)
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		clipboardOK = false
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher()
		if err != nil {
			log.Printf("config hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	viewer := NewViewer(s, watcher, *scale, clipboardOK, *debug)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(viewer.width*(*scale), viewer.height*(*scale))
	ebiten.SetWindowTitle("pathview - " + *levelName)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/tilemap/pathfinding"
	"github.com/milk9111/tilemap/scene"
	"github.com/milk9111/tilemap/tilemap"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(context.Background(), append([]string{"tilemapctl"}, args...))
	return buf.String(), err
}

func TestCommands(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"path_along_road", []string{"path", "--sx", "1", "--sy", "8", "--dx", "5", "--dy", "8"}, "1,8 2,8 3,8 4,8 5,8\n"},
		{"free_on_open_tile", []string{"free", "--x", "3", "--y", "0"}, "3,0\n"},
		{"free_next_to_wall", []string{"free", "--x", "12", "--y", "3", "--radius", "1"}, "11,2\n"},
		{"closest", []string{"closest", "--sx", "10", "--sy", "3", "--dx", "12", "--dy", "3"}, "11,3\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := run(t, c.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestPathErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"into_wall", []string{"path", "--sx", "1", "--sy", "8", "--dx", "12", "--dy", "3"}},
		{"boat_on_land", []string{"path", "--prefab", "boat.yaml", "--sx", "15", "--sy", "10", "--dx", "1", "--dy", "1"}},
		{"prefab_without_mover", []string{"path", "--prefab", "jumper.yaml", "--dx", "1"}},
		{"bad_heuristic", []string{"--heuristic", "nope", "path", "--dx", "1"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := run(t, c.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCategories(t *testing.T) {
	got, err := run(t, "categories")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "road: road, bridge\n") || !strings.Contains(got, "block: wall\n") {
		t.Fatalf("unexpected categories:\n%s", got)
	}
}

func TestExports(t *testing.T) {
	dir := t.TempDir()

	groupsOut := filepath.Join(dir, "groups.yaml")
	if _, err := run(t, "groups", "export", "--out", groupsOut); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(groupsOut)
	if err != nil {
		t.Fatal(err)
	}
	groups, err := tilemap.DecodeGroups(data)
	if err != nil {
		t.Fatalf("decode exported groups: %v", err)
	}
	if len(groups) != 8 {
		t.Fatalf("expected 8 groups, got %d", len(groups))
	}

	colors, err := run(t, "minimap", "export")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colors, "#") {
		t.Fatalf("expected hex colours, got:\n%s", colors)
	}

	pngOut := filepath.Join(dir, "demo.png")
	if _, err := run(t, "minimap", "render", "--out", pngOut); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(pngOut)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Fatalf("image size %v", b)
	}
}

func TestDrawMap(t *testing.T) {
	s, err := scene.Load("demo", scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	m, err := moverFromPrefab("walker.yaml", 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	path, ok := s.Finder.FindPath(m, 4, 8, false)
	if !ok {
		t.Fatal("expected a path")
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 20)

	drawMap(screen, s, path)

	cases := []struct {
		x, y int
		want rune
	}{
		{0, 0, '.'},
		{12, 2, '#'},
		{4, 2, '~'},
		{0, 8, '='},
		{1, 8, moverRune},
		{3, 8, pathRune},
		{4, 8, pathRune},
		{20, 3, ' '},
	}
	for _, c := range cases {
		mainc, _, _, _ := screen.GetContent(c.x, c.y)
		if mainc != c.want {
			t.Fatalf("(%d,%d) = %q, want %q", c.x, c.y, mainc, c.want)
		}
	}
	if m.ID != pathfinding.NoObjectID {
		t.Fatalf("standalone mover got id %d", m.ID)
	}
}

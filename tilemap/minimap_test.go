package tilemap

import (
	"image/color"
	"reflect"
	"testing"
)

func TestMinimapLoadFile(t *testing.T) {
	m, err := LoadMinimapFile("minimap.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := []struct {
		ref  TileRef
		want color.NRGBA
	}{
		{TileRef{0, 1}, color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}},
		// royalblue
		{TileRef{0, 3}, color.NRGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff}},
	}
	for _, c := range cases {
		got, ok := m.Color(c.ref)
		if !ok || got != c.want {
			t.Fatalf("color %v: got %v ok=%v, want %v", c.ref, got, ok, c.want)
		}
	}
	if _, ok := m.Color(TileRef{9, 9}); ok {
		t.Fatal("unexpected colour for unknown ref")
	}
}

func TestMinimapExportImport(t *testing.T) {
	colors := map[TileRef]color.NRGBA{
		{0, 0}: {R: 255, A: 255},
		{0, 1}: {B: 255, A: 255},
		{1, 4}: {R: 0x10, G: 0x20, B: 0x30, A: 0x80},
	}
	data, err := ExportMinimap(colors)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	imported, err := ImportMinimap(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(colors, imported) {
		t.Fatalf("round trip mismatch:\n%v\n%v", colors, imported)
	}

	named, err := ImportMinimap([]byte("tiles:\n  - {sheet: 0, number: 0, color: red}\n"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := named[TileRef{0, 0}]; got != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("red = %v", got)
	}

	if _, err := ImportMinimap([]byte("tiles: [{sheet: 0, number: 0, color: '#12'}]")); err == nil {
		t.Fatal("expected error for a bad colour")
	}
}

func TestMinimapRender(t *testing.T) {
	grid := NewGrid(16, 16, 3, 2)
	grid.SetTile(0, 0, 0, 0)
	grid.SetTile(2, 1, 0, 1)
	grid.SetTile(1, 1, 5, 5)

	red := color.NRGBA{R: 0xff, A: 0xff}
	m := NewMinimap(map[TileRef]color.NRGBA{{0, 0}: red})
	m.Set(TileRef{0, 1}, color.NRGBA{B: 0xff, A: 0xff})

	img := m.Render(grid)
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds %v", b)
	}
	if got := img.NRGBAAt(0, 0); got != red {
		t.Fatalf("pixel 0,0: %v", got)
	}
	if got := img.NRGBAAt(2, 1); got.B != 0xff {
		t.Fatalf("pixel 2,1: %v", got)
	}
	for _, p := range [][2]int{{1, 1}, {1, 0}} {
		if got := img.NRGBAAt(p[0], p[1]); got.A != 0 {
			t.Fatalf("pixel %v should be transparent, got %v", p, got)
		}
	}
	if refs := m.Refs(); len(refs) != 2 || refs[0] != (TileRef{0, 0}) {
		t.Fatalf("refs %v", refs)
	}
}

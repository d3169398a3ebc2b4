package tilemap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/milk9111/tilemap/prefabs"
)

// Minimap maps tile refs to a colour and renders a grid as one pixel per tile.
type Minimap struct {
	colors map[TileRef]color.NRGBA
}

func NewMinimap(colors map[TileRef]color.NRGBA) *Minimap {
	m := &Minimap{colors: make(map[TileRef]color.NRGBA, len(colors))}
	for ref, c := range colors {
		m.colors[ref] = c
	}
	return m
}

// LoadMinimapFile reads a minimap YAML resource resolved by prefabs.Load.
func LoadMinimapFile(name string) (*Minimap, error) {
	spec, err := prefabs.LoadSpec[prefabs.MinimapSpec](name)
	if err != nil {
		return nil, err
	}
	return NewMinimap(minimapFromSpec(spec)), nil
}

func (m *Minimap) Color(ref TileRef) (color.NRGBA, bool) {
	c, ok := m.colors[ref]
	return c, ok
}

func (m *Minimap) Set(ref TileRef, c color.NRGBA) {
	m.colors[ref] = c
}

// Colors returns a copy of the colour table.
func (m *Minimap) Colors() map[TileRef]color.NRGBA {
	out := make(map[TileRef]color.NRGBA, len(m.colors))
	for ref, c := range m.colors {
		out[ref] = c
	}
	return out
}

// Render draws one pixel per tile. Empty cells and tiles without a colour
// stay transparent.
func (m *Minimap) Render(g *Grid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.InTileWidth(), g.InTileHeight()))
	g.ForEach(func(t *Tile) {
		if c, ok := m.colors[t.Ref()]; ok {
			img.SetNRGBA(t.TX, t.TY, c)
		}
	})
	return img
}

// ExportMinimap writes a colour table as YAML, sorted by sheet then number.
func ExportMinimap(colors map[TileRef]color.NRGBA) ([]byte, error) {
	set := make(map[TileRef]struct{}, len(colors))
	for ref := range colors {
		set[ref] = struct{}{}
	}
	spec := prefabs.MinimapSpec{}
	for _, ref := range sortedRefs(set) {
		spec.Tiles = append(spec.Tiles, prefabs.MinimapTileSpec{
			Sheet:  ref.Sheet,
			Number: ref.Number,
			Color:  prefabs.YAMLColor{NRGBA: colors[ref]},
		})
	}
	return prefabs.EncodeSpec(spec)
}

// ImportMinimap reads a colour table written by ExportMinimap.
func ImportMinimap(data []byte) (map[TileRef]color.NRGBA, error) {
	spec, err := prefabs.DecodeSpec[prefabs.MinimapSpec]("minimap", data)
	if err != nil {
		return nil, fmt.Errorf("tilemap: import minimap: %w", err)
	}
	return minimapFromSpec(spec), nil
}

func minimapFromSpec(spec prefabs.MinimapSpec) map[TileRef]color.NRGBA {
	colors := make(map[TileRef]color.NRGBA, len(spec.Tiles))
	for _, ts := range spec.Tiles {
		colors[TileRef{Sheet: ts.Sheet, Number: ts.Number}] = ts.Color.NRGBA
	}
	return colors
}

// Refs returns the refs with a colour, sorted.
func (m *Minimap) Refs() []TileRef {
	set := make(map[TileRef]struct{}, len(m.colors))
	for ref := range m.colors {
		set[ref] = struct{}{}
	}
	return sortedRefs(set)
}

package tilemap

import "math"

// Grid is a fixed size 2D array of tiles. Cells may be empty.
type Grid struct {
	tileW  int
	tileH  int
	width  int
	height int
	tiles  []*Tile
}

// NewGrid creates an empty grid of width x height tiles, each tileW x tileH pixels.
func NewGrid(tileW, tileH, width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		tileW:  tileW,
		tileH:  tileH,
		width:  width,
		height: height,
		tiles:  make([]*Tile, width*height),
	}
}

// InBounds reports whether (tx, ty) lies inside the grid.
func (g *Grid) InBounds(tx, ty int) bool {
	return g != nil && tx >= 0 && ty >= 0 && tx < g.width && ty < g.height
}

// SetTile places a tile at (tx, ty), replacing any previous one.
// It returns nil when the coordinate is outside the grid.
func (g *Grid) SetTile(tx, ty, sheet, number int) *Tile {
	if !g.InBounds(tx, ty) {
		return nil
	}
	t := &Tile{
		Sheet:  sheet,
		Number: number,
		TX:     tx,
		TY:     ty,
		Width:  g.tileW,
		Height: g.tileH,
	}
	g.tiles[ty*g.width+tx] = t
	return t
}

// RemoveTile clears the cell at (tx, ty).
func (g *Grid) RemoveTile(tx, ty int) {
	if !g.InBounds(tx, ty) {
		return
	}
	g.tiles[ty*g.width+tx] = nil
}

// Tile returns the tile at (tx, ty), or nil when the cell is empty or outside the grid.
func (g *Grid) Tile(tx, ty int) *Tile {
	if !g.InBounds(tx, ty) {
		return nil
	}
	return g.tiles[ty*g.width+tx]
}

// TileAt returns the tile under the pixel position (x, y).
func (g *Grid) TileAt(x, y float64) *Tile {
	tx, ty, ok := g.TileCoord(x, y)
	if !ok {
		return nil
	}
	return g.Tile(tx, ty)
}

// TileCoord converts a pixel position to tile coordinates. The coordinates are
// returned even when outside the grid; ok reports whether they are inside.
func (g *Grid) TileCoord(x, y float64) (int, int, bool) {
	if g == nil || g.tileW <= 0 || g.tileH <= 0 {
		return 0, 0, false
	}
	tx := int(math.Floor(x / float64(g.tileW)))
	ty := int(math.Floor(y / float64(g.tileH)))
	return tx, ty, g.InBounds(tx, ty)
}

// ForEach calls fn for every placed tile in row-major order.
func (g *Grid) ForEach(fn func(t *Tile)) {
	if g == nil || fn == nil {
		return
	}
	for _, t := range g.tiles {
		if t != nil {
			fn(t)
		}
	}
}

func (g *Grid) InTileWidth() int  { return g.width }
func (g *Grid) InTileHeight() int { return g.height }
func (g *Grid) TileWidth() int    { return g.tileW }
func (g *Grid) TileHeight() int   { return g.tileH }

// Width returns the grid width in pixels.
func (g *Grid) Width() int { return g.width * g.tileW }

// Height returns the grid height in pixels.
func (g *Grid) Height() int { return g.height * g.tileH }

package tilemap

// TileRef identifies a tile graphic independently of where it is placed.
type TileRef struct {
	Sheet  int
	Number int
}

// Tile is a placed tile. Two tiles are equal when sheet, number and tile
// coordinates match.
type Tile struct {
	Sheet  int
	Number int
	TX     int
	TY     int
	Width  int
	Height int
}

// Ref returns the coordinate independent identity of the tile.
func (t *Tile) Ref() TileRef {
	if t == nil {
		return TileRef{}
	}
	return TileRef{Sheet: t.Sheet, Number: t.Number}
}

// X returns the left edge of the tile in pixels.
func (t *Tile) X() float64 {
	return float64(t.TX * t.Width)
}

// Y returns the top edge of the tile in pixels.
func (t *Tile) Y() float64 {
	return float64(t.TY * t.Height)
}

// CoordTile is a grid coordinate.
type CoordTile struct {
	X int
	Y int
}

package pathfinding

import (
	"fmt"
	"sort"

	"github.com/milk9111/tilemap/common"
	"github.com/milk9111/tilemap/prefabs"
	"github.com/milk9111/tilemap/tilemap"
)

// NoObjectID is never a valid occupant id. Passed to IsAreaAvailable it
// disables the occupant check.
const NoObjectID = 0

// MapPath holds the path categories and per tile occupancy of a grid.
// It is not safe for concurrent use.
type MapPath struct {
	grid       *tilemap.Grid
	groups     *tilemap.Groups
	categories []Category
	paths      []*TilePath
	source     string
}

// NewMapPath creates a MapPath over grid without categories. Every tile
// starts with the empty category until LoadPathfinding is called.
func NewMapPath(grid *tilemap.Grid, groups *tilemap.Groups) *MapPath {
	mp := &MapPath{grid: grid, groups: groups}
	mp.paths = make([]*TilePath, grid.InTileWidth()*grid.InTileHeight())
	return mp
}

func (mp *MapPath) Grid() *tilemap.Grid     { return mp.grid }
func (mp *MapPath) Groups() *tilemap.Groups { return mp.groups }

// Source returns the resource name of the last successful LoadPathfindingFile.
func (mp *MapPath) Source() string { return mp.source }

// LoadPathfinding replaces the categories and recomputes the category of
// every tile from its current group. Occupants are kept. The configuration is
// validated before anything changes, so a failed load leaves the previous
// state in place.
func (mp *MapPath) LoadPathfinding(categories []Category) error {
	if err := validateCategories(categories, mp.groups); err != nil {
		return err
	}
	mp.categories = make([]Category, len(categories))
	for i, c := range categories {
		mp.categories[i] = Category{Name: c.Name, Groups: append([]string(nil), c.Groups...)}
	}
	mp.source = ""
	mp.Refresh()
	return nil
}

// LoadPathfindingFile loads categories from a YAML resource resolved by prefabs.Load.
func (mp *MapPath) LoadPathfindingFile(name string) error {
	spec, err := prefabs.LoadSpec[prefabs.PathfindingSpec](name)
	if err != nil {
		return err
	}
	if err := mp.LoadPathfinding(CategoriesFromSpec(spec)); err != nil {
		return fmt.Errorf("pathfinding: load %s: %w", name, err)
	}
	mp.source = name
	return nil
}

// Refresh recomputes the category of every tile. Call it after groups were
// reloaded or changed.
func (mp *MapPath) Refresh() {
	for ty := 0; ty < mp.grid.InTileHeight(); ty++ {
		for tx := 0; tx < mp.grid.InTileWidth(); tx++ {
			mp.UpdateTile(tx, ty)
		}
	}
}

// UpdateTile recomputes the category of the tile at (tx, ty), for example
// after a group change. Cells without a tile lose their path state.
func (mp *MapPath) UpdateTile(tx, ty int) {
	if !mp.grid.InBounds(tx, ty) {
		return
	}
	i := ty*mp.grid.InTileWidth() + tx
	tile := mp.grid.Tile(tx, ty)
	if tile == nil {
		mp.paths[i] = nil
		return
	}
	category := mp.categoryOfTile(tile)
	if tp := mp.paths[i]; tp != nil {
		tp.category = category
		return
	}
	mp.paths[i] = newTilePath(category)
}

// TilePath returns the path state of the tile at (tx, ty), nil when absent.
func (mp *MapPath) TilePath(tx, ty int) *TilePath {
	if mp.grid.Tile(tx, ty) == nil {
		return nil
	}
	i := ty*mp.grid.InTileWidth() + tx
	if mp.paths[i] == nil {
		mp.paths[i] = newTilePath(mp.categoryOfTile(mp.grid.Tile(tx, ty)))
	}
	return mp.paths[i]
}

func (mp *MapPath) categoryOfTile(tile *tilemap.Tile) string {
	group := tilemap.NoGroup
	if mp.groups != nil {
		group = mp.groups.Group(tile)
	}
	return mp.Category(group)
}

// Category returns the first category listing group, in configuration order,
// or the empty string.
func (mp *MapPath) Category(group string) string {
	for _, c := range mp.categories {
		if c.Contains(group) {
			return c.Name
		}
	}
	return ""
}

// Categories returns the configured category names, sorted.
func (mp *MapPath) Categories() []string {
	names := make([]string, 0, len(mp.categories))
	for _, c := range mp.categories {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Config returns a copy of the configured categories in configuration order.
func (mp *MapPath) Config() []Category {
	out := make([]Category, len(mp.categories))
	for i, c := range mp.categories {
		out[i] = Category{Name: c.Name, Groups: append([]string(nil), c.Groups...)}
	}
	return out
}

func (mp *MapPath) AddObjectID(tx, ty, id int) {
	if tp := mp.TilePath(tx, ty); tp != nil {
		tp.AddObjectID(id)
	}
}

func (mp *MapPath) RemoveObjectID(tx, ty, id int) {
	if tp := mp.TilePath(tx, ty); tp != nil {
		tp.RemoveObjectID(id)
	}
}

// ObjectsID returns the ids occupying (tx, ty). Absent tiles return an empty
// slice.
func (mp *MapPath) ObjectsID(tx, ty int) []int {
	if tp := mp.TilePath(tx, ty); tp != nil {
		return tp.ObjectsID()
	}
	return []int{}
}

// AddArea and RemoveArea mark every tile of a footprint.
func (mp *MapPath) AddArea(tx, ty, tw, th, id int) {
	for cty := ty; cty < ty+th; cty++ {
		for ctx := tx; ctx < tx+tw; ctx++ {
			mp.AddObjectID(ctx, cty, id)
		}
	}
}

func (mp *MapPath) RemoveArea(tx, ty, tw, th, id int) {
	for cty := ty; cty < ty+th; cty++ {
		for ctx := tx; ctx < tx+tw; ctx++ {
			mp.RemoveObjectID(ctx, cty, id)
		}
	}
}

// IsBlocked reports whether mover cannot stand on (tx, ty). Tiles outside the
// grid and empty cells are blocked. Unless ignoreObjectsID is set, any
// occupant the mover does not ignore blocks the tile whatever its category.
func (mp *MapPath) IsBlocked(mover Pathfindable, tx, ty int, ignoreObjectsID bool) bool {
	if !mp.grid.InBounds(tx, ty) {
		return true
	}
	tp := mp.TilePath(tx, ty)
	if tp == nil {
		return true
	}
	if !ignoreObjectsID {
		for id := range tp.objects {
			if !mover.IsIgnoredID(id) {
				return true
			}
		}
	}
	return mover.IsBlocking(tp.category)
}

// Cost returns the mover's cost of entering (tx, ty), 0 for absent tiles.
func (mp *MapPath) Cost(mover Pathfindable, tx, ty int) float64 {
	tp := mp.TilePath(tx, ty)
	if tp == nil {
		return 0
	}
	return mover.Cost(tp.category)
}

// IsAreaAvailable reports whether every tile of the tw x th area at (tx, ty)
// exists and is not blocking for mover. When ignoreObjectID is not
// NoObjectID, each tile must also be empty or occupied by that id alone.
func (mp *MapPath) IsAreaAvailable(mover Pathfindable, tx, ty, tw, th, ignoreObjectID int) bool {
	for cty := ty; cty < ty+th; cty++ {
		for ctx := tx; ctx < tx+tw; ctx++ {
			tp := mp.TilePath(ctx, cty)
			if tp == nil || mover.IsBlocking(tp.category) {
				return false
			}
			if ignoreObjectID != NoObjectID && !tp.onlyOccupant(ignoreObjectID) {
				return false
			}
		}
	}
	return true
}

// FreeTileAround searches square rings of growing size around (tx, ty), from
// 0 up to radius, and returns the first position where a tw x th area is
// available. Each ring is scanned column by column, left to right, and top to
// bottom inside a column.
func (mp *MapPath) FreeTileAround(mover Pathfindable, tx, ty, tw, th, radius int) (tilemap.CoordTile, bool) {
	for size := 0; size <= radius; size++ {
		for ctx := tx - size; ctx <= tx+size; ctx++ {
			for cty := ty - size; cty <= ty+size; cty++ {
				if mp.IsAreaAvailable(mover, ctx, cty, tw, th, NoObjectID) {
					return tilemap.CoordTile{X: ctx, Y: cty}, true
				}
			}
		}
	}
	return tilemap.CoordTile{}, false
}

// FreeTileAroundMover is FreeTileAround at the mover's own position and footprint.
func (mp *MapPath) FreeTileAroundMover(mover Pathfindable, radius int) (tilemap.CoordTile, bool) {
	return mp.FreeTileAround(mover, mover.InTileX(), mover.InTileY(), mover.InTileWidth(), mover.InTileHeight(), radius)
}

// ClosestAvailableTile searches square rings of growing size around
// (stx, sty), starting at 1, for positions where the stw x sth area is
// available. Within the first ring holding any such position it returns the
// one closest to the dtw x dth destination area. The search gives up as soon
// as the next ring size would reach radius, dropping any hit of the ring just
// scanned, so radius 2 or less never finds a tile.
func (mp *MapPath) ClosestAvailableTile(mover Pathfindable, stx, sty, stw, sth, dtx, dty, dtw, dth, radius int) (tilemap.CoordTile, bool) {
	for size := 1; ; size++ {
		var closest tilemap.CoordTile
		found := false
		best := 0.0
		for tx := stx - size; tx <= stx+size; tx++ {
			for ty := sty - size; ty <= sty+size; ty++ {
				if !mp.IsAreaAvailable(mover, tx, ty, stw, sth, NoObjectID) {
					continue
				}
				d := common.FootprintDistance(tx, ty, stw, sth, dtx, dty, dtw, dth)
				if !found || d < best {
					best = d
					closest = tilemap.CoordTile{X: tx, Y: ty}
					found = true
				}
			}
		}
		if size+1 >= radius {
			return tilemap.CoordTile{}, false
		}
		if found {
			return closest, true
		}
	}
}

// ClosestAvailableTileTo is ClosestAvailableTile from the mover's position and
// footprint towards to.
func (mp *MapPath) ClosestAvailableTileTo(mover Pathfindable, to Tiled, radius int) (tilemap.CoordTile, bool) {
	return mp.ClosestAvailableTile(mover,
		mover.InTileX(), mover.InTileY(), mover.InTileWidth(), mover.InTileHeight(),
		to.InTileX(), to.InTileY(), to.InTileWidth(), to.InTileHeight(),
		radius)
}

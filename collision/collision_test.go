package collision

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/tilemap/prefabs"
	"github.com/milk9111/tilemap/tilemap"
)

const (
	tileWall   = 2
	tileSlope  = 4
	tileBridge = 6
)

type body struct {
	pos      cp.Vector
	old      cp.Vector
	mirrored bool
}

func (b *body) Position() cp.Vector     { return b.pos }
func (b *body) OldPosition() cp.Vector  { return b.old }
func (b *body) SetPosition(p cp.Vector) { b.pos = p }
func (b *body) Mirrored() bool          { return b.mirrored }

func move(from, to cp.Vector) *body {
	return &body{old: from, pos: to}
}

type recorder struct {
	results    []Result
	categories []Category
}

func (r *recorder) NotifyTileCollided(result Result, category Category) {
	r.results = append(r.results, result)
	r.categories = append(r.categories, category)
}

func testGroups(t *testing.T) *tilemap.Groups {
	t.Helper()
	groups := tilemap.NewGroups()
	err := groups.Load([]tilemap.TileGroup{
		{Name: "wall", Tiles: []tilemap.TileRef{{Sheet: 0, Number: tileWall}}},
		{Name: "slope_up", Tiles: []tilemap.TileRef{{Sheet: 0, Number: tileSlope}}},
		{Name: "bridge", Tiles: []tilemap.TileRef{{Sheet: 0, Number: tileBridge}}},
	})
	if err != nil {
		t.Fatalf("load groups: %v", err)
	}
	return groups
}

func testConfig(t *testing.T) Config {
	t.Helper()
	slope, err := NewExpression("16 - x")
	if err != nil {
		t.Fatalf("compile slope: %v", err)
	}
	full := Range{Output: AxisY, MaxX: 16, MaxY: 16}
	side := Range{Output: AxisX, MaxX: 16, MaxY: 16}
	return Config{
		Formulas: []*Formula{
			{Name: "top", Direction: DirectionPositive, Range: full, Function: Linear{}},
			{Name: "bottom", Direction: DirectionNegative, Range: full, Function: Linear{B: 16}},
			{Name: "left", Direction: DirectionPositive, Range: side, Function: Linear{}},
			{Name: "right", Direction: DirectionNegative, Range: side, Function: Linear{B: 16}},
			{Name: "slope", Direction: DirectionPositive, Range: full, Function: slope},
		},
		Groups: map[string][]string{
			"wall":     {"top", "bottom", "left", "right"},
			"slope_up": {"slope"},
			"bridge":   {"top"},
		},
	}
}

// newTestMap builds a 16px grid where '#' is wall, '/' a rising slope, '='
// a bridge and '.' an empty cell.
func newTestMap(t *testing.T, rows ...string) *MapCollision {
	t.Helper()
	grid := tilemap.NewGrid(16, 16, len(rows[0]), len(rows))
	for ty, row := range rows {
		for tx, c := range row {
			switch c {
			case '#':
				grid.SetTile(tx, ty, 0, tileWall)
			case '/':
				grid.SetTile(tx, ty, 0, tileSlope)
			case '=':
				grid.SetTile(tx, ty, 0, tileBridge)
			}
		}
	}
	mc := NewMapCollision(grid, testGroups(t))
	if err := mc.Load(testConfig(t)); err != nil {
		t.Fatalf("load collisions: %v", err)
	}
	return mc
}

var (
	feet = Category{Name: "feet", Axis: AxisY, Direction: DirectionPositive}
	head = Category{Name: "head", Axis: AxisY, Direction: DirectionNegative, OffsetY: -14}
	hand = Category{Name: "hand", Axis: AxisX, Direction: DirectionPositive, OffsetX: 5, OffsetY: -7}
)

func TestTileCollidableAxisY(t *testing.T) {
	cases := []struct {
		name     string
		rows     []string
		category Category
		from     cp.Vector
		to       cp.Vector
		wantY    float64
		hit      bool
	}{
		{"landing", []string{"...", "...", "###"}, feet, cp.Vector{X: 8, Y: 28}, cp.Vector{X: 8, Y: 34}, 32, true},
		{"fast_fall_stops_at_top", []string{"...", "...", "###", "###"}, feet, cp.Vector{X: 8, Y: 20}, cp.Vector{X: 8, Y: 60}, 32, true},
		{"standing", []string{"...", "...", "###"}, feet, cp.Vector{X: 8, Y: 32}, cp.Vector{X: 8, Y: 32.4}, 32, true},
		{"jumping_off", []string{"...", "...", "###"}, feet, cp.Vector{X: 8, Y: 32}, cp.Vector{X: 8, Y: 28}, 28, false},
		{"free_fall", []string{"...", "...", "..."}, feet, cp.Vector{X: 8, Y: 10}, cp.Vector{X: 8, Y: 20}, 20, false},
		{"ceiling", []string{"###", "...", "..."}, head, cp.Vector{X: 8, Y: 34}, cp.Vector{X: 8, Y: 28}, 30, true},
		{"below_ceiling_falls", []string{"###", "...", "..."}, feet, cp.Vector{X: 8, Y: 16}, cp.Vector{X: 8, Y: 17}, 17, false},
		{"slope_step_up", []string{"...", "./.", "###"}, feet, cp.Vector{X: 14, Y: 32}, cp.Vector{X: 18, Y: 32.4}, 30, true},
		{"on_slope", []string{"...", "./.", "###"}, feet, cp.Vector{X: 24, Y: 24}, cp.Vector{X: 26, Y: 24.4}, 22, true},
		{"bridge", []string{"...", "=..", "..."}, feet, cp.Vector{X: 8, Y: 14}, cp.Vector{X: 8, Y: 18}, 16, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mc := newTestMap(t, c.rows...)
			tc := NewTileCollidable(mc, c.category)
			rec := &recorder{}
			tc.AddListener(rec)

			b := move(c.from, c.to)
			hits := tc.Update(b)
			if (len(hits) > 0) != c.hit {
				t.Fatalf("hits = %v, want hit %v", hits, c.hit)
			}
			if math.Abs(b.pos.Y-c.wantY) > 1e-9 {
				t.Fatalf("y = %v, want %v", b.pos.Y, c.wantY)
			}
			if b.pos.X != c.to.X {
				t.Fatalf("x changed to %v", b.pos.X)
			}
			if len(rec.results) != len(hits) {
				t.Fatalf("listener saw %d hits, want %d", len(rec.results), len(hits))
			}
			for _, r := range rec.results {
				if r.Axis != AxisY || r.Tile == nil {
					t.Fatalf("bad result %+v", r)
				}
			}
		})
	}
}

func TestTileCollidableAxisX(t *testing.T) {
	mc := newTestMap(t, "..#", "..#", "###")
	tc := NewTileCollidable(mc, hand)

	b := move(cp.Vector{X: 20, Y: 32}, cp.Vector{X: 30, Y: 32})
	if hits := tc.Update(b); len(hits) != 1 {
		t.Fatalf("expected one hit, got %v", hits)
	}
	if b.pos.X != 27 {
		t.Fatalf("x = %v, want 27 so the hand rests on 32", b.pos.X)
	}

	b = move(cp.Vector{X: 27, Y: 32}, cp.Vector{X: 20, Y: 32})
	if hits := tc.Update(b); len(hits) != 0 {
		t.Fatalf("moving away should not collide: %v", hits)
	}
}

func TestTileCollidableBothAxes(t *testing.T) {
	mc := newTestMap(t, "..#", "..#", "###")
	tc := NewTileCollidable(mc, feet, hand)
	rec := &recorder{}
	tc.AddListener(rec)

	b := move(cp.Vector{X: 20, Y: 30}, cp.Vector{X: 28, Y: 34})
	tc.Update(b)
	if b.pos != (cp.Vector{X: 27, Y: 32}) {
		t.Fatalf("pos = %v, want (27,32)", b.pos)
	}
	if len(rec.categories) != 2 {
		t.Fatalf("listener calls = %d, want 2", len(rec.categories))
	}
}

func TestTileCollidableMirror(t *testing.T) {
	mc := newTestMap(t, "#..", "#..", "###")
	sensor := Category{Name: "hand", Axis: AxisX, OffsetX: 5, OffsetY: -7, Mirror: true}
	tc := NewTileCollidable(mc, sensor)

	b := move(cp.Vector{X: 26, Y: 32}, cp.Vector{X: 19, Y: 32})
	b.mirrored = true
	if hits := tc.Update(b); len(hits) != 1 {
		t.Fatalf("mirrored hand should hit the left wall: %v", hits)
	}
	if b.pos.X != 21 {
		t.Fatalf("x = %v, want 21", b.pos.X)
	}
}

func TestTileCollidableDisabledAndFiltered(t *testing.T) {
	mc := newTestMap(t, "...", "...", "###")
	tc := NewTileCollidable(mc, feet)
	tc.SetEnabled(false)
	b := move(cp.Vector{X: 8, Y: 28}, cp.Vector{X: 8, Y: 34})
	if hits := tc.Update(b); hits != nil || b.pos.Y != 34 {
		t.Fatalf("disabled collidable resolved a move: %v %v", hits, b.pos)
	}
	tc.SetEnabled(true)
	if !tc.Enabled() {
		t.Fatalf("expected enabled")
	}

	bridgeOnly := feet
	bridgeOnly.Groups = []string{"bridge"}
	tc = NewTileCollidable(mc, bridgeOnly)
	if hits := tc.Update(b); len(hits) != 0 {
		t.Fatalf("category should ignore walls: %v", hits)
	}
}

func TestTileCollidableRemoveListener(t *testing.T) {
	mc := newTestMap(t, "...", "...", "###")
	tc := NewTileCollidable(mc, feet)
	rec := &recorder{}
	tc.AddListener(rec)
	tc.RemoveListener(rec)
	tc.Update(move(cp.Vector{X: 8, Y: 28}, cp.Vector{X: 8, Y: 34}))
	if len(rec.results) != 0 {
		t.Fatalf("removed listener was notified")
	}
}

func TestBox(t *testing.T) {
	box := Box{Name: "body", OffsetX: 2, Width: 10, Height: 14, Mirror: true}
	bb := box.BB(cp.Vector{X: 20, Y: 40}, false)
	if bb != (cp.BB{L: 17, B: 26, R: 27, T: 40}) {
		t.Fatalf("bb = %+v", bb)
	}
	if mirrored := box.BB(cp.Vector{X: 20, Y: 40}, true); mirrored != (cp.BB{L: 13, B: 26, R: 23, T: 40}) {
		t.Fatalf("mirrored bb = %+v", mirrored)
	}
	swept := box.SweptBB(cp.Vector{X: 20, Y: 40}, cp.Vector{X: 30, Y: 50}, false)
	if swept != (cp.BB{L: 17, B: 26, R: 37, T: 50}) {
		t.Fatalf("swept bb = %+v", swept)
	}

	cats := box.Categories([]string{"wall"})
	names := []string{"body.bottom", "body.top", "body.left", "body.right"}
	if len(cats) != len(names) {
		t.Fatalf("categories = %v", cats)
	}
	for i, c := range cats {
		if c.Name != names[i] || !c.Accepts("wall") || c.Accepts("water") {
			t.Fatalf("category %d = %+v", i, c)
		}
	}
	if cats[1].OffsetY != -14 {
		t.Fatalf("unexpected top offset %+v", cats[1])
	}

	// side sensors follow the box edges when it flips
	sides := []struct {
		cat      Category
		mirrored bool
		want     float64
	}{
		{cats[2], false, -3},
		{cats[3], false, 7},
		{cats[2], true, -7},
		{cats[3], true, 3},
	}
	for _, c := range sides {
		if got := c.cat.offsetX(c.mirrored); got != c.want {
			t.Fatalf("%s mirrored=%v: x offset %v, want %v", c.cat.Name, c.mirrored, got, c.want)
		}
	}
}

func TestBoxPrefilter(t *testing.T) {
	mc := newTestMap(t, "....", "....", "....", "...#")
	box := Box{Width: 10, Height: 14}
	tc := NewTileCollidable(mc, box.Categories(nil)...)
	tc.SetBox(&box)
	b := move(cp.Vector{X: 8, Y: 10}, cp.Vector{X: 8, Y: 12})
	if hits := tc.Update(b); hits != nil {
		t.Fatalf("no formula near the move, got %v", hits)
	}
	b = move(cp.Vector{X: 56, Y: 44}, cp.Vector{X: 56, Y: 50})
	if hits := tc.Update(b); len(hits) != 1 || b.pos.Y != 48 {
		t.Fatalf("expected landing on the wall, got %v %v", hits, b.pos)
	}
}

func TestFunctions(t *testing.T) {
	s, err := NewExpression("16 - x")
	if err != nil {
		t.Fatalf("expression: %v", err)
	}
	if got := s.Compute(4); got != 12 {
		t.Fatalf("16 - 4 = %v", got)
	}
	s, err = NewScript("math := import(\"math\")\ny := math.abs(x - 8)")
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if got := s.Compute(3); got != 5 {
		t.Fatalf("abs(3 - 8) = %v", got)
	}
	if _, err := NewScript("z := x"); err == nil {
		t.Fatalf("script without y should fail")
	}
	if _, err := NewExpression(""); !errors.Is(err, ErrEmptyScript) {
		t.Fatalf("expected empty script error, got %v", err)
	}
	if _, err := FunctionFromSpec(prefabs.FunctionSpec{Type: "spline"}); !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("expected unknown function error, got %v", err)
	}
	fn, err := FunctionFromSpec(prefabs.FunctionSpec{Type: "script", Script: "slope_up.tengo"})
	if err != nil {
		t.Fatalf("script file: %v", err)
	}
	if got := fn.Compute(6); got != 10 {
		t.Fatalf("slope_up(6) = %v", got)
	}
}

func TestFormulaBoundary(t *testing.T) {
	tile := &tilemap.Tile{TX: 2, TY: 1, Width: 16, Height: 16}
	f := &Formula{Range: Range{Output: AxisY, MinX: 4, MaxX: 12, MaxY: 8}, Function: Linear{A: 1}}
	if _, ok := f.Boundary(tile, 32+2, false); ok {
		t.Fatalf("input left of the range should miss")
	}
	if got, ok := f.Boundary(tile, 32+2, true); !ok || got != 16+4 {
		t.Fatalf("clamped input = %v %v, want 20", got, ok)
	}
	if got, _ := f.Boundary(tile, 32+10, false); got != 16+8 {
		t.Fatalf("output should clamp to max_y, got %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	base := func() Config { return testConfig(t) }
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown_formula", func(c *Config) { c.Groups["wall"] = []string{"spikes"} }, ErrUnknownFormula},
		{"unknown_group", func(c *Config) { c.Groups["lava"] = []string{"top"} }, ErrUnknownGroup},
		{"duplicate", func(c *Config) { c.Formulas = append(c.Formulas, &Formula{Name: "top", Function: Linear{}}) }, ErrDuplicateFormula},
		{"no_function", func(c *Config) { c.Formulas = append(c.Formulas, &Formula{Name: "hole"}) }, ErrNoFunction},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mc := newTestMap(t, "#")
			cfg := base()
			c.mutate(&cfg)
			if err := mc.Load(cfg); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
			if len(mc.Formulas(mc.Grid().Tile(0, 0))) != 4 {
				t.Fatalf("failed load changed the formulas")
			}
		})
	}

	if _, err := FormulaFromSpec(prefabs.FormulaSpec{Name: "f", Range: prefabs.RangeSpec{Output: "z"}}); !errors.Is(err, ErrInvalidAxis) {
		t.Fatalf("expected invalid axis, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	groups := tilemap.NewGroups()
	if err := groups.LoadFile("groups.yaml"); err != nil {
		t.Fatalf("load groups: %v", err)
	}
	grid := tilemap.NewGrid(16, 16, 2, 1)
	grid.SetTile(0, 0, 0, 2)
	grid.SetTile(1, 0, 0, 4)
	mc := NewMapCollision(grid, groups)
	if err := mc.LoadFile("collisions.yaml"); err != nil {
		t.Fatalf("load collisions: %v", err)
	}
	if mc.Source() != "collisions.yaml" {
		t.Fatalf("source = %q", mc.Source())
	}
	if n := len(mc.Formulas(grid.Tile(0, 0))); n != 4 {
		t.Fatalf("wall formulas = %d, want 4", n)
	}
	slope := mc.Formulas(grid.Tile(1, 0))
	if len(slope) != 1 {
		t.Fatalf("slope formulas = %v", slope)
	}
	if got, ok := slope[0].Boundary(grid.Tile(1, 0), 16+4, false); !ok || got != 12 {
		t.Fatalf("slope boundary = %v %v, want 12", got, ok)
	}
	if _, ok := mc.Formula("slope_down"); !ok {
		t.Fatalf("missing slope_down formula")
	}
}

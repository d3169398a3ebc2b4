package collision

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/tilemap/prefabs"
	"github.com/milk9111/tilemap/tilemap"
)

var (
	ErrUnknownFormula = errors.New("collision: unknown formula")
	ErrUnknownGroup   = errors.New("collision: unknown group")
)

// Config is a set of formulas and the formulas applied to each tile group.
type Config struct {
	Formulas []*Formula
	Groups   map[string][]string
}

func ConfigFromSpec(spec prefabs.CollisionsSpec) (Config, error) {
	cfg := Config{Groups: make(map[string][]string, len(spec.Groups))}
	for _, fs := range spec.Formulas {
		f, err := FormulaFromSpec(fs)
		if err != nil {
			return Config{}, err
		}
		cfg.Formulas = append(cfg.Formulas, f)
	}
	for _, gs := range spec.Groups {
		cfg.Groups[gs.Group] = append(cfg.Groups[gs.Group], gs.Formulas...)
	}
	return cfg, nil
}

// Result is a boundary crossed by a sensor.
type Result struct {
	Tile    *tilemap.Tile
	Formula *Formula
	Axis    Axis
	// Value is the absolute boundary coordinate on Axis.
	Value float64
}

// MapCollision resolves sensor moves against the collision formulas of the
// tiles of a grid.
type MapCollision struct {
	grid          *tilemap.Grid
	groups        *tilemap.Groups
	formulas      map[string]*Formula
	groupFormulas map[string][]*Formula
	source        string
}

func NewMapCollision(grid *tilemap.Grid, groups *tilemap.Groups) *MapCollision {
	return &MapCollision{
		grid:          grid,
		groups:        groups,
		formulas:      make(map[string]*Formula),
		groupFormulas: make(map[string][]*Formula),
	}
}

func (mc *MapCollision) Grid() *tilemap.Grid { return mc.grid }

// Source returns the resource name of the last successful LoadFile.
func (mc *MapCollision) Source() string { return mc.source }

// Load replaces the formulas. The configuration is validated first, so a
// failed load keeps the previous formulas.
func (mc *MapCollision) Load(cfg Config) error {
	formulas := make(map[string]*Formula, len(cfg.Formulas))
	for _, f := range cfg.Formulas {
		if f == nil || f.Name == "" {
			return ErrEmptyFormulaName
		}
		if _, ok := formulas[f.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateFormula, f.Name)
		}
		if f.Function == nil {
			return fmt.Errorf("%w: %q", ErrNoFunction, f.Name)
		}
		formulas[f.Name] = f
	}

	groupFormulas := make(map[string][]*Formula, len(cfg.Groups))
	for group, names := range cfg.Groups {
		if mc.groups != nil && !mc.groups.Has(group) {
			return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
		}
		for _, name := range names {
			f, ok := formulas[name]
			if !ok {
				return fmt.Errorf("%w: %q in group %q", ErrUnknownFormula, name, group)
			}
			groupFormulas[group] = append(groupFormulas[group], f)
		}
	}

	mc.formulas = formulas
	mc.groupFormulas = groupFormulas
	mc.source = ""
	return nil
}

// LoadFile loads a collisions YAML resource resolved by prefabs.Load.
func (mc *MapCollision) LoadFile(name string) error {
	spec, err := prefabs.LoadSpec[prefabs.CollisionsSpec](name)
	if err != nil {
		return err
	}
	cfg, err := ConfigFromSpec(spec)
	if err != nil {
		return fmt.Errorf("collision: load %s: %w", name, err)
	}
	if err := mc.Load(cfg); err != nil {
		return fmt.Errorf("collision: load %s: %w", name, err)
	}
	mc.source = name
	return nil
}

func (mc *MapCollision) Formula(name string) (*Formula, bool) {
	f, ok := mc.formulas[name]
	return f, ok
}

// FormulaNames returns every formula name, sorted.
func (mc *MapCollision) FormulaNames() []string {
	names := make([]string, 0, len(mc.formulas))
	for name := range mc.formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Formulas returns the formulas of the tile's current group.
func (mc *MapCollision) Formulas(tile *tilemap.Tile) []*Formula {
	if tile == nil || mc.groups == nil {
		return nil
	}
	return mc.groupFormulas[mc.groups.Group(tile)]
}

// HasFormulasIn reports whether any tile touched by bb, grown by one tile on
// every side, has formulas.
func (mc *MapCollision) HasFormulasIn(bb cp.BB) bool {
	tw, th := float64(mc.grid.TileWidth()), float64(mc.grid.TileHeight())
	if tw <= 0 || th <= 0 {
		return false
	}
	minX, maxX := int(math.Floor(bb.L/tw))-1, int(math.Floor(bb.R/tw))+1
	minY, maxY := int(math.Floor(bb.B/th))-1, int(math.Floor(bb.T/th))+1
	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			if len(mc.Formulas(mc.grid.Tile(tx, ty))) > 0 {
				return true
			}
		}
	}
	return false
}

// ComputeCollision moves the sensor of category from old to cur along the
// category axis and returns the first boundary crossed. Tiles are walked from
// the one before old, against the move, up to the one holding cur, in the
// column (or row) of cur. A boundary is crossed when the sensor was on or
// before it at old and is on or past it at cur; among several, the one
// reached first along the move wins, which lets a sensor step onto a rising
// slope.
func (mc *MapCollision) ComputeCollision(category Category, old, cur cp.Vector) (Result, bool) {
	axis := category.Axis
	from, to, input, oldInput := old.Y, cur.Y, cur.X, old.X
	size, cross := float64(mc.grid.TileHeight()), float64(mc.grid.TileWidth())
	if axis == AxisX {
		from, to, input, oldInput = old.X, cur.X, cur.Y, old.Y
		size, cross = cross, size
	}
	delta := to - from
	if !category.Direction.Allows(delta) || mc.groups == nil || size <= 0 || cross <= 0 {
		return Result{}, false
	}

	step := 1
	if delta < 0 {
		step = -1
	}
	line := int(math.Floor(input / cross))
	first := int(math.Floor(from/size)) - step
	last := int(math.Floor(to / size))

	var best Result
	found := false
	for i := first; ; i += step {
		tile := mc.tileOnAxis(axis, line, i)
		if tile != nil && category.Accepts(mc.groups.Group(tile)) {
			for _, f := range mc.Formulas(tile) {
				if f.Range.Output != axis || !f.Direction.Allows(delta) {
					continue
				}
				bNew, ok := f.Boundary(tile, input, false)
				if !ok {
					continue
				}
				bOld, _ := f.Boundary(tile, oldInput, true)
				crossed := from <= bOld && to >= bNew
				if delta < 0 {
					crossed = from >= bOld && to <= bNew
				}
				if !crossed {
					continue
				}
				if !found || (delta > 0 && bNew < best.Value) || (delta < 0 && bNew > best.Value) {
					best = Result{Tile: tile, Formula: f, Axis: axis, Value: bNew}
					found = true
				}
			}
		}
		if i == last {
			break
		}
	}
	return best, found
}

func (mc *MapCollision) tileOnAxis(axis Axis, line, i int) *tilemap.Tile {
	if axis == AxisX {
		return mc.grid.Tile(i, line)
	}
	return mc.grid.Tile(line, i)
}

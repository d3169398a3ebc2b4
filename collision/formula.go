package collision

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilemap/common"
	"github.com/milk9111/tilemap/prefabs"
	"github.com/milk9111/tilemap/tilemap"
)

var (
	ErrEmptyFormulaName = errors.New("collision: formula name is empty")
	ErrDuplicateFormula = errors.New("collision: duplicate formula")
	ErrNoFunction       = errors.New("collision: formula has no function")
	ErrEmptyRange       = errors.New("collision: range min is above max")
)

// Range bounds a formula in tile local pixels. The input coordinate (x for an
// Output of AxisY, y for AxisX) must lie inside its bounds, and the computed
// value is clamped to the bounds of the output axis.
type Range struct {
	Output Axis
	MinX   float64
	MaxX   float64
	MinY   float64
	MaxY   float64
}

func (r Range) inputBounds() (float64, float64) {
	if r.Output == AxisY {
		return r.MinX, r.MaxX
	}
	return r.MinY, r.MaxY
}

func (r Range) outputBounds() (float64, float64) {
	if r.Output == AxisY {
		return r.MinY, r.MaxY
	}
	return r.MinX, r.MaxX
}

func RangeFromSpec(spec prefabs.RangeSpec) (Range, error) {
	axis, err := ParseAxis(spec.Output)
	if err != nil {
		return Range{}, err
	}
	r := Range{Output: axis, MinX: spec.MinX, MaxX: spec.MaxX, MinY: spec.MinY, MaxY: spec.MaxY}
	if r.MinX > r.MaxX || r.MinY > r.MaxY {
		return Range{}, ErrEmptyRange
	}
	return r, nil
}

// Formula is a collision boundary inside a tile.
type Formula struct {
	Name      string
	Direction Direction
	Range     Range
	Function  Function
}

// Boundary returns the absolute coordinate of the boundary on the output axis
// at the absolute input coordinate. ok is false when the input is outside the
// range. With clampInput the input is clamped into the range instead.
func (f *Formula) Boundary(tile *tilemap.Tile, input float64, clampInput bool) (float64, bool) {
	origin, outOrigin := tile.X(), tile.Y()
	if f.Range.Output == AxisX {
		origin, outOrigin = tile.Y(), tile.X()
	}
	lo, hi := f.Range.inputBounds()
	local := input - origin
	if local < lo || local > hi {
		if !clampInput {
			return 0, false
		}
		local = common.Clamp(local, lo, hi)
	}
	minOut, maxOut := f.Range.outputBounds()
	return outOrigin + common.Clamp(f.Function.Compute(local), minOut, maxOut), true
}

func FormulaFromSpec(spec prefabs.FormulaSpec) (*Formula, error) {
	if spec.Name == "" {
		return nil, ErrEmptyFormulaName
	}
	dir, err := ParseDirection(spec.Direction)
	if err != nil {
		return nil, fmt.Errorf("collision: formula %s: %w", spec.Name, err)
	}
	r, err := RangeFromSpec(spec.Range)
	if err != nil {
		return nil, fmt.Errorf("collision: formula %s: %w", spec.Name, err)
	}
	fn, err := FunctionFromSpec(spec.Function)
	if err != nil {
		return nil, fmt.Errorf("collision: formula %s: %w", spec.Name, err)
	}
	return &Formula{Name: spec.Name, Direction: dir, Range: r, Function: fn}, nil
}

package collision

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAxis      = errors.New("collision: invalid axis")
	ErrInvalidDirection = errors.New("collision: invalid direction")
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "horizontal":
		return AxisX, nil
	case "y", "vertical":
		return AxisY, nil
	default:
		return AxisY, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
	}
}

// Direction restricts a boundary or a sensor to moves of one sign.
type Direction int

const (
	DirectionBoth     Direction = 0
	DirectionPositive Direction = 1
	DirectionNegative Direction = -1
)

func (d Direction) String() string {
	switch d {
	case DirectionPositive:
		return "positive"
	case DirectionNegative:
		return "negative"
	default:
		return "both"
	}
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return DirectionBoth, nil
	case "positive", "+":
		return DirectionPositive, nil
	case "negative", "-":
		return DirectionNegative, nil
	default:
		return DirectionBoth, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Allows reports whether a move of delta goes in direction d. A zero move
// goes nowhere.
func (d Direction) Allows(delta float64) bool {
	switch {
	case delta == 0:
		return false
	case d == DirectionPositive:
		return delta > 0
	case d == DirectionNegative:
		return delta < 0
	default:
		return true
	}
}

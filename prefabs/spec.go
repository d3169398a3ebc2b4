package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeSpec[T](filename, data)
}

// DecodeSpec unmarshals YAML data; name is only used in error messages.
func DecodeSpec[T any](name string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

// EncodeSpec marshals a spec back to YAML.
func EncodeSpec(spec any) ([]byte, error) {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal: %w", err)
	}
	return data, nil
}

type TileRefSpec struct {
	Sheet  int `yaml:"sheet"`
	Number int `yaml:"number"`
}

type GroupSpec struct {
	Name  string        `yaml:"name"`
	Type  string        `yaml:"type,omitempty"`
	Tiles []TileRefSpec `yaml:"tiles"`
}

type GroupsSpec struct {
	Groups []GroupSpec `yaml:"groups"`
}

type CategorySpec struct {
	Name   string   `yaml:"name"`
	Groups []string `yaml:"groups"`
}

type PathfindingSpec struct {
	Categories []CategorySpec `yaml:"categories"`
}

type RangeSpec struct {
	Output string  `yaml:"output"`
	MinX   float64 `yaml:"min_x"`
	MaxX   float64 `yaml:"max_x"`
	MinY   float64 `yaml:"min_y"`
	MaxY   float64 `yaml:"max_y"`
}

// FunctionSpec describes a collision function. Type is "linear" (A*x+B) or
// "script". A script function is either Expression, a tengo expression of x,
// or Script, a file under scripts/ that reads x and assigns y.
type FunctionSpec struct {
	Type       string  `yaml:"type"`
	A          float64 `yaml:"a,omitempty"`
	B          float64 `yaml:"b,omitempty"`
	Expression string  `yaml:"expression,omitempty"`
	Script     string  `yaml:"script,omitempty"`
}

// FormulaSpec is a collision boundary. Direction limits it to moves along
// the output axis in one direction: "positive", "negative" or empty for both.
type FormulaSpec struct {
	Name      string       `yaml:"name"`
	Direction string       `yaml:"direction,omitempty"`
	Range     RangeSpec    `yaml:"range"`
	Function  FunctionSpec `yaml:"function"`
}

type FormulaGroupSpec struct {
	Group    string   `yaml:"group"`
	Formulas []string `yaml:"formulas"`
}

type CollisionsSpec struct {
	Formulas []FormulaSpec      `yaml:"formulas"`
	Groups   []FormulaGroupSpec `yaml:"groups"`
}

type MinimapTileSpec struct {
	Sheet  int       `yaml:"sheet"`
	Number int       `yaml:"number"`
	Color  YAMLColor `yaml:"color"`
}

type MinimapSpec struct {
	Tiles []MinimapTileSpec `yaml:"tiles"`
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name and is
// always written back as hex.
type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value.Value))]; ok {
		c.NRGBA = color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}

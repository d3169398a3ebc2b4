package collision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/tilemap/prefabs"
)

var (
	ErrUnknownFunction = errors.New("collision: unknown function type")
	ErrEmptyScript     = errors.New("collision: script function has no source")
)

// Function maps a tile local input coordinate to a tile local boundary
// coordinate on the output axis.
type Function interface {
	Compute(input float64) float64
}

// Linear is A*x + B.
type Linear struct {
	A float64
	B float64
}

func (l Linear) Compute(input float64) float64 {
	return l.A*input + l.B
}

// Script runs a compiled tengo program with the global x set to the input and
// reads the global y back.
type Script struct {
	source   string
	compiled *tengo.Compiled
}

// NewScript compiles a program that assigns y from x, for example
// "y := 16 - x". The tengo standard library is importable.
func NewScript(src string) (*Script, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyScript
	}
	script := tengo.NewScript([]byte(src))
	if err := script.Add("x", 0.0); err != nil {
		return nil, fmt.Errorf("collision: add x: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("collision: compile script: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("collision: run script: %w", err)
	}
	if !compiled.IsDefined("y") {
		return nil, fmt.Errorf("collision: run script: y is never assigned")
	}
	return &Script{source: src, compiled: compiled}, nil
}

// NewExpression compiles a single expression of x.
func NewExpression(expr string) (*Script, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmptyScript
	}
	return NewScript(fmt.Sprintf("y := (%s)", expr))
}

func (s *Script) Source() string { return s.source }

// Compute returns 0 when the program fails at run time.
func (s *Script) Compute(input float64) float64 {
	if err := s.compiled.Set("x", input); err != nil {
		return 0
	}
	if err := s.compiled.Run(); err != nil {
		return 0
	}
	return s.compiled.Get("y").Float()
}

// FunctionFromSpec builds a function. Script files are resolved with
// prefabs.LoadScript.
func FunctionFromSpec(spec prefabs.FunctionSpec) (Function, error) {
	switch strings.ToLower(spec.Type) {
	case "", "linear":
		return Linear{A: spec.A, B: spec.B}, nil
	case "script":
		if spec.Script != "" {
			src, err := prefabs.LoadScript(spec.Script)
			if err != nil {
				return nil, fmt.Errorf("collision: load script %s: %w", spec.Script, err)
			}
			return NewScript(string(src))
		}
		return NewExpression(spec.Expression)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, spec.Type)
	}
}

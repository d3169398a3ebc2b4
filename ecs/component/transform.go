package component

// Transform is the bottom center of an entity in pixels. OldX and OldY hold
// the position at the start of the current tick.
type Transform struct {
	X        float64
	Y        float64
	OldX     float64
	OldY     float64
	Mirrored bool
}

var TransformComponent = NewComponent[Transform]()

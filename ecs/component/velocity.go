package component

// Velocity is in pixels per tick. Gravity is added to Y every tick, up to
// MaxFall when MaxFall is positive.
type Velocity struct {
	X       float64
	Y       float64
	Gravity float64
	MaxFall float64
}

var VelocityComponent = NewComponent[Velocity]()

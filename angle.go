package mandala

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Angle is an angle in radians, always within [0, 2π).
// The zero value is a valid angle of 0.
type Angle float64

// NewAngle wraps rad into [0, 2π).
func NewAngle(rad float64) Angle {
	a := math.Mod(rad, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		// -tiny + 2π rounds up to 2π
		a = 0
	}
	return Angle(a)
}

// Degrees creates an Angle from degrees.
func Degrees(deg float64) Angle {
	return NewAngle(deg * math.Pi / 180)
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 {
	return float64(a)
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return float64(a) * 180 / math.Pi
}

// Add returns the wrapped sum of a and rad.
func (a Angle) Add(rad float64) Angle {
	return NewAngle(float64(a) + rad)
}

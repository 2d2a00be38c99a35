package tree

import "math"

// Vec is a point or direction in screen space. Y grows downward.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Len returns the magnitude of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Angle returns the direction of v in radians, measured from the +X axis.
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Polar builds a vector from an angle and a magnitude.
func Polar(angle, magnitude float64) Vec {
	return Vec{X: magnitude * math.Cos(angle), Y: magnitude * math.Sin(angle)}
}

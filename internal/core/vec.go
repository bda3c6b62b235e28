package core

import (
	"math"
	"math/rand"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-6

// Vec2 is a 2D float vector. Screen convention: +X right, +Y down.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle creates a vector from an angle (radians, +Y down) and magnitude.
func FromAngle(angle, magnitude float64) Vec2 {
	return Vec2{X: math.Cos(angle) * magnitude, Y: math.Sin(angle) * magnitude}
}

// RandomUnit returns a uniformly distributed unit vector.
func RandomUnit(rng *rand.Rand) Vec2 {
	return FromAngle(rng.Float64()*2*math.Pi, 1)
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies the vector by a scalar.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the magnitude.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSq returns the squared magnitude.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// IsZero reports whether the vector is shorter than Epsilon.
func (v Vec2) IsZero() bool {
	return v.LenSq() < Epsilon*Epsilon
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// ScaleTo returns a vector with the same direction and the given length.
// The zero vector stays zero.
func (v Vec2) ScaleTo(length float64) Vec2 {
	return v.Normalize().Scale(length)
}

// ClampLen limits the magnitude to max.
func (v Vec2) ClampLen(max float64) Vec2 {
	if v.LenSq() > max*max {
		return v.ScaleTo(max)
	}
	return v
}

// Rotate rotates the vector by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Angle returns atan2(y, x).
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Facing returns the on-screen heading of a velocity: positive angles turn
// counter-clockwise on screen, so the Y axis is flipped.
func (v Vec2) Facing() float64 {
	return math.Atan2(-v.Y, v.X)
}

// FacingDir converts a Facing angle back to a screen-space unit vector.
func FacingDir(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: -math.Sin(angle)}
}

// Near reports whether two vectors are within tol of each other on both axes.
func (v Vec2) Near(o Vec2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

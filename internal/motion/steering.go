// Package motion implements the enemy movement models: random drift with
// wall bounce, the figure-8 path, gravity and magnet steering, and the
// circular orbit with behavior switching.
//
// Every model advances by an elapsed time in milliseconds and leaves its
// body's position and velocity updated. Degenerate geometry (zero-length
// vectors, zero time windows) is handled by guard clauses; nothing here
// can produce NaN.
package motion

import (
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/physics"
)

// MinRepulsion is the floor for the short-range magnet repulsion (px/s²).
const MinRepulsion = 160.0

// Env is the read-only context a model sees for one tick.
// A nil Target disables target steering; a nil World disables wall handling.
type Env struct {
	Target *core.Vec2
	World  *core.Rect
}

// Mover is implemented by every enemy movement model.
type Mover interface {
	// Update advances the model by dtMs milliseconds. It reports whether a
	// wall bounce started during this tick.
	Update(dtMs float64, env Env) bool
	Body() *physics.Body
	Facing() float64
}

// GravityAccel returns a constant-magnitude acceleration from pos toward center.
// It is zero when pos is exactly at center.
func GravityAccel(pos, center core.Vec2, strength float64) core.Vec2 {
	return center.Sub(pos).Normalize().Scale(strength)
}

// MagnetAccel returns the combined attraction and short-range repulsion that
// a target at distance d exerts.
//
// Attraction applies for d < radius with magnitude strength*(1 - d/radius).
// Repulsion applies for d < minDist with magnitude max(2*strength, MinRepulsion)
// away from the target. Both may apply at once.
func MagnetAccel(pos, target core.Vec2, radius, strength, minDist float64) core.Vec2 {
	to := target.Sub(pos)
	d := to.Len()
	if d < core.Epsilon {
		return core.Vec2{}
	}
	dir := to.Scale(1 / d)

	var acc core.Vec2
	if d < radius {
		acc = acc.Add(dir.Scale(strength * math.Max(0, 1-d/radius)))
	}
	if d < minDist {
		acc = acc.Sub(dir.Scale(math.Max(strength*2, MinRepulsion)))
	}
	return acc
}

// Figure8At evaluates the 2:1 Lissajous path at pattern time t.
// Position is a pure function of t, so the loop closes exactly every period.
func Figure8At(center core.Vec2, a, b, period, t float64) (pos, vel core.Vec2) {
	period = math.Max(0.001, period)
	omega := 2 * math.Pi / period

	pos = core.Vec2{
		X: center.X + a*math.Sin(omega*t),
		Y: center.Y + b*math.Sin(2*omega*t),
	}
	vel = core.Vec2{
		X: a * omega * math.Cos(omega*t),
		Y: 2 * b * omega * math.Cos(2*omega*t),
	}
	return pos, vel
}

// Figure8PeakSpeed returns an upper bound on the path's speed.
func Figure8PeakSpeed(a, b, period float64) float64 {
	omega := 2 * math.Pi / math.Max(0.001, period)
	return omega * math.Hypot(a, 2*b)
}

// BounceVelocity is the damped-cosine rubber band that follows a wall impact:
// initial * exp(-damping*elapsed/duration) * cos(2π*(oscillations/duration)*elapsed).
// It returns zero once elapsed reaches the window's end.
func BounceVelocity(initial core.Vec2, elapsed, duration, oscillations, damping float64) core.Vec2 {
	T := math.Max(core.Epsilon, duration)
	if elapsed >= T {
		return core.Vec2{}
	}
	omega := 2 * math.Pi * (oscillations / T)
	envelope := math.Exp(-(damping * elapsed) / T)
	return initial.Scale(envelope * math.Cos(omega*elapsed))
}

// Reflect is the physically based wall response: the normal component is
// reversed with restitution e and the tangential one damped by friction mu.
func Reflect(v, normal core.Vec2, e, mu float64) core.Vec2 {
	vn := normal.Scale(v.Dot(normal))
	vt := v.Sub(vn)
	return vn.Scale(-(1 + e)).Add(vt.Scale(math.Max(0, 1-mu)))
}

// turnToward rotates current toward target by at most maxStep radians.
// A non-positive maxStep snaps straight to target.
func turnToward(current, target, maxStep float64) float64 {
	if maxStep <= 0 {
		return target
	}
	diff := math.Remainder(target-current, 2*math.Pi)
	if math.Abs(diff) <= maxStep {
		return target
	}
	if diff > 0 {
		return current + maxStep
	}
	return current - maxStep
}

// Package physics provides the broad-phase spatial index and the pairwise
// impact response used by the arena each tick.
package physics

import (
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// DefaultMass is the mass assigned to bodies that do not set one.
const DefaultMass = 1.0

// Body is the physical descriptor shared by every simulated entity.
// Optional fields are resolved once in NewBody, never on access.
type Body struct {
	Pos    core.Vec2 // Center in world space (px)
	Vel    core.Vec2 // px/s
	W, H   float64   // Bounding box size (px)
	Mass   float64   // Non-positive mass is immovable for impacts
	Radius float64   // Collision radius (px)
}

// BodyOption customizes a Body at construction.
type BodyOption func(*Body)

// WithMass sets an explicit mass.
func WithMass(m float64) BodyOption {
	return func(b *Body) { b.Mass = m }
}

// WithRadius sets an explicit collision radius.
func WithRadius(r float64) BodyOption {
	return func(b *Body) { b.Radius = r }
}

// WithVelocity sets the initial velocity.
func WithVelocity(v core.Vec2) BodyOption {
	return func(b *Body) { b.Vel = v }
}

// NewBody creates a body centered at pos with a w×h bounding box.
// Mass defaults to DefaultMass; radius defaults to half the larger box side.
func NewBody(pos core.Vec2, w, h float64, opts ...BodyOption) Body {
	b := Body{
		Pos:    pos,
		W:      w,
		H:      h,
		Mass:   DefaultMass,
		Radius: math.Max(w, h) * 0.5,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Bounds returns the axis-aligned bounding box around the body's center.
func (b *Body) Bounds() core.Rect {
	return core.RectAround(b.Pos, b.W, b.H)
}

// SetBounds moves the body so that its bounding box matches r's position.
func (b *Body) SetBounds(r core.Rect) {
	b.Pos = r.Center()
}

// Overlap returns how far two bodies' collision circles interpenetrate.
// Non-positive values mean no contact.
func Overlap(a, b *Body) float64 {
	return a.Radius + b.Radius - a.Pos.Dist(b.Pos)
}

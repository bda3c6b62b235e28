// Package core holds the value types every other package shares: vectors,
// rectangles, the screen buffer, input frames and step results. It imports
// nothing outside the standard library.
package core

import "cmp"

// Rect is an axis-aligned box in world pixels, anchored at its top-left.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect returns the rectangle at (x, y) of size w by h.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAround creates a rectangle of the given size centered on c.
func RectAround(c Vec2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether r and o share area. Touching edges do not.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether p lies in r, left and top edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// ClampInside moves r so that it lies within outer.
// If r is larger than outer on an axis it is aligned to outer's top-left.
func (r Rect) ClampInside(outer Rect) Rect {
	if r.W >= outer.W {
		r.X = outer.X
	} else {
		r.X = Clamp(r.X, outer.X, outer.Right()-r.W)
	}
	if r.H >= outer.H {
		r.Y = outer.Y
	} else {
		r.Y = Clamp(r.Y, outer.Y, outer.Bottom()-r.H)
	}
	return r
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

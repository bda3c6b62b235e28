package physics

import (
	"math/rand"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// DefaultElasticity is the impact elasticity used by the arena.
const DefaultElasticity = 0.8

// DefaultSeparateFrac is the share of overlap corrected per Separate call.
const DefaultSeparateFrac = 0.66

// contactNormal returns the unit vector from a to b. Coincident centers get a
// random axis so the response never divides by zero.
func contactNormal(from, to core.Vec2, rng *rand.Rand) core.Vec2 {
	d := to.Sub(from)
	dist := d.Len()
	if dist < core.Epsilon {
		return core.RandomUnit(rng)
	}
	return d.Scale(1 / dist)
}

// ApplyImpact exchanges momentum between a and b along their contact normal.
// Only the normal component changes; tangential velocity is untouched. A body
// with non-positive mass does not receive a velocity change.
func ApplyImpact(a, b *Body, elasticity float64, rng *rand.Rand) {
	n := contactNormal(a.Pos, b.Pos, rng)

	rel := (n.Dot(a.Vel)*a.Mass - n.Dot(b.Vel)*b.Mass) * elasticity

	if a.Mass > 0 {
		a.Vel = a.Vel.Sub(n.Scale(rel / a.Mass))
	}
	if b.Mass > 0 {
		b.Vel = b.Vel.Add(n.Scale(rel / b.Mass))
	}
}

// inverseMass is 1/m, or zero for an immovable body.
func inverseMass(m float64) float64 {
	if m <= 0 {
		return 0
	}
	return 1 / m
}

// Separate pushes overlapping bodies apart along the center axis, correcting
// frac of the overlap. The heavier body moves less and an immovable one not
// at all. It reports true, leaving both bodies untouched, when they do not
// overlap or neither can move.
func Separate(a, b *Body, frac float64, rng *rand.Rand) bool {
	axis := a.Pos.Sub(b.Pos)
	dist := axis.Len()
	overlap := a.Radius + b.Radius - dist
	invA, invB := inverseMass(a.Mass), inverseMass(b.Mass)
	if overlap <= 0 || invA+invB == 0 {
		return true
	}

	if dist < core.Epsilon {
		axis = core.RandomUnit(rng)
	} else {
		axis = axis.Scale(1 / dist)
	}

	ov := overlap * frac / (invA + invB)
	a.Pos = a.Pos.Add(axis.Scale(ov * invA))
	b.Pos = b.Pos.Sub(axis.Scale(ov * invB))
	return false
}

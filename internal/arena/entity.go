package arena

import (
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/combat"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/motion"
	"github.com/vovakirdan/rocket-arcade/internal/physics"
)

// EnemyKind selects the motion model an enemy is spawned with.
type EnemyKind int

const (
	KindDrifter EnemyKind = iota // Straight, random path
	KindWeaver                   // Straight, figure-8 path
	KindOrbiter                  // Orbit
)

// String returns the kind's display name.
func (k EnemyKind) String() string {
	switch k {
	case KindDrifter:
		return "drifter"
	case KindWeaver:
		return "weaver"
	case KindOrbiter:
		return "orbiter"
	default:
		return "unknown"
	}
}

// enemy wraps a motion model with combat state. Exactly one of straight and
// orbit is set; mover points at whichever it is.
type enemy struct {
	id       int
	kind     EnemyKind
	mover    motion.Mover
	straight *motion.Straight
	orbit    *motion.Orbit
	hp       *combat.Tracker
	score    int
	fireMs   float64 // until next shot
	removed  bool    // dropped at the start of the next tick
}

func (e *enemy) Bounds() core.Rect   { return e.mover.Body().Bounds() }
func (e *enemy) Body() *physics.Body { return e.mover.Body() }
func (e *enemy) Facing() float64     { return e.mover.Facing() }

// absorb applies a collision velocity change. Straight enemies keep the new
// velocity, capped at their top speed; orbiters take it as a decaying push.
func (e *enemy) absorb(delta core.Vec2, scale float64) {
	if e.straight != nil {
		e.straight.ClampSpeed()
		return
	}
	if e.orbit == nil || delta.IsZero() {
		return
	}
	e.orbit.ApplyPush(delta.Scale(scale), 0)
}

// player is the ship under keyboard or autopilot control.
type player struct {
	body     physics.Body
	facing   float64
	hp       *combat.Tracker
	cooldown float64 // ms until the laser can fire again
}

func (p *player) Body() *physics.Body { return &p.body }
func (p *player) Facing() float64     { return p.facing }

// barrel is one of the ship's guns, offset sideways from its center.
type barrel struct {
	ship   *player
	offset float64
}

func (b barrel) Facing() float64 { return b.ship.facing }

func (b barrel) Body() *physics.Body {
	body := b.ship.body
	side := core.FacingDir(b.ship.facing).Rotate(math.Pi / 2)
	body.Pos = body.Pos.Add(side.Scale(b.offset))
	return &body
}

// barrels returns the ship's guns. Twin guns sit a quarter of the ship's
// width either side of its center.
func (p *player) barrels(count int) []barrel {
	if count < 2 {
		return []barrel{{ship: p}}
	}
	off := p.body.W / 4
	return []barrel{{ship: p, offset: -off}, {ship: p, offset: off}}
}

package motion

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/physics"
)

// OrbitConfig holds the tunables of an orbiting enemy.
type OrbitConfig struct {
	Width, Height float64
	Radius        float64
	AngularSpeed  float64 // rad/s
	PushDuration  float64 // seconds an impact offset takes to fade
	TurnRate      float64
}

// DefaultOrbitConfig returns the stock circling enemy.
func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		Width:        40,
		Height:       40,
		Radius:       160,
		AngularSpeed: 2.0,
		PushDuration: 0.5,
	}
}

// Orbit circles a fixed center. Every few seconds it switches behavior:
// pause, reverse, dash, slow, or normal speed. An impact adds a decaying
// offset on top of the circular position.
type Orbit struct {
	body   physics.Body
	cfg    OrbitConfig
	rng    *rand.Rand
	center core.Vec2
	facing float64

	angle         float64
	behavior      Behavior
	speedMult     float64
	behaviorTimer float64
	behaviorDur   float64

	pushing     bool
	pushInitial core.Vec2
	pushElapsed float64
	pushDur     float64
}

// NewOrbit spawns an orbiting enemy around center at a random angle.
func NewOrbit(center core.Vec2, cfg OrbitConfig, rng *rand.Rand) *Orbit {
	o := &Orbit{
		cfg:       cfg,
		rng:       rng,
		center:    center,
		angle:     rng.Float64() * 2 * math.Pi,
		behavior:  BehaviorNormal,
		speedMult: 1,
	}
	o.behaviorDur = uniform(rng, firstDwellMin, firstDwellMax)
	o.body = physics.NewBody(o.ringPoint(), cfg.Width, cfg.Height)
	return o
}

// Body returns the enemy's physical body.
func (o *Orbit) Body() *physics.Body { return &o.body }

// Facing returns the displayed heading.
func (o *Orbit) Facing() float64 { return o.facing }

// Center returns the orbit center.
func (o *Orbit) Center() core.Vec2 { return o.center }

// Angle returns the current orbit angle. It is folded into [0, 2π) whenever
// it leaves (-2π, 2π).
func (o *Orbit) Angle() float64 { return o.angle }

// Behavior returns the active behavior and its speed multiplier.
func (o *Orbit) Behavior() (Behavior, float64) { return o.behavior, o.speedMult }

// Pushing reports whether an impact offset is still fading.
func (o *Orbit) Pushing() bool { return o.pushing }

// ApplyPush starts a decaying offset. The offset added per tick is
// initial*(1 - elapsed/duration)*dt until duration has passed.
func (o *Orbit) ApplyPush(initial core.Vec2, duration float64) {
	if duration <= 0 {
		duration = o.cfg.PushDuration
	}
	o.pushing = true
	o.pushInitial = initial
	o.pushElapsed = 0
	o.pushDur = math.Max(0.001, duration)
}

// Update advances the orbit by dtMs milliseconds. Orbits never bounce.
func (o *Orbit) Update(dtMs float64, _ Env) bool {
	dt := dtMs / 1000

	o.behaviorTimer += dt
	if o.behaviorTimer >= o.behaviorDur {
		o.behaviorTimer = 0
		o.behaviorDur = uniform(o.rng, dwellMin, dwellMax)
		o.behavior, o.speedMult = pickBehavior(o.rng)
	}

	omega := o.cfg.AngularSpeed * o.speedMult
	o.angle += omega * dt
	if math.Abs(o.angle) > 2*math.Pi {
		o.angle = wrapAngle(o.angle)
	}

	pos := o.ringPoint()
	if o.pushing {
		f := 1 - o.pushElapsed/o.pushDur
		pos = pos.Add(o.pushInitial.Scale(f * dt))
		o.pushElapsed += dt
		if o.pushElapsed >= o.pushDur {
			o.pushing = false
		}
	}
	o.body.Pos = pos

	o.body.Vel = core.Vec2{
		X: -math.Sin(o.angle),
		Y: math.Cos(o.angle),
	}.Scale(omega * o.cfg.Radius)

	if !o.body.Vel.IsZero() {
		o.facing = turnToward(o.facing, o.body.Vel.Facing(), o.cfg.TurnRate*dt)
	}
	return false
}

func (o *Orbit) ringPoint() core.Vec2 {
	return core.Vec2{
		X: o.center.X + o.cfg.Radius*math.Cos(o.angle),
		Y: o.center.Y + o.cfg.Radius*math.Sin(o.angle),
	}
}

// wrapAngle folds a into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

package motion

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/physics"
)

// PathType selects how a Straight enemy moves.
type PathType string

const (
	PathRandom  PathType = "random"
	PathFigure8 PathType = "figure8"
)

// Pattern describes the figure-8 path (pixels, seconds).
type Pattern struct {
	A, B     float64
	Period   float64
	Phase    float64
	HasPhase bool // false draws a random phase in [0, Period)
}

// Magnet tunes steering toward a live target.
type Magnet struct {
	Enabled     bool
	Radius      float64
	Strength    float64
	MinDistance float64
}

// Gravity tunes a constant pull toward a fixed point.
type Gravity struct {
	Enabled  bool
	Center   core.Vec2
	Strength float64
}

// Bounce tunes the wall response.
type Bounce struct {
	Simple       bool    // damped rubber band; false uses Reflect
	Duration     float64 // seconds
	Strength     float64
	Oscillations float64
	Damping      float64
	Restitution  float64
	Friction     float64
}

// StraightConfig holds every tunable of a Straight enemy.
type StraightConfig struct {
	Width, Height   float64
	Speed           float64
	TurboMultiplier float64
	TurnRate        float64 // rad/s for displayed facing; 0 snaps
	RandomMotion    bool
	NudgeMinMs      int
	NudgeMaxMs      int
	Path            PathType
	Pattern         Pattern
	Magnet          Magnet
	Gravity         Gravity
	Bounce          Bounce
}

// DefaultStraightConfig returns the stock drifting enemy.
func DefaultStraightConfig() StraightConfig {
	return StraightConfig{
		Width:           48,
		Height:          48,
		Speed:           220,
		TurboMultiplier: 1.5,
		RandomMotion:    true,
		NudgeMinMs:      400,
		NudgeMaxMs:      1200,
		Path:            PathRandom,
		Pattern:         Pattern{A: 140, B: 80, Period: 4},
		Magnet:          Magnet{Enabled: true, Radius: 1000, Strength: 400, MinDistance: 48},
		Bounce: Bounce{
			Simple:       true,
			Duration:     2.0,
			Strength:     1.8,
			Oscillations: 2.0,
			Damping:      2.2,
			Restitution:  0.45,
			Friction:     0.28,
		},
	}
}

// Straight is the drifting enemy. It either integrates velocity (random
// drift with steering and wall bounce) or follows the figure-8 path as a
// pure function of pattern time. The two are kept separate on purpose:
// the path never accumulates integration error.
type Straight struct {
	body     physics.Body
	cfg      StraightConfig
	rng      *rand.Rand
	MaxSpeed float64
	Turbo    bool

	facing float64

	changeTimer    float64
	changeInterval float64

	bouncing      bool
	bounceTimer   float64
	bounceInitial core.Vec2
	impulseTick   bool // a rubber-band bounce started this tick

	patternTime float64
	center      core.Vec2
	centerSet   bool
}

// NewStraight spawns a Straight enemy at pos heading in a random direction.
func NewStraight(pos core.Vec2, cfg StraightConfig, rng *rand.Rand) *Straight {
	angle := rng.Float64() * 2 * math.Pi
	vel := core.FromAngle(angle, cfg.Speed)

	s := &Straight{
		body:     physics.NewBody(pos, cfg.Width, cfg.Height, physics.WithVelocity(vel)),
		cfg:      cfg,
		rng:      rng,
		MaxSpeed: math.Max(200, cfg.Speed*2),
		facing:   vel.Facing(),
	}
	s.changeInterval = s.nextInterval()

	if cfg.Pattern.HasPhase {
		s.patternTime = cfg.Pattern.Phase
	} else {
		s.patternTime = rng.Float64() * cfg.Pattern.Period
	}
	if cfg.Path == PathFigure8 {
		s.MaxSpeed = math.Max(s.MaxSpeed, Figure8PeakSpeed(cfg.Pattern.A, cfg.Pattern.B, cfg.Pattern.Period))
	}
	return s
}

// Body returns the enemy's physical body.
func (s *Straight) Body() *physics.Body { return &s.body }

// Facing returns the displayed heading (radians, counter-clockwise on screen).
func (s *Straight) Facing() float64 { return s.facing }

// Config returns the enemy's tuning.
func (s *Straight) Config() StraightConfig { return s.cfg }

// Bouncing reports whether the rubber-band window is active.
func (s *Straight) Bouncing() bool { return s.bouncing }

// PathCenter returns the figure-8 center and whether it has been fixed yet.
func (s *Straight) PathCenter() (core.Vec2, bool) { return s.center, s.centerSet }

// Update advances the enemy by dtMs milliseconds.
func (s *Straight) Update(dtMs float64, env Env) bool {
	dt := dtMs / 1000
	s.impulseTick = false

	if s.bouncing {
		s.stepBounce(dt)
	}

	if s.cfg.Path == PathFigure8 {
		s.stepFigure8(dt, env.World)
		s.updateFacing(dt)
		return false
	}

	b := &s.body
	if s.cfg.Gravity.Enabled {
		b.Vel = b.Vel.Add(GravityAccel(b.Pos, s.cfg.Gravity.Center, s.cfg.Gravity.Strength).Scale(dt))
	}
	if s.cfg.Magnet.Enabled && env.Target != nil {
		m := s.cfg.Magnet
		b.Vel = b.Vel.Add(MagnetAccel(b.Pos, *env.Target, m.Radius, m.Strength, m.MinDistance).Scale(dt))
	}
	b.Vel = b.Vel.ClampLen(s.MaxSpeed)

	mult := 1.0
	if s.Turbo {
		mult = s.cfg.TurboMultiplier
	}
	move := b.Vel.Scale(mult).ClampLen(s.MaxSpeed)
	b.Pos = b.Pos.Add(move.Scale(dt))

	bounced := false
	if env.World != nil {
		bounced = s.collideWalls(*env.World)
	}

	s.updateFacing(dt)

	if s.cfg.RandomMotion {
		s.changeTimer += dtMs
		if s.changeTimer >= s.changeInterval {
			s.changeTimer -= s.changeInterval
			s.nudge()
			s.changeInterval = s.nextInterval()
		}
	}

	s.impulseTick = bounced
	s.ClampSpeed()
	return bounced
}

// ClampSpeed limits the velocity to MaxSpeed. The bounce impulse may exceed
// it for the tick it is applied, so that tick is left alone.
func (s *Straight) ClampSpeed() {
	if !s.impulseTick {
		s.body.Vel = s.body.Vel.ClampLen(s.MaxSpeed)
	}
}

func (s *Straight) stepBounce(dt float64) {
	s.bounceTimer -= dt
	elapsed := s.cfg.Bounce.Duration - math.Max(0, s.bounceTimer)
	s.body.Vel = BounceVelocity(s.bounceInitial, elapsed, s.cfg.Bounce.Duration,
		s.cfg.Bounce.Oscillations, s.cfg.Bounce.Damping)

	if s.bounceTimer <= 0 {
		s.bouncing = false
		s.bounceTimer = 0
		s.body.Vel = core.Vec2{}
	}
}

func (s *Straight) stepFigure8(dt float64, world *core.Rect) {
	p := s.cfg.Pattern
	if !s.centerSet {
		s.center = s.body.Pos
		if world != nil {
			mx, my := p.A+8, p.B+8
			s.center = core.Vec2{
				X: math.Max(world.X+mx, math.Min(s.body.Pos.X, world.Right()-mx)),
				Y: math.Max(world.Y+my, math.Min(s.body.Pos.Y, world.Bottom()-my)),
			}
		}
		s.centerSet = true
	}

	s.patternTime += dt
	s.body.Pos, s.body.Vel = Figure8At(s.center, p.A, p.B, p.Period, s.patternTime)
}

// wall sides in tie-break order
const (
	sideLeft = iota
	sideRight
	sideTop
	sideBottom
)

var sideNormals = [4]core.Vec2{
	sideLeft:   {X: 1, Y: 0},
	sideRight:  {X: -1, Y: 0},
	sideTop:    {X: 0, Y: 1},
	sideBottom: {X: 0, Y: -1},
}

// collideWalls pushes the enemy out of any world edge it touches and starts
// the bounce response. It reports whether a bounce started.
func (s *Straight) collideWalls(world core.Rect) bool {
	b := &s.body
	r := b.Bounds()

	touching := [4]bool{
		sideLeft:   r.X <= world.X,
		sideRight:  r.Right() >= world.Right(),
		sideTop:    r.Y <= world.Y,
		sideBottom: r.Bottom() >= world.Bottom(),
	}
	if !touching[sideLeft] && !touching[sideRight] && !touching[sideTop] && !touching[sideBottom] {
		return false
	}

	pens := [4]float64{
		sideLeft:   math.Max(0, world.X-r.X),
		sideRight:  math.Max(0, r.Right()-world.Right()),
		sideTop:    math.Max(0, world.Y-r.Y),
		sideBottom: math.Max(0, r.Bottom()-world.Bottom()),
	}
	side := sideLeft
	for i := sideRight; i <= sideBottom; i++ {
		if pens[i] > pens[side] {
			side = i
		}
	}
	pen := pens[side]

	var normal core.Vec2
	var sep float64
	if pen <= 0 {
		for i, hit := range touching {
			if hit {
				normal = normal.Add(sideNormals[i])
			}
		}
		if normal.IsZero() {
			normal = core.V(1, 0)
		}
		normal = normal.Normalize()
		sep = 8
	} else {
		normal = sideNormals[side]
		sep = pen + 1
	}

	extra := core.Clamp(pen*0.5, 4, 32)
	b.Pos = b.Pos.Add(normal.Scale(sep + extra))

	if s.cfg.Bounce.Simple {
		impulse := math.Max(math.Abs(b.Vel.Dot(normal))*s.cfg.Bounce.Strength,
			math.Max(s.cfg.Speed*0.6, 120))
		s.bouncing = true
		s.bounceTimer = s.cfg.Bounce.Duration
		s.bounceInitial = normal.Scale(impulse)
		b.Vel = s.bounceInitial
	} else {
		v := Reflect(b.Vel, normal, s.cfg.Bounce.Restitution, s.cfg.Bounce.Friction)
		if v.LenSq() < 1 {
			v = normal.Scale(s.cfg.Speed * 0.6)
		}
		b.Vel = v
	}

	b.SetBounds(b.Bounds().ClampInside(world))
	return s.cfg.Bounce.Simple
}

func (s *Straight) nudge() {
	v := s.body.Vel
	angle := v.Angle() + (s.rng.Float64()*2-1)*math.Pi/12
	speed := v.Len()
	if speed == 0 {
		speed = s.cfg.Speed
	}
	speed *= 0.9 + s.rng.Float64()*0.2
	s.body.Vel = core.FromAngle(angle, speed)
}

func (s *Straight) nextInterval() float64 {
	lo, hi := s.cfg.NudgeMinMs, s.cfg.NudgeMaxMs
	if hi < lo {
		hi = lo
	}
	return float64(lo + s.rng.Intn(hi-lo+1))
}

func (s *Straight) updateFacing(dt float64) {
	v := s.body.Vel
	if math.Abs(v.X) <= 0.001 && math.Abs(v.Y) <= 0.001 {
		return
	}
	s.facing = turnToward(s.facing, v.Facing(), s.cfg.TurnRate*dt)
}

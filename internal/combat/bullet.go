package combat

import (
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/physics"
)

const (
	AnimStepMs         = 80
	MaxExplodeFrames   = 6
	DefaultBulletSpeed = 420
	DefaultHomingTurn  = math.Pi // rad/s
	muzzleGap          = 6
	bulletSize         = 8
)

// BulletState is the projectile lifecycle phase.
type BulletState int

const (
	StateStart BulletState = iota
	StateFlight
	StateExplode
	StateIdle
)

func (s BulletState) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateFlight:
		return "flight"
	case StateExplode:
		return "explode"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Frames are the glyph sequences for each animated state. They are loaded
// once and shared read-only by every bullet of a kind.
type Frames struct {
	Start   []rune
	Flight  []rune
	Explode []rune
}

// Launcher is anything a bullet can be fired from.
type Launcher interface {
	Body() *physics.Body
	Facing() float64
}

// TargetFunc looks up the current position of a homing target. It returns
// false once the target is gone.
type TargetFunc func() (core.Vec2, bool)

// Bullet is a projectile with a start, flight and explode animation.
type Bullet struct {
	body     physics.Body
	Speed    float64
	TurnRate float64 // rad/s while homing

	frames    Frames
	state     BulletState
	frame     int
	animTimer float64
	dead      bool

	parent   Launcher
	homing   TargetFunc
	homingMs float64
}

// NewBullet creates a bullet at pos. It panics when frames has no glyphs at
// all: that is a configuration defect, not a runtime condition.
func NewBullet(pos, vel core.Vec2, frames Frames, speed float64) *Bullet {
	if len(frames.Start) == 0 && len(frames.Flight) == 0 && len(frames.Explode) == 0 {
		panic("combat: bullet created without animation frames")
	}
	if speed <= 0 {
		speed = DefaultBulletSpeed
	}

	b := &Bullet{
		body:     physics.NewBody(pos, bulletSize, bulletSize, physics.WithVelocity(vel)),
		Speed:    speed,
		TurnRate: DefaultHomingTurn,
		frames:   frames,
	}
	switch {
	case len(frames.Start) > 0:
		b.state = StateStart
	case len(frames.Flight) > 0:
		b.state = StateFlight
	default:
		b.state = StateIdle
	}
	return b
}

// FromLauncher fires a bullet along the launcher's facing. While the start
// animation plays the bullet stays attached to the launcher's muzzle.
func FromLauncher(l Launcher, frames Frames, speed float64) *Bullet {
	if speed <= 0 {
		speed = DefaultBulletSpeed
	}
	dir := core.FacingDir(l.Facing())
	b := NewBullet(MuzzlePoint(l), dir.Scale(speed), frames, speed)
	b.parent = l
	return b
}

// MuzzlePoint returns the spawn point just outside l's bounding box along its facing.
func MuzzlePoint(l Launcher) core.Vec2 {
	body := l.Body()
	reach := math.Max(body.W, body.H)/2 + muzzleGap
	return body.Pos.Add(core.FacingDir(l.Facing()).Scale(reach))
}

// Body returns the projectile's body.
func (b *Bullet) Body() *physics.Body { return &b.body }

// State returns the lifecycle phase.
func (b *Bullet) State() BulletState { return b.state }

// Dead reports whether the bullet should be removed.
func (b *Bullet) Dead() bool { return b.dead }

// Kill flags the bullet for removal.
func (b *Bullet) Kill() { b.dead = true }

// Homing reports whether the bullet is still steering.
func (b *Bullet) Homing() bool { return b.homing != nil && b.homingMs > 0 }

// SetHoming makes the bullet steer toward target for durationMs. When the
// time runs out the bullet explodes.
func (b *Bullet) SetHoming(target TargetFunc, durationMs float64) {
	b.homing = target
	b.homingMs = durationMs
}

// Glyph returns the rune for the current animation frame.
func (b *Bullet) Glyph() rune {
	var frames []rune
	switch b.state {
	case StateStart:
		frames = b.frames.Start
	case StateFlight:
		frames = b.frames.Flight
	case StateExplode:
		frames = b.frames.Explode
	}
	if len(frames) == 0 {
		return '·'
	}
	return frames[min(b.frame, len(frames)-1)]
}

// Update advances the bullet by dtMs. A nil world disables the out-of-bounds check.
func (b *Bullet) Update(dtMs float64, world *core.Rect) {
	if b.dead {
		return
	}

	switch b.state {
	case StateStart:
		if b.parent != nil {
			b.body.Pos = MuzzlePoint(b.parent)
		}
		b.frame, b.animTimer = AdvanceFrames(len(b.frames.Start), b.frame, b.animTimer, AnimStepMs, dtMs, false)
		if b.frame >= len(b.frames.Start) {
			b.state = StateIdle
			if len(b.frames.Flight) > 0 {
				b.state = StateFlight
			}
			b.frame = 0
			b.parent = nil
		}

	case StateFlight:
		b.frame, b.animTimer = AdvanceFrames(len(b.frames.Flight), b.frame, b.animTimer, AnimStepMs, dtMs, true)

		dt := dtMs / 1000
		if b.Homing() {
			b.steer(dt)
			b.homingMs -= dtMs
			if b.homingMs <= 0 {
				b.homing = nil
				b.Explode(nil)
			}
		}

		b.body.Pos = b.body.Pos.Add(b.body.Vel.Scale(dt))
		if world != nil && !world.Intersects(b.body.Bounds()) {
			b.dead = true
		}

	case StateExplode:
		if b.parent != nil {
			b.body.Pos = b.parent.Body().Pos
		}
		b.animTimer += dtMs
		if b.animTimer >= AnimStepMs {
			b.animTimer -= AnimStepMs
			b.frame++
			if b.frame >= len(b.frames.Explode) {
				b.dead = true
			}
		}
	}
}

func (b *Bullet) steer(dt float64) {
	target, ok := b.homing()
	if !ok {
		return
	}
	to := target.Sub(b.body.Pos)
	if to.LenSq() <= 1e-4 {
		return
	}

	cur := b.body.Vel.Angle()
	maxTurn := b.TurnRate * dt
	diff := core.Clamp(math.Remainder(to.Angle()-cur, 2*math.Pi), -maxTurn, maxTurn)

	speed := b.body.Vel.Len()
	if speed == 0 {
		speed = b.Speed
	}
	b.body.Vel = core.FromAngle(cur+diff, speed)
}

// Explode switches to the explode animation, keeping at most
// MaxExplodeFrames frames. When parent is set the explosion follows it.
// A bullet without explode frames dies immediately.
func (b *Bullet) Explode(parent Launcher) {
	if len(b.frames.Explode) == 0 {
		b.dead = true
		return
	}
	if len(b.frames.Explode) > MaxExplodeFrames {
		b.frames.Explode = b.frames.Explode[:MaxExplodeFrames]
	}
	b.state = StateExplode
	b.frame = 0
	b.animTimer = 0
	b.body.Vel = core.Vec2{}
	b.parent = parent
}

// AdvanceFrames steps an animation of n frames by dtMs at one frame per
// stepMs. Looping animations wrap; others stop with frame == n once the last
// frame has been shown for a full step.
func AdvanceFrames(n, frame int, timer, stepMs, dtMs float64, loop bool) (int, float64) {
	if n == 0 || stepMs <= 0 {
		return frame, timer
	}
	timer += dtMs
	for timer >= stepMs {
		timer -= stepMs
		frame++
		if frame >= n {
			if !loop {
				return frame, timer
			}
			frame %= n
		}
	}
	return frame, timer
}

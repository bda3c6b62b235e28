package motion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// quietConfig disables every random or steering term so a test controls the
// velocity completely.
func quietConfig() StraightConfig {
	cfg := DefaultStraightConfig()
	cfg.RandomMotion = false
	cfg.Magnet.Enabled = false
	return cfg
}

func newQuiet(pos core.Vec2, vel core.Vec2) *Straight {
	s := NewStraight(pos, quietConfig(), rand.New(rand.NewSource(1)))
	s.body.Vel = vel
	return s
}

func TestNewStraightDefaults(t *testing.T) {
	s := NewStraight(core.V(100, 100), DefaultStraightConfig(), rand.New(rand.NewSource(7)))

	if math.Abs(s.body.Vel.Len()-220) > 1e-9 {
		t.Errorf("initial speed = %f, expected 220", s.body.Vel.Len())
	}
	if s.MaxSpeed != 440 {
		t.Errorf("MaxSpeed = %f, expected 440", s.MaxSpeed)
	}
	if s.changeInterval < 400 || s.changeInterval > 1200 {
		t.Errorf("nudge interval %f outside [400, 1200]", s.changeInterval)
	}
	if s.patternTime < 0 || s.patternTime >= 4 {
		t.Errorf("random phase %f outside [0, period)", s.patternTime)
	}

	slow := DefaultStraightConfig()
	slow.Speed = 50
	if got := NewStraight(core.Vec2{}, slow, rand.New(rand.NewSource(1))).MaxSpeed; got != 200 {
		t.Errorf("MaxSpeed floor = %f, expected 200", got)
	}
}

func TestStraightSpeedInvariant(t *testing.T) {
	world := core.NewRect(0, 0, 1200, 800)

	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := NewStraight(core.V(600, 400), DefaultStraightConfig(), rng)
		s.Turbo = seed%2 == 0

		for tick := 0; tick < 3000; tick++ {
			target := core.V(600+300*math.Cos(float64(tick)/90), 400+200*math.Sin(float64(tick)/70))
			bounced := s.Update(1000.0/60, Env{Target: &target, World: &world})

			v := s.body.Vel
			if math.IsNaN(v.X) || math.IsNaN(v.Y) {
				t.Fatalf("seed %d tick %d: NaN velocity", seed, tick)
			}
			if !bounced && v.Len() > s.MaxSpeed+1e-9 {
				t.Fatalf("seed %d tick %d: speed %f exceeds %f", seed, tick, v.Len(), s.MaxSpeed)
			}
			r := s.body.Bounds()
			if r.X < world.X || r.Y < world.Y || r.Right() > world.Right() || r.Bottom() > world.Bottom() {
				t.Fatalf("seed %d tick %d: bounds %+v left the world", seed, tick, r)
			}
		}
	}
}

func TestStraightBounceImpulseReclamped(t *testing.T) {
	world := core.NewRect(0, 0, 1200, 800)
	s := newQuiet(core.V(30, 400), core.V(-440, 0))

	if !s.Update(100, Env{World: &world}) {
		t.Fatal("moving into the left wall should start a bounce")
	}
	if !s.body.Vel.Near(core.V(792, 0), 1e-9) {
		t.Fatalf("impulse velocity = %v, expected (792, 0)", s.body.Vel)
	}
	if s.body.Vel.Len() <= s.MaxSpeed {
		t.Fatal("this impulse is expected to exceed MaxSpeed for one tick")
	}

	s.Update(100, Env{World: &world})
	if s.body.Vel.Len() > s.MaxSpeed+1e-9 {
		t.Errorf("speed %f not re-clamped the tick after the impulse", s.body.Vel.Len())
	}
}

func TestStraightClampSpeed(t *testing.T) {
	world := core.NewRect(0, 0, 1200, 800)

	s := newQuiet(core.V(30, 400), core.V(-440, 0))
	s.Update(100, Env{World: &world})
	s.ClampSpeed()
	if s.body.Vel.Len() <= s.MaxSpeed {
		t.Errorf("speed %f: the bounce impulse must survive its own tick", s.body.Vel.Len())
	}

	s = newQuiet(core.V(600, 400), core.V(0, 100))
	if s.Update(100, Env{World: &world}) {
		t.Fatal("no wall in reach, expected no bounce")
	}
	s.body.Vel = core.V(900, 0)
	s.ClampSpeed()
	if !s.body.Vel.Near(core.V(s.MaxSpeed, 0), 1e-9) {
		t.Errorf("vel = %v, expected (%f, 0)", s.body.Vel, s.MaxSpeed)
	}
}

func TestStraightWallPenetration(t *testing.T) {
	world := core.NewRect(0, 0, 400, 300)
	s := newQuiet(core.V(30, 150), core.V(-200, 0))

	// left edge reaches -14: pen 14, sep 15, extra 7
	if !s.Update(100, Env{World: &world}) {
		t.Fatal("expected a bounce")
	}
	if math.Abs(s.body.Pos.X-32) > 1e-9 {
		t.Errorf("pos.X = %f, expected 32", s.body.Pos.X)
	}
	if !s.body.Vel.Near(core.V(360, 0), 1e-9) {
		t.Errorf("vel = %v, expected (360, 0)", s.body.Vel)
	}
	if !s.Bouncing() {
		t.Error("bounce window should be active")
	}
}

func TestStraightWallTouchFallback(t *testing.T) {
	world := core.NewRect(0, 0, 400, 300)

	t.Run("single side", func(t *testing.T) {
		s := newQuiet(core.V(24, 150), core.V(0, 0))
		s.collideWalls(world)
		// touching with zero penetration: sep 8 plus the minimum extra 4
		if math.Abs(s.body.Pos.X-36) > 1e-9 || s.body.Pos.Y != 150 {
			t.Errorf("pos = %v, expected (36, 150)", s.body.Pos)
		}
		// impulse floor: max(220*0.6, 120) = 132
		if !s.body.Vel.Near(core.V(132, 0), 1e-9) {
			t.Errorf("vel = %v, expected (132, 0)", s.body.Vel)
		}
	})

	t.Run("corner", func(t *testing.T) {
		s := newQuiet(core.V(24, 24), core.V(0, 0))
		s.collideWalls(world)
		d := 12 / math.Sqrt2
		if !s.body.Pos.Near(core.V(24+d, 24+d), 1e-9) {
			t.Errorf("pos = %v, expected diagonal push", s.body.Pos)
		}
	})
}

func TestStraightBounceWindowEnds(t *testing.T) {
	world := core.NewRect(0, 0, 400, 300)
	s := newQuiet(core.V(20, 150), core.V(-200, 0))
	if !s.collideWalls(world) {
		t.Fatal("expected a bounce")
	}
	initial := s.body.Vel

	// no world: the rubber band plays out without further wall contact
	s.Update(100, Env{})
	want := BounceVelocity(initial, 0.1, 2, 2, 2.2)
	if !s.body.Vel.Near(want, 1e-9) {
		t.Errorf("vel after 100ms = %v, expected %v", s.body.Vel, want)
	}

	for i := 0; i < 20; i++ {
		s.Update(100, Env{})
	}
	if s.Bouncing() {
		t.Error("bounce window should be over after 2.1s")
	}
	if s.body.Vel != (core.Vec2{}) {
		t.Errorf("vel = %v, expected zero once the window ends", s.body.Vel)
	}
}

func TestStraightReflectMode(t *testing.T) {
	world := core.NewRect(0, 0, 400, 300)

	t.Run("reflects", func(t *testing.T) {
		s := newQuiet(core.V(20, 150), core.V(-100, 50))
		s.cfg.Bounce.Simple = false
		if s.collideWalls(world) {
			t.Error("reflection should not report a rubber-band bounce")
		}
		// Left wall normal (1, 0): 1.45 * 100 across, 0.72 * 50 along.
		if !s.body.Vel.Near(core.V(145, 36), 1e-9) {
			t.Errorf("vel = %v, expected (145, 36)", s.body.Vel)
		}
		if s.Bouncing() {
			t.Error("reflection must not open a bounce window")
		}
	})

	t.Run("unsticks", func(t *testing.T) {
		s := newQuiet(core.V(24, 150), core.V(0, 0))
		s.cfg.Bounce.Simple = false
		s.collideWalls(world)
		if !s.body.Vel.Near(core.V(132, 0), 1e-9) {
			t.Errorf("vel = %v, expected nudge (132, 0)", s.body.Vel)
		}
	})
}

func TestStraightGravity(t *testing.T) {
	cfg := quietConfig()
	cfg.Gravity = Gravity{Enabled: true, Center: core.V(100, 0), Strength: 50}
	s := NewStraight(core.V(0, 0), cfg, rand.New(rand.NewSource(1)))
	s.body.Vel = core.Vec2{}

	s.Update(100, Env{})

	if !s.body.Vel.Near(core.V(5, 0), 1e-9) {
		t.Errorf("vel = %v, expected (5, 0)", s.body.Vel)
	}
	if !s.body.Pos.Near(core.V(0.5, 0), 1e-9) {
		t.Errorf("pos = %v, expected (0.5, 0)", s.body.Pos)
	}
}

func TestStraightTurbo(t *testing.T) {
	s := newQuiet(core.V(0, 0), core.V(100, 0))
	s.Turbo = true
	s.Update(1000, Env{})
	if math.Abs(s.body.Pos.X-150) > 1e-9 {
		t.Errorf("turbo move = %f, expected 150", s.body.Pos.X)
	}
	if s.body.Vel.X != 100 {
		t.Errorf("turbo must not change the stored velocity, got %v", s.body.Vel)
	}
}

func TestStraightNudge(t *testing.T) {
	cfg := quietConfig()
	cfg.RandomMotion = true
	cfg.NudgeMinMs, cfg.NudgeMaxMs = 100, 100
	s := NewStraight(core.V(0, 0), cfg, rand.New(rand.NewSource(3)))

	for i := 0; i < 50; i++ {
		before := s.body.Vel
		s.Update(100, Env{})
		after := s.body.Vel

		turn := math.Abs(math.Remainder(after.Angle()-before.Angle(), 2*math.Pi))
		if turn > math.Pi/12+1e-9 {
			t.Fatalf("nudge %d turned %f rad, limit π/12", i, turn)
		}
		ratio := after.Len() / before.Len()
		if ratio < 0.9-1e-9 || ratio > 1.1+1e-9 {
			t.Fatalf("nudge %d scaled speed by %f", i, ratio)
		}
		if after == before {
			t.Fatalf("nudge %d left velocity unchanged", i)
		}
	}
}

func TestStraightFacing(t *testing.T) {
	tests := []struct {
		name string
		vel  core.Vec2
		want float64
	}{
		{"right", core.V(100, 0), 0},
		{"up screen", core.V(0, -100), math.Pi / 2},
		{"down screen", core.V(0, 100), -math.Pi / 2},
		{"left", core.V(-100, 0), math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newQuiet(core.V(0, 0), tt.vel)
			s.Update(10, Env{})
			if math.Abs(math.Remainder(s.Facing()-tt.want, 2*math.Pi)) > 1e-9 {
				t.Errorf("Facing() = %f, expected %f", s.Facing(), tt.want)
			}
		})
	}
}

func TestStraightFigure8(t *testing.T) {
	world := core.NewRect(0, 0, 1200, 800)
	cfg := quietConfig()
	cfg.Path = PathFigure8
	cfg.Pattern.HasPhase = true
	s := NewStraight(core.V(0, 0), cfg, rand.New(rand.NewSource(1)))

	if _, set := s.PathCenter(); set {
		t.Fatal("path center must be fixed lazily")
	}

	s.Update(100, Env{World: &world})
	center, set := s.PathCenter()
	if !set || !center.Near(core.V(148, 88), 1e-9) {
		t.Fatalf("center = %v (set %v), expected (148, 88)", center, set)
	}
	wantPos, wantVel := Figure8At(center, 140, 80, 4, 0.1)
	if !s.body.Pos.Near(wantPos, 1e-9) || !s.body.Vel.Near(wantVel, 1e-9) {
		t.Errorf("pos/vel = %v/%v, expected %v/%v", s.body.Pos, s.body.Vel, wantPos, wantVel)
	}

	start := s.body.Pos
	for i := 0; i < 40; i++ {
		s.Update(100, Env{World: &world})
		if s.body.Vel.Len() > s.MaxSpeed+1e-9 {
			t.Fatalf("figure-8 speed %f exceeds %f", s.body.Vel.Len(), s.MaxSpeed)
		}
	}
	if !s.body.Pos.Near(start, 1e-6) {
		t.Errorf("after one period pos = %v, expected %v", s.body.Pos, start)
	}
	if c, _ := s.PathCenter(); c != center {
		t.Error("path center moved after it was fixed")
	}
}

func TestStraightDeterministic(t *testing.T) {
	world := core.NewRect(0, 0, 1200, 800)
	run := func() []core.Vec2 {
		s := NewStraight(core.V(300, 300), DefaultStraightConfig(), rand.New(rand.NewSource(42)))
		target := core.V(900, 500)
		var path []core.Vec2
		for i := 0; i < 600; i++ {
			s.Update(16, Env{Target: &target, World: &world})
			path = append(path, s.body.Pos)
		}
		return path
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d diverged: %v vs %v", i, a[i], b[i])
		}
	}
}

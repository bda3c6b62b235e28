package arena

import (
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/combat"
	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// Autopilot tuning.
const (
	dodgeRadius  = 180.0 // flee threats closer than this
	wallMargin   = 100.0 // steer back toward the middle inside this band
	axisDeadband = 0.38  // ~sin(22.5°), snaps the thrust to eight directions
)

// Autopilot returns the input a simple pilot gives for the current state:
// dodge the closest threat, otherwise close in on the nearest enemy. It
// always holds fire; the laser cooldown limits the rate.
func Autopilot(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	if g.gameOver || g.player == nil {
		in.Set(core.ActionRestart)
		return in
	}
	in.Set(core.ActionFire)

	ship := g.player.body.Pos
	var dir core.Vec2
	if threat, ok := g.nearestThreat(ship); ok && threat.Dist(ship) < dodgeRadius {
		dir = ship.Sub(threat).Normalize()
	} else if e := g.nearestEnemy(ship); e != nil {
		dir = e.Body().Pos.Sub(ship).Normalize()
	}
	dir = dir.Add(g.wallPush(ship))

	setThrust(&in, dir)
	return in
}

// nearestThreat returns the closest live enemy or bullet position.
func (g *Game) nearestThreat(from core.Vec2) (core.Vec2, bool) {
	best, found := core.Vec2{}, false
	bestDist := math.Inf(1)
	consider := func(p core.Vec2) {
		if d := p.Dist(from); d < bestDist {
			best, bestDist, found = p, d, true
		}
	}
	for _, e := range g.enemies {
		if !e.removed {
			consider(e.Body().Pos)
		}
	}
	for _, b := range g.bullets {
		if !b.Dead() && b.State() != combat.StateExplode {
			consider(b.Body().Pos)
		}
	}
	return best, found
}

func (g *Game) nearestEnemy(from core.Vec2) *enemy {
	var best *enemy
	bestDist := math.Inf(1)
	for _, e := range g.enemies {
		if e.removed {
			continue
		}
		if d := e.Body().Pos.Dist(from); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// wallPush points away from walls closer than wallMargin.
func (g *Game) wallPush(p core.Vec2) core.Vec2 {
	var v core.Vec2
	if p.X-g.world.X < wallMargin {
		v.X++
	}
	if g.world.Right()-p.X < wallMargin {
		v.X--
	}
	if p.Y-g.world.Y < wallMargin {
		v.Y++
	}
	if g.world.Bottom()-p.Y < wallMargin {
		v.Y--
	}
	return v
}

func setThrust(in *core.InputFrame, dir core.Vec2) {
	dir = dir.Normalize()
	switch {
	case dir.X > axisDeadband:
		in.Set(core.ActionRight)
	case dir.X < -axisDeadband:
		in.Set(core.ActionLeft)
	}
	switch {
	case dir.Y > axisDeadband:
		in.Set(core.ActionDown)
	case dir.Y < -axisDeadband:
		in.Set(core.ActionUp)
	}
}

// Summary describes a finished or interrupted run.
type Summary struct {
	Scenario   string
	Seed       int64
	Score      int
	Wave       int
	Kills      int
	Ticks      int
	LivesLeft  int
	GameOver   bool
	DurationMs int64 // simulated time
	Hash       uint64
}

// Summary returns the run's current totals.
func (g *Game) Summary() Summary {
	snap := g.Snapshot()
	return Summary{
		Scenario:   g.scenario.ID,
		Seed:       g.runtime.Seed,
		Score:      g.score,
		Wave:       g.wave,
		Kills:      g.kills,
		Ticks:      g.tickCount,
		LivesLeft:  g.player.hp.Lives(),
		GameOver:   g.gameOver,
		DurationMs: g.clockMs,
		Hash:       snap.Hash(),
	}
}

// Simulate runs g under the autopilot for at most ticks ticks, stopping at
// game over. onTick, when set, sees every step result.
func Simulate(g *Game, ticks int, onTick func(core.StepResult)) Summary {
	for range ticks {
		if g.gameOver {
			break
		}
		res := g.Step(Autopilot(g))
		if onTick != nil {
			onTick(res)
		}
	}
	return g.Summary()
}

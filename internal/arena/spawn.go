package arena

import (
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/combat"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/motion"
)

// spawnAttempts bounds the search for a point outside the safe radius.
const spawnAttempts = 16

// spawnWave starts the next wave. Its size grows with the wave number and
// with difficulty, capped by Waves.MaxEnemies.
func (g *Game) spawnWave() {
	g.wave++
	w := g.cfg.Waves
	base := w.BaseCount + w.PerWave*(g.wave-1)
	g.difficulty.Update(g.score, g.tickCount)
	n := g.difficulty.WaveSize(base, w.MaxEnemies)
	for i := range n {
		kind := g.scenario.pick(g.rng, i)
		g.addEnemy(kind, g.spawnPoint(g.reach(kind)))
	}
}

// reach is how far an enemy of kind can stray from its spawn point.
func (g *Game) reach(kind EnemyKind) float64 {
	e := g.cfg.Enemy
	switch kind {
	case KindWeaver:
		return e.Straight.Pattern.A + math.Max(e.Straight.Width, e.Straight.Height)/2
	case KindOrbiter:
		return e.Orbit.Radius + math.Max(e.Orbit.Width, e.Orbit.Height)/2
	default:
		return math.Max(e.Straight.Width, e.Straight.Height) / 2
	}
}

// spawnPoint picks a random point at least reach+margin inside the world,
// preferring points outside the player's safe radius. When no attempt
// clears the radius the farthest candidate wins.
func (g *Game) spawnPoint(reach float64) core.Vec2 {
	inset := reach + g.cfg.Waves.SpawnMargin
	minX, maxX := g.world.X+inset, g.world.Right()-inset
	minY, maxY := g.world.Y+inset, g.world.Bottom()-inset
	if minX > maxX {
		minX, maxX = g.world.Center().X, g.world.Center().X
	}
	if minY > maxY {
		minY, maxY = g.world.Center().Y, g.world.Center().Y
	}

	ship := g.player.body.Pos
	var best core.Vec2
	bestDist := -1.0
	for range spawnAttempts {
		p := core.Vec2{
			X: minX + g.rng.Float64()*(maxX-minX),
			Y: minY + g.rng.Float64()*(maxY-minY),
		}
		d := p.Dist(ship)
		if d >= g.cfg.Waves.SafeRadius {
			return p
		}
		if d > bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// addEnemy creates an enemy of kind at pos and registers it with the index.
// For orbiters pos is the orbit center.
func (g *Game) addEnemy(kind EnemyKind, pos core.Vec2) *enemy {
	ec := g.cfg.Enemy
	e := &enemy{
		id:    g.nextID,
		kind:  kind,
		hp:    combat.NewTracker(ec.Lives, ec.InvincibleMs, g.clock),
		score: ec.Score,
	}
	g.nextID++

	switch kind {
	case KindOrbiter:
		e.orbit = motion.NewOrbit(pos, ec.Orbit.OrbitMotion(), g.rng)
		e.mover = e.orbit
		e.score = ec.Orbit.Score
	default:
		path := motion.PathRandom
		if kind == KindWeaver {
			path = motion.PathFigure8
		}
		mc := ec.Straight.StraightMotion(path)
		mc.Speed = g.difficulty.Speed(mc.Speed)
		e.straight = motion.NewStraight(pos, mc, g.rng)
		e.mover = e.straight
	}

	// Stagger the first shot so a wave does not fire in unison
	interval := g.fireInterval()
	e.fireMs = interval * (0.5 + 0.5*g.rng.Float64())

	g.enemies = append(g.enemies, e)
	g.hash.Insert(e)
	return e
}

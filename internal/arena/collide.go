package arena

import (
	"github.com/vovakirdan/rocket-arcade/internal/combat"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/physics"
)

// resolveEnemyContacts runs the narrow phase over every broad-phase pair.
// Each pair is handled once, from the enemy with the lower id.
func (g *Game) resolveEnemyContacts() {
	for _, a := range g.enemies {
		if a.removed {
			continue
		}
		for _, b := range g.hash.Query(a.Bounds()) {
			if b.id <= a.id || b.removed {
				continue
			}
			if physics.Overlap(a.Body(), b.Body()) <= 0 {
				continue
			}
			g.collideEnemies(a, b)
		}
	}
}

// collideEnemies exchanges momentum, pushes the pair apart, and hands the
// velocity change to orbiters as a decaying push.
func (g *Game) collideEnemies(a, b *enemy) {
	ab, bb := a.Body(), b.Body()
	va, vb := ab.Vel, bb.Vel

	physics.ApplyImpact(ab, bb, g.cfg.Physics.Elasticity, g.rng)
	physics.Separate(ab, bb, g.cfg.Physics.SeparateFrac, g.rng)

	a.absorb(ab.Vel.Sub(va), g.cfg.Physics.PushScale)
	b.absorb(bb.Vel.Sub(vb), g.cfg.Physics.PushScale)

	g.emit(core.EventImpact, ab.Pos.Add(bb.Pos).Scale(0.5))
}

// resolvePlayerContacts applies contact damage from enemies touching the ship.
func (g *Game) resolvePlayerContacts() {
	pb := g.player.body.Bounds()
	for _, e := range g.hash.Query(pb) {
		if e.removed || !pb.Intersects(e.Bounds()) {
			continue
		}
		if g.player.hp.TakeDamage(g.cfg.Enemy.ContactDamage) {
			g.emit(core.EventPlayerHit, g.player.body.Pos)
		}
	}
}

// resolveLaserHits lets each laser in flight damage the overlapped enemy with
// the lowest id.
func (g *Game) resolveLaserHits(hits *hitSpace) {
	for _, l := range g.lasers {
		if l.Dead() || l.State() != combat.StateFlight {
			continue
		}
		targets := hits.enemiesAt(l.Body().Bounds())
		if len(targets) == 0 {
			continue
		}
		e := targets[0]
		l.Kill()
		if g.player.hp.DealDamage(e.hp, 1) && e.hp.IsDead() {
			e.removed = true
			g.kills++
			g.score += e.score
			g.emit(core.EventEnemyKilled, e.Body().Pos)
		}
	}
}

// resolveBulletHits explodes enemy bullets on the ship.
func (g *Game) resolveBulletHits(hits *hitSpace) {
	for _, b := range g.bullets {
		if b.Dead() || b.State() == combat.StateExplode {
			continue
		}
		if !hits.hitsShip(b.Body().Bounds()) {
			continue
		}
		if g.player.hp.TakeDamage(1) {
			g.emit(core.EventPlayerHit, g.player.body.Pos)
		}
		b.Explode(g.player)
		g.emit(core.EventBulletExploded, b.Body().Pos)
	}
}

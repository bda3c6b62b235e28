// Package arena hosts the simulation: a player ship, waves of enemies
// driven by the motion models, projectiles, and the per-tick collision pass.
package arena

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/rocket-arcade/internal/combat"
	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/motion"
	"github.com/vovakirdan/rocket-arcade/internal/physics"
)

// Straight enemies switch to turbo once difficulty reaches this level.
const turboLevel = 0.75

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game runs one scenario.
type Game struct {
	scenario Scenario

	// Entities
	player  *player
	enemies []*enemy
	bullets []*combat.Bullet // enemy fire
	lasers  []*combat.Bullet // player fire
	muzzles []*combat.Muzzle
	hash    *physics.SpatialHash[*enemy]

	// Game state
	score     int
	kills     int
	wave      int
	tickCount int
	clockMs   int64
	nextID    int
	paused    bool
	gameOver  bool
	events    []core.Event

	// Configuration
	runtime     core.RuntimeConfig
	cfg         config.ArenaConfig
	pinned      *config.ArenaConfig
	difficulty  *config.DifficultyManager
	rng         *rand.Rand
	world       core.Rect
	enemyFrames combat.Frames
	laserFrames combat.Frames
	muzzle      []rune

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a game for the given scenario. Call Reset before stepping.
func New(sc Scenario) *Game {
	return &Game{scenario: sc}
}

// ID returns the scenario identifier.
func (g *Game) ID() string { return g.scenario.ID }

// Title returns the scenario display name.
func (g *Game) Title() string { return g.scenario.Title }

// Description returns the scenario summary.
func (g *Game) Description() string { return g.scenario.Description }

// SetConfig pins cfg for every following Reset, bypassing the file search.
func (g *Game) SetConfig(cfg config.ArenaConfig) {
	g.pinned = &cfg
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	var cfg config.ArenaConfig
	if g.pinned != nil {
		cfg = *g.pinned
	} else {
		loaded, err := config.Load(configPath)
		if err != nil {
			loaded = config.DefaultArenaConfig()
		}
		cfg = loaded
		if difficultyPreset != "" {
			config.ApplyPreset(&cfg, difficultyPreset)
		}
	}
	if g.scenario.tune != nil {
		g.scenario.tune(&cfg)
	}
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- deterministic simulation
	g.world = cfg.World.Rect()
	g.hash = physics.NewSpatialHash[*enemy](cfg.World.CellSize)

	g.enemyFrames = cfg.Bullets.Frames.Frames()
	g.laserFrames = cfg.Bullets.LaserFrames.Frames()
	if cfg.Bullets.LaserFrames.Empty() {
		g.laserFrames = combat.Frames{Flight: []rune{'-'}}
	}
	g.muzzle = []rune(cfg.Bullets.Muzzle)

	// Check screen size
	g.minScreenW = 40
	g.minScreenH = 16
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	// Initialize game state
	g.score = 0
	g.kills = 0
	g.wave = 0
	g.tickCount = 0
	g.clockMs = 0
	g.nextID = 0
	g.paused = false
	g.gameOver = false
	g.events = nil
	g.enemies = nil
	g.bullets = nil
	g.lasers = nil
	g.muzzles = nil

	p := cfg.Player
	g.player = &player{
		body:   physics.NewBody(g.world.Center(), p.Width, p.Height),
		facing: math.Pi / 2, // nose up
		hp:     combat.NewTracker(p.Lives, p.InvincibleMs, g.clock),
	}

	g.spawnWave()
}

func (g *Game) clock() int64 { return g.clockMs }

// Resize adapts to a new terminal size without restarting the run. The
// world is fixed, so only the viewport and the size check change.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	// Don't update if paused or game over
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	dt := g.runtime.TickMillis()
	g.clockMs = int64(float64(g.tickCount) * dt)
	g.events = nil
	g.difficulty.Update(g.score, g.tickCount)

	g.prune()
	g.updatePlayer(in, dt)
	g.updateEnemies(dt)
	g.updateProjectiles(dt)

	g.hash.Rebuild()
	g.resolveEnemyContacts()
	g.resolvePlayerContacts()
	hits := g.newHitSpace()
	g.resolveLaserHits(hits)
	g.resolveBulletHits(hits)

	switch {
	case g.player.hp.IsDead():
		g.gameOver = true
	case g.aliveEnemies() == 0:
		g.score += g.cfg.Waves.WaveBonus
		g.emit(core.EventWaveCleared, g.player.body.Pos)
		g.spawnWave()
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// prune drops entities flagged during the previous tick.
func (g *Game) prune() {
	kept := g.enemies[:0]
	for _, e := range g.enemies {
		if !e.removed {
			kept = append(kept, e)
		}
	}
	if len(kept) != len(g.enemies) {
		clear(g.enemies[len(kept):])
		g.enemies = kept
		g.hash.Reset()
		for _, e := range g.enemies {
			g.hash.Insert(e)
		}
	}

	g.bullets = pruneBullets(g.bullets)
	g.lasers = pruneBullets(g.lasers)

	muzzles := g.muzzles[:0]
	for _, m := range g.muzzles {
		if !m.Dead() {
			muzzles = append(muzzles, m)
		}
	}
	clear(g.muzzles[len(muzzles):])
	g.muzzles = muzzles
}

func pruneBullets(list []*combat.Bullet) []*combat.Bullet {
	kept := list[:0]
	for _, b := range list {
		if !b.Dead() {
			kept = append(kept, b)
		}
	}
	clear(list[len(kept):])
	return kept
}

// updatePlayer moves the ship along the thrust direction and fires lasers.
func (g *Game) updatePlayer(in core.InputFrame, dt float64) {
	p := g.player
	thrust := in.Thrust()
	if thrust.IsZero() {
		p.body.Vel = core.Vec2{}
	} else {
		p.body.Vel = thrust.Normalize().Scale(g.cfg.Player.Speed)
		p.facing = p.body.Vel.Facing()
	}
	p.body.Pos = p.body.Pos.Add(p.body.Vel.Scale(dt / 1000))
	p.body.SetBounds(p.body.Bounds().ClampInside(g.world))

	p.cooldown -= dt
	if in.Has(core.ActionFire) && p.cooldown <= 0 {
		for _, b := range p.barrels(g.cfg.Player.Barrels) {
			g.lasers = append(g.lasers, combat.FromLauncher(b, g.laserFrames, g.cfg.Player.LaserSpeed))
		}
		p.cooldown = g.cfg.Player.FireCooldownMs
	}
}

// updateEnemies runs every motion model and the enemy fire cadence.
func (g *Game) updateEnemies(dt float64) {
	target := g.player.body.Pos
	env := motion.Env{Target: &target, World: &g.world}
	turbo := g.difficulty.Level() >= turboLevel

	for _, e := range g.enemies {
		if e.straight != nil {
			e.straight.Turbo = turbo
		}
		if e.mover.Update(dt, env) {
			g.emit(core.EventBounce, e.Body().Pos)
		}

		e.fireMs -= dt
		if e.fireMs <= 0 {
			g.enemyFire(e)
			e.fireMs = g.fireInterval()
		}
	}
}

func (g *Game) fireInterval() float64 {
	return g.difficulty.FireInterval(g.cfg.Bullets.FireIntervalMs)
}

// enemyFire launches a bullet along e's facing. Some bullets home on the ship.
func (g *Game) enemyFire(e *enemy) {
	b := combat.FromLauncher(e, g.enemyFrames, g.cfg.Bullets.Speed)
	if g.rng.Float64() < g.cfg.Bullets.HomingChance {
		b.SetHoming(g.playerTarget, g.cfg.Bullets.HomingMs)
	}
	g.bullets = append(g.bullets, b)
	if len(g.muzzle) > 0 {
		g.muzzles = append(g.muzzles, combat.NewMuzzle(e, g.muzzle))
	}
}

func (g *Game) playerTarget() (core.Vec2, bool) {
	return g.player.body.Pos, !g.player.hp.IsDead()
}

// updateProjectiles advances bullets, lasers and muzzle flashes.
func (g *Game) updateProjectiles(dt float64) {
	for _, b := range g.bullets {
		exploding := b.State() == combat.StateExplode
		b.Update(dt, &g.world)
		if !exploding && b.State() == combat.StateExplode {
			g.emit(core.EventBulletExploded, b.Body().Pos)
		}
	}
	for _, l := range g.lasers {
		l.Update(dt, &g.world)
	}
	for _, m := range g.muzzles {
		m.Update(dt)
	}
}

func (g *Game) aliveEnemies() int {
	n := 0
	for _, e := range g.enemies {
		if !e.removed {
			n++
		}
	}
	return n
}

func (g *Game) emit(kind core.EventKind, pos core.Vec2) {
	g.events = append(g.events, core.Event{Kind: kind, Tick: g.tickCount, Pos: pos})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Wave returns the current wave number, starting at 1.
func (g *Game) Wave() int { return g.wave }

// Kills returns how many enemies the player destroyed.
func (g *Game) Kills() int { return g.kills }

// Lives returns the player's remaining lives.
func (g *Game) Lives() int { return g.player.hp.Lives() }

// Ticks returns how many ticks have been simulated since Reset.
func (g *Game) Ticks() int { return g.tickCount }

// Enemies returns the number of live enemies.
func (g *Game) Enemies() int { return g.aliveEnemies() }

package arena

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/rocket-arcade/internal/combat"
	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(sc Scenario, seed int64) *Game {
	g := New(sc)
	g.SetConfig(config.DefaultArenaConfig())
	g.Reset(testRuntime(seed))
	return g
}

// isolate removes the spawned wave so a test can place its own enemies.
func isolate(g *Game) {
	g.enemies = nil
	g.hash.Reset()
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestGameDeterminism(t *testing.T) {
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		switch (i / 40) % 4 {
		case 0:
			inputSequence[i].Set(core.ActionLeft)
		case 1:
			inputSequence[i].Set(core.ActionUp)
		case 2:
			inputSequence[i].Set(core.ActionRight)
		default:
			inputSequence[i].Set(core.ActionDown)
		}
		if i%3 == 0 {
			inputSequence[i].Set(core.ActionFire)
		}
	}

	run := func() Snapshot {
		g := newTestGame(Swarm, 12345)
		for _, in := range inputSequence {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score || snap1.Tick != snap2.Tick {
		t.Errorf("Determinism failed: score/tick differ. Run1=%d/%d, Run2=%d/%d",
			snap1.Score, snap1.Tick, snap2.Score, snap2.Tick)
	}
}

func TestSeedsDiverge(t *testing.T) {
	a := newTestGame(Drift, 1).Snapshot()
	b := newTestGame(Drift, 2).Snapshot()
	if a.Hash() == b.Hash() {
		t.Error("different seeds should spawn different waves")
	}
}

func TestSimulateDeterministic(t *testing.T) {
	var events int
	s1 := Simulate(newTestGame(Swarm, 7), 900, func(res core.StepResult) {
		events += len(res.Events)
	})
	s2 := Simulate(newTestGame(Swarm, 7), 900, nil)

	if s1 != s2 {
		t.Errorf("summaries differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Ticks == 0 || s1.Scenario != "swarm" || s1.Seed != 7 {
		t.Errorf("unexpected summary %+v", s1)
	}
	if !s1.GameOver && s1.Ticks != 900 {
		t.Errorf("run stopped early at tick %d without game over", s1.Ticks)
	}
	if events == 0 {
		t.Error("a 15 second run should produce events")
	}
}

func TestScenariosRegistered(t *testing.T) {
	tests := []struct {
		sc    Scenario
		kind  EnemyKind
		mixed bool
	}{
		{Drift, KindDrifter, false},
		{Figure8, KindWeaver, false},
		{Orbit, KindOrbiter, false},
		{Swarm, 0, true},
		{Well, KindDrifter, false},
	}

	for _, tt := range tests {
		t.Run(tt.sc.ID, func(t *testing.T) {
			if !registry.Exists(tt.sc.ID) {
				t.Fatalf("scenario %q not registered", tt.sc.ID)
			}
			created, err := registry.Create(tt.sc.ID)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if created.Title() != tt.sc.Title {
				t.Errorf("Title() = %q, expected %q", created.Title(), tt.sc.Title)
			}

			g := newTestGame(tt.sc, 3)
			if g.Wave() != 1 || g.Enemies() != 3 {
				t.Errorf("wave %d with %d enemies, expected wave 1 with 3", g.Wave(), g.Enemies())
			}
			if tt.mixed {
				return
			}
			for _, e := range g.enemies {
				if e.kind != tt.kind {
					t.Errorf("enemy %d is %s, expected %s", e.id, e.kind, tt.kind)
				}
			}
		})
	}
}

func TestWellScenarioTuning(t *testing.T) {
	g := newTestGame(Well, 1)
	for _, e := range g.enemies {
		cfg := e.straight.Config()
		if !cfg.Gravity.Enabled || cfg.Magnet.Enabled {
			t.Fatalf("well enemy gravity=%v magnet=%v", cfg.Gravity.Enabled, cfg.Magnet.Enabled)
		}
	}
}

func TestSpawnAwayFromPlayer(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := newTestGame(Drift, seed)
		safe := g.cfg.Waves.SafeRadius
		inner := g.world
		inset := g.cfg.Waves.SpawnMargin
		for _, e := range g.enemies {
			pos := e.Body().Pos
			if d := pos.Dist(g.player.body.Pos); d < safe {
				t.Errorf("seed %d: enemy spawned %.1f px from the ship", seed, d)
			}
			if pos.X < inner.X+inset || pos.X > inner.Right()-inset ||
				pos.Y < inner.Y+inset || pos.Y > inner.Bottom()-inset {
				t.Errorf("seed %d: enemy spawned in the margin at %v", seed, pos)
			}
		}
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(Drift, 42)
	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	fire.Set(core.ActionRight)
	for range 50 {
		g.Step(fire)
	}

	g.Reset(testRuntime(42))

	if g.score != 0 || g.tickCount != 0 || g.kills != 0 {
		t.Errorf("Reset left score=%d tick=%d kills=%d", g.score, g.tickCount, g.kills)
	}
	if g.Wave() != 1 || g.Lives() != 5 {
		t.Errorf("Reset left wave=%d lives=%d", g.Wave(), g.Lives())
	}
	if len(g.lasers) != 0 || len(g.bullets) != 0 {
		t.Error("Reset should clear projectiles")
	}
	got, fresh := g.Snapshot(), newTestGame(Drift, 42).Snapshot()
	if got.Hash() != fresh.Hash() {
		t.Error("Reset should reproduce a fresh game")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(Swarm, 9)
	empty := core.NewInputFrame()
	for range 10 {
		g.Step(empty)
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("pause action should pause")
	}
	before := g.Snapshot()
	for range 5 {
		g.Step(empty)
	}
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("paused game should not change")
	}

	g.Step(pause)
	if g.State().Paused || g.Ticks() != 11 {
		t.Errorf("unpause: paused=%v tick=%d, expected running at tick 11", g.State().Paused, g.Ticks())
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(Drift, 5)
	g.player.hp.Reset(0)

	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("dead player should end the game")
	}

	tick := g.Ticks()
	g.Step(core.NewInputFrame())
	if g.Ticks() != tick {
		t.Error("game over should stop the simulation")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	res = g.Step(restart)
	if res.State.GameOver || g.Ticks() != 0 || g.Lives() != 5 {
		t.Errorf("restart: over=%v tick=%d lives=%d", res.State.GameOver, g.Ticks(), g.Lives())
	}
}

func TestPlayerMovement(t *testing.T) {
	g := newTestGame(Drift, 1)
	isolate(g)
	g.addEnemy(KindDrifter, core.V(100, 100))

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	start := g.player.body.Pos
	g.Step(right)

	want := start.X + g.cfg.Player.Speed/60
	if math.Abs(g.player.body.Pos.X-want) > 1e-9 || g.player.body.Pos.Y != start.Y {
		t.Errorf("player at %v, expected x=%f", g.player.body.Pos, want)
	}
	if g.player.facing != 0 {
		t.Errorf("facing = %f, expected 0 after moving right", g.player.facing)
	}

	// Ship stays inside the world
	g.player.body.Pos = core.V(g.world.Right()-1, 400)
	g.Step(right)
	if r := g.player.body.Bounds().Right(); r > g.world.Right() {
		t.Errorf("ship right edge %f beyond world %f", r, g.world.Right())
	}
}

func TestLaserKillsEnemy(t *testing.T) {
	g := newTestGame(Drift, 1)
	isolate(g)
	g.player.facing = 0
	e := g.addEnemy(KindDrifter, g.player.body.Pos.Add(core.V(120, 0)))
	e.Body().Vel = core.Vec2{}

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)

	var killed, cleared bool
	for range 30 {
		res := g.Step(fire)
		killed = killed || hasEvent(res.Events, core.EventEnemyKilled)
		cleared = cleared || hasEvent(res.Events, core.EventWaveCleared)
		if killed {
			break
		}
	}

	if !killed {
		t.Fatal("laser never killed the enemy")
	}
	if !cleared || g.Wave() != 2 {
		t.Errorf("killing the last enemy should clear the wave (wave=%d)", g.Wave())
	}
	want := g.cfg.Enemy.Score + g.cfg.Waves.WaveBonus
	if g.score != want || g.Kills() != 1 {
		t.Errorf("score=%d kills=%d, expected %d and 1", g.score, g.Kills(), want)
	}
	if g.Enemies() != 5 {
		t.Errorf("wave 2 has %d enemies, expected 5", g.Enemies())
	}
}

func TestLaserHitsLowestID(t *testing.T) {
	g := newTestGame(Drift, 1)
	isolate(g)
	a := g.addEnemy(KindDrifter, core.V(300, 300))
	b := g.addEnemy(KindDrifter, core.V(310, 300))

	frames := combat.Frames{Flight: []rune{'-'}}
	hit := combat.NewBullet(core.V(305, 300), core.Vec2{}, frames, 900)
	miss := combat.NewBullet(core.V(300, 600), core.Vec2{}, frames, 900)
	g.lasers = []*combat.Bullet{hit, miss}

	g.resolveLaserHits(g.newHitSpace())

	if !hit.Dead() || miss.Dead() {
		t.Fatalf("hit dead=%v miss dead=%v, expected only the overlapping laser spent", hit.Dead(), miss.Dead())
	}
	if !a.removed || b.removed {
		t.Errorf("removed a=%v b=%v, expected the lower id to take the hit", a.removed, b.removed)
	}
	if g.Kills() != 1 {
		t.Errorf("kills = %d, expected 1", g.Kills())
	}
}

func TestTwinBarrelVolley(t *testing.T) {
	g := newTestGame(Drift, 1)
	isolate(g)
	g.addEnemy(KindDrifter, core.V(100, 100))
	g.player.facing = 0

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	g.Step(fire)

	if len(g.lasers) != 2 {
		t.Fatalf("lasers = %d, expected one per barrel", len(g.lasers))
	}
	gap := g.lasers[0].Body().Pos.Sub(g.lasers[1].Body().Pos).Len()
	if want := g.cfg.Player.Width / 2; math.Abs(gap-want) > 1e-9 {
		t.Errorf("barrel gap = %f, expected %f", gap, want)
	}

	g = newTestGame(Drift, 1)
	g.cfg.Player.Barrels = 1
	g.Step(fire)
	if len(g.lasers) != 1 {
		t.Errorf("single barrel fired %d lasers", len(g.lasers))
	}
}

func TestHealthBarFill(t *testing.T) {
	tests := []struct {
		cur, full, want int
	}{
		{4, 4, 3},
		{3, 4, 3},
		{2, 4, 2},
		{1, 4, 1},
		{0, 4, 0},
		{5, 4, 3},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := healthBarFill(tt.cur, tt.full, healthBarWidth); got != tt.want {
			t.Errorf("healthBarFill(%d, %d) = %d, expected %d", tt.cur, tt.full, got, tt.want)
		}
	}
}

func TestRenderEnemyHealthBar(t *testing.T) {
	g := newTestGame(Drift, 1)
	isolate(g)
	g.cfg.Enemy.Lives = 4
	hurt := g.addEnemy(KindDrifter, core.V(300, 200))
	g.addEnemy(KindDrifter, core.V(900, 200))
	hurt.hp.TakeDamage(2)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// (300, 200) lands on cell (20, 7) of a 78x21 playfield
	var bar string
	for x := 19; x <= 21; x++ {
		bar += string(screen.Get(x, 6))
	}
	if bar != "▬▬·" {
		t.Errorf("health bar = %q, expected %q", bar, "▬▬·")
	}
	if got := screen.GetCell(19, 6).Color; got != core.ColorRed {
		t.Errorf("filled cell color = %v, expected red", got)
	}

	// (900, 200) lands on cell (59, 7); full health draws nothing
	if got := screen.Get(59, 6); got != ' ' {
		t.Errorf("undamaged enemy drew %q above it", got)
	}
}

func TestContactDamageRespectsInvincibility(t *testing.T) {
	g := newTestGame(Drift, 1)
	isolate(g)
	e := g.addEnemy(KindDrifter, g.player.body.Pos.Add(core.V(10, 0)))
	e.Body().Vel = core.Vec2{}

	res := g.Step(core.NewInputFrame())
	if !hasEvent(res.Events, core.EventPlayerHit) || g.Lives() != 4 {
		t.Fatalf("contact should cost a life: lives=%d events=%v", g.Lives(), res.Events)
	}
	if !g.player.hp.Invincible() {
		t.Error("player should be invincible after a hit")
	}

	for range 30 {
		g.Step(core.NewInputFrame())
	}
	if g.Lives() != 4 {
		t.Errorf("lives = %d, further contact inside the window must be ignored", g.Lives())
	}
}

func TestBulletHitsPlayer(t *testing.T) {
	g := newTestGame(Drift, 1)
	isolate(g)
	g.addEnemy(KindDrifter, core.V(100, 100))

	frames := combat.Frames{Flight: []rune{'o'}, Explode: []rune{'*', '+'}}
	b := combat.NewBullet(g.player.body.Pos.Sub(core.V(25, 0)), core.V(420, 0), frames, 420)
	g.bullets = append(g.bullets, b)

	res := g.Step(core.NewInputFrame())
	if !hasEvent(res.Events, core.EventPlayerHit) || !hasEvent(res.Events, core.EventBulletExploded) {
		t.Fatalf("expected hit and explosion events, got %v", res.Events)
	}
	if g.Lives() != 4 {
		t.Errorf("lives = %d, expected 4", g.Lives())
	}
	if b.State() != combat.StateExplode {
		t.Errorf("bullet state = %s, expected explode", b.State())
	}
}

func TestEnemyImpactPushesOrbiter(t *testing.T) {
	g := newTestGame(Swarm, 1)
	isolate(g)
	o := g.addEnemy(KindOrbiter, core.V(250, 250))
	d := g.addEnemy(KindDrifter, o.Body().Pos)
	d.Body().Vel = core.V(100, 0)

	res := g.Step(core.NewInputFrame())
	if !hasEvent(res.Events, core.EventImpact) {
		t.Fatalf("overlapping enemies should collide, events=%v", res.Events)
	}
	if !o.orbit.Pushing() {
		t.Error("orbiter should receive a push from the impact")
	}
}

func TestImpactKeepsStraightUnderMaxSpeed(t *testing.T) {
	g := newTestGame(Drift, 1)
	isolate(g)
	a := g.addEnemy(KindDrifter, core.V(200, 200))
	b := g.addEnemy(KindDrifter, core.V(210, 200))
	a.Body().Vel = core.V(0, a.straight.MaxSpeed)
	b.Body().Vel = core.V(-b.straight.MaxSpeed, 0)

	// Unclamped, a would leave at sqrt(1 + 0.8^2) times its top speed.
	g.collideEnemies(a, b)

	for _, e := range []*enemy{a, b} {
		if v := e.Body().Vel.Len(); v > e.straight.MaxSpeed+1e-9 {
			t.Errorf("enemy %d: speed %f above max %f", e.id, v, e.straight.MaxSpeed)
		}
	}
	if a.Body().Vel.X >= 0 {
		t.Errorf("a vel = %v, expected a push away from b", a.Body().Vel)
	}
}

func TestSwarmSpeedStaysBounded(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := newTestGame(Swarm, seed)
		for tick := 0; tick < 1500; tick++ {
			g.Step(Autopilot(g))
			for _, e := range g.enemies {
				if e.straight == nil || e.removed || e.straight.Bouncing() {
					continue
				}
				if v := e.Body().Vel.Len(); v > e.straight.MaxSpeed+1e-6 {
					t.Fatalf("seed %d tick %d: enemy %d speed %f above max %f",
						seed, tick, e.id, v, e.straight.MaxSpeed)
				}
			}
		}
	}
}

func TestEnemyFireCadence(t *testing.T) {
	g := newTestGame(Drift, 1)
	isolate(g)
	e := g.addEnemy(KindDrifter, core.V(200, 200))
	e.fireMs = 1

	g.Step(core.NewInputFrame())
	if len(g.bullets) != 1 || len(g.muzzles) != 1 {
		t.Fatalf("bullets=%d muzzles=%d, expected one shot with a flash", len(g.bullets), len(g.muzzles))
	}
	if e.fireMs < 250 {
		t.Errorf("next shot in %f ms, expected the configured interval", e.fireMs)
	}
}

func TestRenderHUD(t *testing.T) {
	g := newTestGame(Drift, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"Score: 0", "Lives: 5", "Wave 1"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	// 1200x800 world on a 78x21 playfield
	if got := screen.Get(40, 12); got != '↑' {
		t.Errorf("ship glyph = %q, expected '↑'", got)
	}

	g.gameOver = true
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := New(Drift)
	g.SetConfig(config.DefaultArenaConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})

	g.Step(core.NewInputFrame())
	if g.Ticks() != 0 {
		t.Error("too small screen should not simulate")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too small message")
	}

	g.Resize(80, 24)
	g.Step(core.NewInputFrame())
	if g.Ticks() != 1 {
		t.Errorf("Ticks() = %d after growing the window, expected 1", g.Ticks())
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		facing float64
		want   rune
	}{
		{0, '→'},
		{math.Pi / 4, '↗'},
		{math.Pi / 2, '↑'},
		{math.Pi, '←'},
		{-math.Pi, '←'},
		{-math.Pi / 2, '↓'},
		{-3 * math.Pi / 4, '↙'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.facing); got != tt.want {
			t.Errorf("headingGlyph(%f) = %q, expected %q", tt.facing, got, tt.want)
		}
	}
}

func TestAutopilotDodges(t *testing.T) {
	g := newTestGame(Drift, 1)
	frames := combat.Frames{Flight: []rune{'o'}}
	g.bullets = append(g.bullets, combat.NewBullet(g.player.body.Pos.Sub(core.V(50, 0)), core.V(420, 0), frames, 420))

	in := Autopilot(g)
	if !in.Has(core.ActionRight) || in.Has(core.ActionLeft) {
		t.Error("autopilot should flee away from the bullet")
	}
	if in.Has(core.ActionUp) || in.Has(core.ActionDown) {
		t.Error("a head-on threat needs no vertical thrust")
	}
	if !in.Has(core.ActionFire) {
		t.Error("autopilot always fires")
	}

	g.gameOver = true
	if !Autopilot(g).Has(core.ActionRestart) {
		t.Error("autopilot should restart after game over")
	}
}

func TestEnemyKindString(t *testing.T) {
	if KindDrifter.String() != "drifter" || KindWeaver.String() != "weaver" ||
		KindOrbiter.String() != "orbiter" || EnemyKind(9).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}

func TestSummaryRecord(t *testing.T) {
	g := newTestGame(Drift, 99)
	Simulate(g, 120, nil)
	sum := g.Summary()

	rec := sum.Record(storage.SourceSim)
	if rec.Scenario != "drift" || rec.Source != storage.SourceSim || rec.Seed != 99 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Ticks != sum.Ticks || rec.Hash != sum.Hash || rec.Score != sum.Score {
		t.Errorf("record %+v does not match summary %+v", rec, sum)
	}
}

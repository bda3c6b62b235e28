package arena

import "math"

// Snapshot contains the observable game state for determinism checks and
// run summaries. Uses primitive types only; positions are in milli-pixels.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lives    int
	Wave     int
	Kills    int
	GameOver bool

	PlayerX int
	PlayerY int

	// Each enemy is 6 ints: ID, Kind, X, Y, VX, VY
	EnemyCount int
	EnemyData  []int

	// Each bullet is 3 ints: State, X, Y
	BulletCount int
	BulletData  []int

	// Each laser is 2 ints: X, Y
	LaserCount int
	LaserData  []int
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	enemyData := make([]int, 0, len(g.enemies)*6)
	for _, e := range g.enemies {
		if e.removed {
			continue
		}
		b := e.Body()
		enemyData = append(enemyData, e.id, int(e.kind),
			milli(b.Pos.X), milli(b.Pos.Y), milli(b.Vel.X), milli(b.Vel.Y))
	}

	bulletData := make([]int, 0, len(g.bullets)*3)
	for _, b := range g.bullets {
		if b.Dead() {
			continue
		}
		bulletData = append(bulletData, int(b.State()), milli(b.Body().Pos.X), milli(b.Body().Pos.Y))
	}

	laserData := make([]int, 0, len(g.lasers)*2)
	for _, l := range g.lasers {
		if l.Dead() {
			continue
		}
		laserData = append(laserData, milli(l.Body().Pos.X), milli(l.Body().Pos.Y))
	}

	return Snapshot{
		Tick:     uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Score:    g.score,
		Lives:    g.player.hp.Lives(),
		Wave:     g.wave,
		Kills:    g.kills,
		GameOver: g.gameOver,

		PlayerX: milli(g.player.body.Pos.X),
		PlayerY: milli(g.player.body.Pos.Y),

		EnemyCount:  len(enemyData) / 6,
		EnemyData:   enemyData,
		BulletCount: len(bulletData) / 3,
		BulletData:  bulletData,
		LaserCount:  len(laserData) / 2,
		LaserData:   laserData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Wave)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Kills)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EnemyCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BulletCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LaserCount)  //#nosec G115 -- hash computation
	if snap.GameOver {
		h = h*31 + 1
	}

	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.BulletData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.LaserData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}

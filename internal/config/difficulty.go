package config

import "math"

// minFireIntervalMs keeps enemy fire dodgeable at full difficulty.
const minFireIntervalMs = 250

// DifficultyManager tracks the arena's difficulty level. The arena calls
// Update once per tick; the scaling helpers read the cached level so every
// lookup within a tick agrees.
type DifficultyManager struct {
	cfg   DifficultyConfig
	start float64
	level float64
}

// NewDifficultyManager creates a manager sitting at the initial level.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	start := clampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg, start: start, level: start}
}

// Progressive reports whether the level moves at all.
func (d *DifficultyManager) Progressive() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Update recomputes the level and returns it. The level climbs linearly
// from the initial level to 1 as the score (or elapsed ticks, for "time"
// progression) approaches Progression.MaxAt.
func (d *DifficultyManager) Update(score, ticks int) float64 {
	d.level = d.levelAt(score, ticks)
	return d.level
}

func (d *DifficultyManager) levelAt(score, ticks int) float64 {
	if !d.Progressive() {
		return d.start
	}

	var x float64
	switch d.cfg.Progression.Type {
	case "score":
		x = float64(score)
	case "time":
		x = float64(ticks)
	default:
		return d.start
	}

	maxAt := math.Max(float64(d.cfg.Progression.MaxAt), 1)
	return d.start + clampF(x/maxAt, 0, 1)*(1-d.start)
}

// Level returns the level computed by the last Update.
func (d *DifficultyManager) Level() float64 {
	return d.level
}

// Speed scales a base speed by up to 1 + SpeedMultiplier.
func (d *DifficultyManager) Speed(base float64) float64 {
	return base * (1 + d.level*d.cfg.Scaling.SpeedMultiplier)
}

// FireInterval shortens a base interval by up to FireReduction (capped at
// 90%), never below minFireIntervalMs.
func (d *DifficultyManager) FireInterval(baseMs float64) float64 {
	ms := baseMs * (1 - d.level*clampF(d.cfg.Scaling.FireReduction, 0, 0.9))
	return math.Max(ms, minFireIntervalMs)
}

// WaveSize adds up to ExtraEnemies to base, capped at maxEnemies.
func (d *DifficultyManager) WaveSize(base, maxEnemies int) int {
	return min(base+int(d.level*float64(d.cfg.Scaling.ExtraEnemies)), maxEnemies)
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

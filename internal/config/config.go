// Package config provides YAML-based arena configuration loading and
// difficulty management for the rocket arena.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/rocket-arcade/internal/combat"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/motion"
)

// ArenaConfig contains all configuration for the arena simulation.
type ArenaConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Bullets    BulletConfig     `yaml:"bullets"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Waves      WavesConfig      `yaml:"waves"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the playfield in world pixels.
type WorldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	CellSize float64 `yaml:"cell_size"` // spatial hash cell edge
}

// Rect returns the world rectangle anchored at the origin.
func (w WorldConfig) Rect() core.Rect {
	return core.NewRect(0, 0, w.Width, w.Height)
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	Lives          int     `yaml:"lives"`
	InvincibleMs   int64   `yaml:"invincible_ms"`
	FireCooldownMs float64 `yaml:"fire_cooldown_ms"`
	LaserSpeed     float64 `yaml:"laser_speed"`
	Barrels        int     `yaml:"barrels"` // 1 or 2 lasers per volley
}

// EnemyConfig defines both enemy kinds and their shared combat stats.
type EnemyConfig struct {
	Lives         int           `yaml:"lives"`
	InvincibleMs  int64         `yaml:"invincible_ms"`
	ContactDamage int           `yaml:"contact_damage"`
	Score         int           `yaml:"score"`
	Straight      StraightEnemy `yaml:"straight"`
	Orbit         OrbitEnemy    `yaml:"orbit"`
}

// StraightEnemy tunes the drifting enemy.
type StraightEnemy struct {
	Width           float64       `yaml:"width"`
	Height          float64       `yaml:"height"`
	Speed           float64       `yaml:"speed"`
	TurboMultiplier float64       `yaml:"turbo_multiplier"`
	TurnRate        float64       `yaml:"turn_rate"`
	RandomMotion    bool          `yaml:"random_motion"`
	NudgeMinMs      int           `yaml:"nudge_min_ms"`
	NudgeMaxMs      int           `yaml:"nudge_max_ms"`
	Pattern         PatternConfig `yaml:"pattern"`
	Magnet          MagnetConfig  `yaml:"magnet"`
	Gravity         GravityConfig `yaml:"gravity"`
	Bounce          BounceConfig  `yaml:"bounce"`
}

// PatternConfig defines the figure-8 path.
type PatternConfig struct {
	A      float64  `yaml:"a"`
	B      float64  `yaml:"b"`
	Period float64  `yaml:"period"`
	Phase  *float64 `yaml:"phase,omitempty"` // nil draws a random phase
}

// MagnetConfig defines target steering.
type MagnetConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Radius      float64 `yaml:"radius"`
	Strength    float64 `yaml:"strength"`
	MinDistance float64 `yaml:"min_distance"`
}

// GravityConfig defines a fixed gravity well.
type GravityConfig struct {
	Enabled  bool    `yaml:"enabled"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Strength float64 `yaml:"strength"`
}

// BounceConfig defines the wall response.
type BounceConfig struct {
	Simple       bool    `yaml:"simple"`
	Duration     float64 `yaml:"duration"`
	Strength     float64 `yaml:"strength"`
	Oscillations float64 `yaml:"oscillations"`
	Damping      float64 `yaml:"damping"`
	Restitution  float64 `yaml:"restitution"`
	Friction     float64 `yaml:"friction"`
}

// OrbitEnemy tunes the circling enemy.
type OrbitEnemy struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Radius       float64 `yaml:"radius"`
	AngularSpeed float64 `yaml:"angular_speed"`
	PushDuration float64 `yaml:"push_duration"`
	TurnRate     float64 `yaml:"turn_rate"`
	Score        int     `yaml:"score"`
}

// BulletConfig defines enemy fire and the player's laser.
type BulletConfig struct {
	Speed          float64      `yaml:"speed"`
	FireIntervalMs float64      `yaml:"fire_interval_ms"`
	HomingChance   float64      `yaml:"homing_chance"`
	HomingMs       float64      `yaml:"homing_ms"`
	Frames         FramesConfig `yaml:"frames"`
	LaserFrames    FramesConfig `yaml:"laser_frames"`
	Muzzle         string       `yaml:"muzzle"`
}

// FramesConfig lists animation glyphs per bullet state, one rune per frame.
type FramesConfig struct {
	Start   string `yaml:"start"`
	Flight  string `yaml:"flight"`
	Explode string `yaml:"explode"`
}

// Frames converts the glyph strings to rune slices.
func (f FramesConfig) Frames() combat.Frames {
	return combat.Frames{
		Start:   []rune(f.Start),
		Flight:  []rune(f.Flight),
		Explode: []rune(f.Explode),
	}
}

// Empty reports whether no state has any frame.
func (f FramesConfig) Empty() bool {
	return f.Start == "" && f.Flight == "" && f.Explode == ""
}

// PhysicsConfig defines enemy/enemy contact resolution.
type PhysicsConfig struct {
	Elasticity   float64 `yaml:"elasticity"`
	SeparateFrac float64 `yaml:"separate_frac"`
	PushScale    float64 `yaml:"push_scale"` // orbit push = velocity change * scale
}

// WavesConfig defines enemy spawning.
type WavesConfig struct {
	BaseCount   int     `yaml:"base_count"`
	PerWave     int     `yaml:"per_wave"`
	MaxEnemies  int     `yaml:"max_enemies"`
	SpawnMargin float64 `yaml:"spawn_margin"`
	SafeRadius  float64 `yaml:"safe_radius"` // no spawns this close to the player
	WaveBonus   int     `yaml:"wave_bonus"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to enemy speed at max difficulty
	FireReduction   float64 `yaml:"fire_reduction"`   // Fraction cut from the fire interval at max difficulty
	ExtraEnemies    int     `yaml:"extra_enemies"`    // Additional enemies per wave at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// StraightMotion converts the YAML tuning into a motion config.
func (s StraightEnemy) StraightMotion(path motion.PathType) motion.StraightConfig {
	cfg := motion.StraightConfig{
		Width:           s.Width,
		Height:          s.Height,
		Speed:           s.Speed,
		TurboMultiplier: s.TurboMultiplier,
		TurnRate:        s.TurnRate,
		RandomMotion:    s.RandomMotion,
		NudgeMinMs:      s.NudgeMinMs,
		NudgeMaxMs:      s.NudgeMaxMs,
		Path:            path,
		Pattern: motion.Pattern{
			A:      s.Pattern.A,
			B:      s.Pattern.B,
			Period: s.Pattern.Period,
		},
		Magnet: motion.Magnet(s.Magnet),
		Gravity: motion.Gravity{
			Enabled:  s.Gravity.Enabled,
			Center:   core.V(s.Gravity.X, s.Gravity.Y),
			Strength: s.Gravity.Strength,
		},
		Bounce: motion.Bounce(s.Bounce),
	}
	if s.Pattern.Phase != nil {
		cfg.Pattern.Phase = *s.Pattern.Phase
		cfg.Pattern.HasPhase = true
	}
	return cfg
}

// OrbitMotion converts the YAML tuning into a motion config.
func (o OrbitEnemy) OrbitMotion() motion.OrbitConfig {
	return motion.OrbitConfig{
		Width:        o.Width,
		Height:       o.Height,
		Radius:       o.Radius,
		AngularSpeed: o.AngularSpeed,
		PushDuration: o.PushDuration,
		TurnRate:     o.TurnRate,
	}
}

// Validate reports every field that would make the arena misbehave.
func (c ArenaConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world: size must be positive, got %vx%v", c.World.Width, c.World.Height)
	check(c.World.CellSize > 0, "world.cell_size must be positive, got %v", c.World.CellSize)

	check(c.Player.Width > 0 && c.Player.Height > 0, "player: size must be positive")
	check(c.Player.Lives > 0, "player.lives must be positive, got %d", c.Player.Lives)
	check(c.Player.Speed > 0, "player.speed must be positive")
	check(c.Player.InvincibleMs >= 0, "player.invincible_ms must not be negative")
	check(c.Player.Barrels == 1 || c.Player.Barrels == 2, "player.barrels must be 1 or 2, got %d", c.Player.Barrels)

	s := c.Enemy.Straight
	check(c.Enemy.Lives > 0, "enemy.lives must be positive, got %d", c.Enemy.Lives)
	check(s.Width > 0 && s.Height > 0, "enemy.straight: size must be positive")
	check(s.Speed > 0, "enemy.straight.speed must be positive")
	check(s.TurboMultiplier >= 1, "enemy.straight.turbo_multiplier must be at least 1")
	check(s.NudgeMinMs > 0 && s.NudgeMinMs <= s.NudgeMaxMs, "enemy.straight: nudge range [%d, %d] is invalid", s.NudgeMinMs, s.NudgeMaxMs)
	check(s.Pattern.Period > 0, "enemy.straight.pattern.period must be positive")
	check(s.Bounce.Duration > 0, "enemy.straight.bounce.duration must be positive")
	check(s.Bounce.Restitution >= 0 && s.Bounce.Friction >= 0 && s.Bounce.Friction <= 1,
		"enemy.straight.bounce: restitution must be >= 0 and friction in [0, 1]")
	check(!s.Magnet.Enabled || s.Magnet.Radius > s.Magnet.MinDistance,
		"enemy.straight.magnet.radius must exceed min_distance")

	o := c.Enemy.Orbit
	check(o.Width > 0 && o.Height > 0, "enemy.orbit: size must be positive")
	check(o.Radius > 0, "enemy.orbit.radius must be positive")
	check(2*o.Radius+o.Width < c.World.Width && 2*o.Radius+o.Height < c.World.Height,
		"enemy.orbit.radius %v does not fit the world", o.Radius)

	check(c.Bullets.Speed > 0, "bullets.speed must be positive")
	check(c.Bullets.FireIntervalMs > 0, "bullets.fire_interval_ms must be positive")
	check(c.Bullets.HomingChance >= 0 && c.Bullets.HomingChance <= 1, "bullets.homing_chance must be in [0, 1]")
	check(!c.Bullets.Frames.Empty(), "bullets.frames: at least one state needs frames")
	check(c.Bullets.LaserFrames.Flight != "", "bullets.laser_frames.flight must not be empty")

	check(c.Physics.Elasticity >= 0, "physics.elasticity must not be negative")
	check(c.Physics.SeparateFrac > 0 && c.Physics.SeparateFrac <= 1, "physics.separate_frac must be in (0, 1]")

	check(c.Waves.BaseCount > 0, "waves.base_count must be positive")
	check(c.Waves.MaxEnemies >= c.Waves.BaseCount, "waves.max_enemies must be at least base_count")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid arena: %w", errors.Join(errs...))
	}
	return nil
}

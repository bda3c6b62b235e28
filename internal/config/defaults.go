package config

import (
	_ "embed"

	"github.com/vovakirdan/rocket-arcade/internal/motion"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	straight := motion.DefaultStraightConfig()
	orbit := motion.DefaultOrbitConfig()

	return ArenaConfig{
		World: WorldConfig{
			Width:    1200,
			Height:   800,
			CellSize: 64,
		},
		Player: PlayerConfig{
			Width:          40,
			Height:         40,
			Speed:          320,
			Lives:          5,
			InvincibleMs:   3000,
			FireCooldownMs: 250,
			LaserSpeed:     900,
			Barrels:        2,
		},
		Enemy: EnemyConfig{
			Lives:         1,
			InvincibleMs:  0,
			ContactDamage: 1,
			Score:         100,
			Straight: StraightEnemy{
				Width:           straight.Width,
				Height:          straight.Height,
				Speed:           straight.Speed,
				TurboMultiplier: straight.TurboMultiplier,
				RandomMotion:    true,
				NudgeMinMs:      straight.NudgeMinMs,
				NudgeMaxMs:      straight.NudgeMaxMs,
				Pattern: PatternConfig{
					A:      straight.Pattern.A,
					B:      straight.Pattern.B,
					Period: straight.Pattern.Period,
				},
				Magnet: MagnetConfig(straight.Magnet),
				Gravity: GravityConfig{
					X:        600,
					Y:        400,
					Strength: 60,
				},
				Bounce: BounceConfig(straight.Bounce),
			},
			Orbit: OrbitEnemy{
				Width:        orbit.Width,
				Height:       orbit.Height,
				Radius:       orbit.Radius,
				AngularSpeed: orbit.AngularSpeed,
				PushDuration: orbit.PushDuration,
				Score:        150,
			},
		},
		Bullets: BulletConfig{
			Speed:          420,
			FireIntervalMs: 1800,
			HomingChance:   0.25,
			HomingMs:       1500,
			Frames: FramesConfig{
				Start:   ".oO",
				Flight:  "o",
				Explode: "@*+x+.",
			},
			LaserFrames: FramesConfig{
				Flight: "-",
			},
			Muzzle: "*+",
		},
		Physics: PhysicsConfig{
			Elasticity:   0.8,
			SeparateFrac: 0.66,
			PushScale:    1.0,
		},
		Waves: WavesConfig{
			BaseCount:   3,
			PerWave:     2,
			MaxEnemies:  12,
			SpawnMargin: 80,
			SafeRadius:  220,
			WaveBonus:   500,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3600,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				FireReduction:   0.5,
				ExtraEnemies:    4,
			},
		},
	}
}

package arena

import (
	"math/rand"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
)

// Scenario describes which enemies a game spawns and how the arena is tuned.
type Scenario struct {
	ID          string
	Title       string
	Description string

	// pick chooses the kind of the i-th enemy of a wave.
	pick func(rng *rand.Rand, i int) EnemyKind
	// tune adjusts the loaded config before the game starts.
	tune func(cfg *config.ArenaConfig)
}

func only(kind EnemyKind) func(*rand.Rand, int) EnemyKind {
	return func(*rand.Rand, int) EnemyKind { return kind }
}

// Built-in scenarios.
var (
	Drift = Scenario{
		ID:          "drift",
		Title:       "Drift",
		Description: "Drifters wander, home in on the ship and bounce off the walls",
		pick:        only(KindDrifter),
	}

	Figure8 = Scenario{
		ID:          "figure8",
		Title:       "Figure Eight",
		Description: "Weavers trace lemniscate patrol paths",
		pick:        only(KindWeaver),
	}

	Orbit = Scenario{
		ID:          "orbit",
		Title:       "Orbit",
		Description: "Orbiters circle fixed points with erratic pauses and dashes",
		pick:        only(KindOrbiter),
	}

	Swarm = Scenario{
		ID:          "swarm",
		Title:       "Swarm",
		Description: "Every enemy kind at once",
		pick: func(rng *rand.Rand, _ int) EnemyKind {
			switch r := rng.Float64(); {
			case r < 0.5:
				return KindDrifter
			case r < 0.75:
				return KindWeaver
			default:
				return KindOrbiter
			}
		},
	}

	Well = Scenario{
		ID:          "well",
		Title:       "Gravity Well",
		Description: "Drifters fall toward a gravity well instead of chasing the ship",
		pick:        only(KindDrifter),
		tune: func(cfg *config.ArenaConfig) {
			cfg.Enemy.Straight.Gravity.Enabled = true
			cfg.Enemy.Straight.Magnet.Enabled = false
		},
	}
)

// Scenarios lists the built-in scenarios in registration order.
func Scenarios() []Scenario {
	return []Scenario{Drift, Figure8, Orbit, Swarm, Well}
}

// Register the scenarios with the registry
func init() {
	for _, sc := range Scenarios() {
		registry.Register(sc.ID, func() registry.Game {
			return New(sc)
		})
	}
}

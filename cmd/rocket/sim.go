package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/arena"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

var (
	flagSimTicks  int
	flagSimRuns   int
	flagSimNoSave bool
	flagSimEvents bool
)

var simCmd = &cobra.Command{
	Use:   "sim <scenario>",
	Short: "Run a scenario headless under the autopilot",
	Long: `Simulate a scenario without a terminal. The autopilot flies the ship
until game over or until --ticks ticks have run. Runs with the same seed,
config and tick rate produce the same snapshot hash.

Examples:
  rocket sim drift
  rocket sim swarm --ticks 7200 --seed 42
  rocket sim orbit --runs 10 --no-save
  rocket sim well --events --log-level debug`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum ticks per run")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs, seeds counting up from --seed")
	simCmd.Flags().BoolVar(&flagSimNoSave, "no-save", false, "Do not record runs")
	simCmd.Flags().BoolVar(&flagSimEvents, "events", false, "Log every gameplay event at debug level")
}

func runSim(_ *cobra.Command, args []string) error {
	id := args[0]
	if err := requireScenario(id); err != nil {
		return err
	}
	if flagSimTicks <= 0 || flagSimRuns <= 0 {
		return fmt.Errorf("--ticks and --runs must be positive")
	}

	var store *storage.Store
	if !flagSimNoSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
	}

	var best arena.Summary
	for i := range flagSimRuns {
		cfg.Seed = seed + int64(i)

		sum, err := simulateOnce(id, cfg)
		if err != nil {
			return err
		}

		logger.Info("run finished",
			"scenario", sum.Scenario,
			"seed", sum.Seed,
			"score", sum.Score,
			"wave", sum.Wave,
			"kills", sum.Kills,
			"ticks", sum.Ticks,
			"lives", sum.LivesLeft,
			"game_over", sum.GameOver,
			"hash", fmt.Sprintf("%016x", sum.Hash),
		)

		if store != nil {
			if _, err := store.SaveRun(sum.Record(storage.SourceSim)); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
		if i == 0 || sum.Score > best.Score {
			best = sum
		}
	}

	if flagSimRuns > 1 {
		logger.Info("best run", "seed", best.Seed, "score", best.Score, "wave", best.Wave)
	}
	return nil
}

// simulateOnce runs one autopilot game of scenario id.
func simulateOnce(id string, cfg core.RuntimeConfig) (arena.Summary, error) {
	g, err := registry.Create(id)
	if err != nil {
		return arena.Summary{}, err
	}
	game, ok := g.(*arena.Game)
	if !ok {
		return arena.Summary{}, fmt.Errorf("scenario %q cannot be simulated", id)
	}
	game.Reset(cfg)

	var onTick func(core.StepResult)
	if flagSimEvents {
		onTick = func(res core.StepResult) {
			for _, ev := range res.Events {
				logger.Debug("event",
					"tick", ev.Tick,
					"kind", ev.Kind.String(),
					"x", int(ev.Pos.X),
					"y", int(ev.Pos.Y),
				)
			}
		}
	}

	return arena.Simulate(game, flagSimTicks, onTick), nil
}

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scenario picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a scenario.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select scenario
  Tab          - Recorded runs
  Q            - Quit

Examples:
  rocket menu
  rocket menu --fps 30
  rocket menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsRuns {
			goBack, err := tui.RunRunBoard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("run board failed", "error", err)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(result.ScenarioID)
		if err != nil {
			logger.Error("creating scenario", "scenario", result.ScenarioID, "error", err)
			continue
		}

		// A fresh seed per run unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg); err != nil {
			logger.Error("running scenario", "scenario", result.ScenarioID, "error", err)
		}
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <scenario>",
	Short: "Play a scenario",
	Long: `Start playing the specified scenario.

Controls:
  Arrows/WASD  - Thrust
  Space/F      - Fire
  P/Esc        - Pause
  R            - Restart (after game over)
  B            - Back (while paused or after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  rocket play drift
  rocket play swarm --difficulty hard
  rocket play orbit --seed 42
  rocket play well --config ./my-arena.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	id := args[0]
	if err := requireScenario(id); err != nil {
		return err
	}

	game, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("creating scenario: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}
	return nil
}

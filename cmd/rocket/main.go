// rocket plays and simulates arena scenarios in the terminal.
//
// Usage:
//
//	rocket list                - List available scenarios
//	rocket play <scenario>     - Play a scenario
//	rocket sim <scenario>      - Run a scenario headless under the autopilot
//	rocket runs [scenario]     - Show recorded runs
//	rocket menu                - Start menu to pick scenarios interactively
//	rocket serve               - Start SSH server for remote play
//	rocket config              - Show or write the arena config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.rocket-arcade/runs.db)
//	--config <path>       - Use a custom arena config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/arena"
	"github.com/vovakirdan/rocket-arcade/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// logger is configured from --log-level before any command runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "rocket",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rocket",
	Short: "Rocket Arcade - dodge and shoot through enemy waves in your terminal",
	Long: `Rocket Arcade is a terminal space shooter. Enemies drift, weave figure
eights and orbit around you; you thrust around the arena and shoot them down.

Available commands:
  list     - Show all scenarios
  play     - Play a scenario directly
  sim      - Run a scenario headless under the autopilot
  runs     - View recorded runs
  menu     - Interactive scenario picker
  serve    - Start SSH server for remote play
  config   - Show or write the arena config

Examples:
  rocket list
  rocket play swarm
  rocket sim orbit --ticks 3600 --seed 42
  rocket runs swarm
  rocket serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rocket-arcade/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging applies --log-level.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return nil
}

// setup applies the global flags shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	if err := setupLogging(cmd, args); err != nil {
		return err
	}

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	arena.SetDifficultyPreset(flagDifficulty)

	// Scenarios fall back to defaults on a bad file; fail loudly here instead
	if _, err := config.Load(flagConfig); err != nil {
		return err
	}
	arena.SetConfigPath(flagConfig)

	return nil
}

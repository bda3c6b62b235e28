package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/config"
)

var flagConfigWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the arena config",
	Long: `Print where the arena config is read from. With --write, writes the
built-in defaults to the user config path (or --config) for editing.

Examples:
  rocket config
  rocket config --write
  rocket config --write --config ./my-arena.yaml`,
	Args: cobra.NoArgs,
	// The file may not exist yet, so skip the global config check
	PersistentPreRunE: setupLogging,
	RunE:              runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigWrite, "write", false, "Write the default config")
}

func runConfig(_ *cobra.Command, _ []string) error {
	path := flagConfig
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		return fmt.Errorf("no user config directory available, pass --config")
	}

	if !flagConfigWrite {
		fmt.Printf("Config path: %s\n", path)
		if _, err := config.Load(flagConfig); err != nil {
			fmt.Printf("Config error: %v\n", err)
		}
		return nil
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}
	logger.Info("wrote default config", "path", path)
	return nil
}

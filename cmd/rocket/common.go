package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

// runtimeConfig builds the runtime config from the flags and the
// terminal size, defaulting to 80x24 when stdout is not a terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database. Games still work without it, so a
// failure is only logged.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// requireScenario fails with a hint when id is not registered.
func requireScenario(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown scenario %q (run 'rocket list' to see them)", id)
	}
	return nil
}

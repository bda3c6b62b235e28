// Package registry maps scenario IDs to factories. Scenario packages
// register from init, and the CLI, menu and SSH sessions look them up by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// Game is a playable scenario driven one fixed tick at a time. It knows
// nothing about terminals; the platform layer feeds it input frames and
// shows what it renders.
type Game interface {
	ID() string
	Title() string

	// Reset starts a fresh run. It is called before the first Step and on
	// every restart.
	Reset(cfg core.RuntimeConfig)

	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Describer is implemented by scenarios that carry a one-line summary.
type Describer interface {
	Description() string
}

// Info describes a registered scenario for menus and listings.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory returns a new, not yet Reset, scenario.
type Factory func() Game

type entry struct {
	factory Factory
	info    Info
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a scenario. Titles and descriptions are read once from a
// throwaway instance. Registering an ID twice panics.
func Register(id string, f Factory) {
	g := f()
	info := Info{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}
	entries[id] = entry{factory: f, info: info}
}

// List returns every registered scenario ordered by ID.
func List() []Info {
	mu.RLock()
	list := make([]Info, 0, len(entries))
	for _, e := range entries {
		list = append(list, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(list, func(a, b Info) int { return cmp.Compare(a.ID, b.ID) })
	return list
}

// Create returns a new instance of the scenario id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}

func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(entries, id)
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rocket-arcade/internal/arena"
	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

// summarizer is implemented by games that can describe a whole run.
type summarizer interface {
	Summary() arena.Summary
}

// resizer is implemented by games that can follow a terminal resize
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a scenario.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	source     string
	input      *heldInput
	keyMapper  *KeyMapper
	gameState  core.GameState
	ticks      int   // ticks stepped since the last reset
	tickID     int64 // tick chain this model steps on
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game. source tags
// the runs it records (see storage.SourcePlay and storage.SourceSSH).
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, source string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		source:    source,
		input:     newHeldInput(),
		keyMapper: NewKeyMapper(),
		tickID:    nextTickID(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.tickID)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.id != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to the menu only from a stopped game
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.saveRun()
			m.backToMenu = true
		}
		return m, nil
	}

	m.input.Press(action)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without Resize restart at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.ticks = 0
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	in := m.input.Frame()

	// Restart with a fresh seed so replays differ
	if in.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.ticks = 0
		m.runSaved = false
		m.input.Release()
		return m, tickCmd(m.config.TickRate, m.tickID)
	}

	result := m.game.Step(in)
	if !result.State.Paused && !result.State.GameOver {
		m.ticks++
	}
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveRun()
	}

	return m, tickCmd(m.config.TickRate, m.tickID)
}

// saveRun records the current run once. Runs that never started are skipped.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}

	rec := storage.RunRecord{
		Scenario: m.game.ID(),
		Seed:     m.config.Seed,
		Score:    m.gameState.Score,
		Ticks:    m.ticks,
		GameOver: m.gameState.GameOver,
	}
	if s, ok := m.game.(summarizer); ok {
		rec = s.Summary().Record(m.source)
	}
	rec.Source = m.source
	if rec.Ticks == 0 {
		return
	}
	m.runSaved = true

	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(rec)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".rocket-arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg, storage.SourcePlay)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

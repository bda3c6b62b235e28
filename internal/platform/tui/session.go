package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewRuns
)

// SessionModel is the top-level model of one SSH connection. It starts on
// the scenario menu and returns there whenever an arena run or the run
// board is left. Child models are swapped in place, and any tea.Quit they
// return on hand-over is dropped so only a real quit ends the session.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	logger   *log.Logger

	view sessionView
	menu MenuModel
	game *Model
	runs *RunBoardModel

	quitting bool
}

// NewSessionModel starts a session on the menu. store may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Remember the size so the next child starts with it
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewRuns:
		return m.updateRuns(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		return m.quit()
	}
	if m.menu.WantsRuns() {
		board := NewRunBoardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.runs, m.view = &board, viewRuns
		return m, board.Init()
	}
	if picked := m.menu.Selected(); picked != nil {
		return m.startGame(picked.ScenarioID)
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.log().Warn("unknown scenario", "scenario", id, "error", err)
		return m.toMenu()
	}

	m.config = m.menu.Config()
	m.config.Seed = time.Now().UnixNano()
	model := NewModel(game, m.store, m.config, storage.SourceSSH)
	m.game, m.view = &model, viewGame
	m.log().Info("scenario started", "user", m.username, "scenario", id, "seed", m.config.Seed)
	return m, model.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if model, ok := next.(Model); ok {
		m.game = &model
	}

	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		m.log().Info("scenario left", "user", m.username, "scenario", m.game.game.ID(),
			"score", m.game.gameState.Score, "ticks", m.game.ticks)
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.runs.Update(msg)
	if board, ok := next.(RunBoardModel); ok {
		m.runs = &board
	}

	switch {
	case m.runs.IsQuitting():
		return m.quit()
	case m.runs.IsGoingBack():
		m.runs = nil
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) log() *log.Logger {
	if m.logger != nil {
		return m.logger
	}
	return log.Default()
}

func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.view == viewGame && m.game != nil:
		return m.game.View()
	case m.view == viewRuns && m.runs != nil:
		return m.runs.View()
	}
	return m.menu.View()
}

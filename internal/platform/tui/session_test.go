package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sessionSend(m SessionModel, msg tea.Msg) SessionModel {
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	m := NewSessionModel(nil, testConfig(), "tester")
	m = sessionSend(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame || m.game == nil {
		t.Fatal("enter should start the selected scenario")
	}
	if m.game.game.ID() != "drift" || m.game.source != "ssh" {
		t.Errorf("started %q from %q", m.game.game.ID(), m.game.source)
	}

	m = sessionSend(m, TickMsg{id: m.game.tickID})
	m = sessionSend(m, runeKey('p'))
	m = sessionSend(m, TickMsg{id: m.game.tickID})
	m = sessionSend(m, runeKey('b'))

	if m.view != viewMenu || m.game != nil {
		t.Error("back from a paused game should return to the menu")
	}
	if !strings.Contains(m.View(), "Select a scenario") {
		t.Error("menu view expected after going back")
	}
}

func TestSessionRunBoard(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester")
	m = sessionSend(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewRuns || m.runs == nil {
		t.Fatal("tab should open the run board")
	}
	if !strings.Contains(m.View(), "RUNS") {
		t.Error("run board view expected")
	}

	m = sessionSend(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu || m.quitting {
		t.Error("esc on the board should return to the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "tester")
	next, cmd := m.Update(runeKey('q'))
	m = next.(SessionModel)
	if !m.quitting || cmd == nil || m.View() != "" {
		t.Error("q in the menu should end the session")
	}
}

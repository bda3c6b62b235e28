// Package tui runs the arena in a terminal: the Bubble Tea tick loop,
// key mapping, the scenario menu, the run board and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastTickID atomic.Int64

// nextTickID returns a fresh tick chain ID for a new game model.
func nextTickID() int64 {
	return lastTickID.Add(1)
}

// TickMsg is sent to trigger a simulation tick. Each game model only
// steps on ticks from its own chain, so a chain left running by a
// finished game cannot speed up the next one.
type TickMsg struct {
	id   int64
	Time time.Time
}

// tickCmd schedules the next tick of chain id at the given rate.
func tickCmd(tickRate int, id int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{id: id, Time: t}
	})
}

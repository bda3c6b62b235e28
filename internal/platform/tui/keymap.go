package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// holdTicks is how long a movement or fire key stays down after its last
// press. Terminals only report presses, so a held key shows up as the
// auto-repeat stream and the gaps between repeats have to be bridged.
const holdTicks = 8

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an arena action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "f":
		return core.ActionFire, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "b":
		return core.ActionBack, false
	case "enter":
		return core.ActionConfirm, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// held reports whether an action is sustained between key repeats.
func held(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire:
		return true
	}
	return false
}

// heldInput builds per-tick input frames from key presses. Movement and
// fire stay active for holdTicks after the last press; everything else
// fires once.
type heldInput struct {
	remaining map[core.Action]int
	once      core.InputFrame
}

func newHeldInput() *heldInput {
	return &heldInput{
		remaining: make(map[core.Action]int),
		once:      core.NewInputFrame(),
	}
}

// Press records a key press.
func (h *heldInput) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if held(a) {
		h.remaining[a] = holdTicks
		return
	}
	h.once.Set(a)
}

// Frame returns the input for the next tick and ages the held keys.
func (h *heldInput) Frame() core.InputFrame {
	frame := h.once.Clone()
	h.once.Clear()
	for a, n := range h.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
	return frame
}

// Release drops every held key.
func (h *heldInput) Release() {
	clear(h.remaining)
	h.once.Clear()
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionRuns
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRuns
	}
	return MenuActionNone
}

package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - thrust up
	ActionDown           // S, Down arrow - thrust down
	ActionLeft           // A, Left arrow - thrust left
	ActionRight          // D, Right arrow - thrust right
	ActionFire           // Space - fire lasers
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - back to the menu from a stopped game
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions active during one simulation tick.
// It is a bitset, so frames copy by value and compare with ==.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// bit is the action's flag; ActionNone and unknown actions have none.
func (a Action) bit() uint32 {
	if a <= ActionNone || a >= 32 {
		return 0
	}
	return 1 << uint(a)
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	f.bits |= a.bit()
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	return f.bits&a.bit() != 0
}

// Empty reports whether no action is active.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Thrust returns the unit-less direction implied by the movement actions.
// Opposing actions cancel out.
func (f InputFrame) Thrust() Vec2 {
	var d Vec2
	if f.Has(ActionLeft) {
		d.X--
	}
	if f.Has(ActionRight) {
		d.X++
	}
	if f.Has(ActionUp) {
		d.Y--
	}
	if f.Has(ActionDown) {
		d.Y++
	}
	return d
}

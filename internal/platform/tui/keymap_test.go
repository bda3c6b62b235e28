package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"w", runeKey('w'), core.ActionUp, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", runeKey(' '), core.ActionFire, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"b", runeKey('b'), core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)",
					tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('d'), &frame) {
		t.Error("d is not a quit key")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("frame should hold ActionRight")
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should report quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionRuns},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHeldInputSustainsMovement(t *testing.T) {
	h := newHeldInput()
	h.Press(core.ActionUp)

	for i := range holdTicks {
		if !h.Frame().Has(core.ActionUp) {
			t.Fatalf("up released early at tick %d", i)
		}
	}
	if h.Frame().Has(core.ActionUp) {
		t.Error("up should be released after holdTicks without a repeat")
	}
}

func TestHeldInputRepeatExtends(t *testing.T) {
	h := newHeldInput()
	h.Press(core.ActionFire)
	for range holdTicks - 1 {
		h.Frame()
	}
	h.Press(core.ActionFire)
	for range holdTicks - 1 {
		h.Frame()
	}
	if !h.Frame().Has(core.ActionFire) {
		t.Error("a repeat should restart the hold window")
	}
}

func TestHeldInputOneShot(t *testing.T) {
	h := newHeldInput()
	h.Press(core.ActionPause)
	h.Press(core.ActionNone)

	first := h.Frame()
	if !first.Has(core.ActionPause) {
		t.Error("pause should reach the next frame")
	}
	if first.Has(core.ActionNone) {
		t.Error("ActionNone should be ignored")
	}
	if h.Frame().Has(core.ActionPause) {
		t.Error("pause should fire only once")
	}
}

func TestHeldInputRelease(t *testing.T) {
	h := newHeldInput()
	h.Press(core.ActionLeft)
	h.Press(core.ActionRestart)
	h.Release()

	if f := h.Frame(); f.Has(core.ActionLeft) || f.Has(core.ActionRestart) {
		t.Error("Release should drop every pending action")
	}
}

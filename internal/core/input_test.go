package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionFire)
	f.Set(ActionLeft)
	f.Set(ActionNone)

	if !f.Has(ActionFire) || !f.Has(ActionLeft) {
		t.Error("set actions should be reported")
	}
	if f.Has(ActionRight) || f.Has(ActionNone) {
		t.Error("unset actions should not be reported")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !clone.Has(ActionFire) {
		t.Error("clone should keep its actions after the source frame is cleared")
	}
}

func TestInputFrameThrust(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
		want    Vec2
	}{
		{"none", nil, Vec2{}},
		{"up left", []Action{ActionUp, ActionLeft}, Vec2{X: -1, Y: -1}},
		{"down right", []Action{ActionDown, ActionRight}, Vec2{X: 1, Y: 1}},
		{"opposites cancel", []Action{ActionLeft, ActionRight, ActionUp}, Vec2{X: 0, Y: -1}},
		{"fire only", []Action{ActionFire}, Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tt.actions {
				f.Set(a)
			}
			if got := f.Thrust(); got != tt.want {
				t.Errorf("Thrust() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if ActionFire.String() != "Fire" || ActionPause.String() != "Pause" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}

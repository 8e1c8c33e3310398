package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) || !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionUp)
	f.Set(ActionCreateIce)
	if !f.Has(ActionUp) || !f.Has(ActionCreateIce) || f.Has(ActionDown) {
		t.Errorf("unexpected actions: %v", f.Actions)
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove every action")
	}
	if !clone.Has(ActionUp) {
		t.Error("Clone should not share storage")
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	m.Press(SlotP1, ActionLeft)
	m.Press(SlotP2, ActionBreakIce)
	m.Press(SlotP2, ActionDown)

	if !m.Player1().Has(ActionLeft) || m.Player1().Has(ActionDown) {
		t.Errorf("player 1 frame = %v", m.Player1().Actions)
	}
	if !m.Player2().Has(ActionBreakIce) || !m.Player2().Has(ActionDown) {
		t.Errorf("player 2 frame = %v", m.Player2().Actions)
	}

	clone := m.Clone()
	m.Clear()
	if !m.Player1().Empty() || !m.Player2().Empty() {
		t.Error("Clear should empty both slots")
	}
	if !clone.Player2().Has(ActionBreakIce) {
		t.Error("Clone should be deep")
	}

	var zero MultiInputFrame
	if !zero.Player(SlotP2).Empty() {
		t.Error("missing slot should read as empty")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionCreateIce: "CreateIce",
		ActionPause:     "Pause",
		Action(99):      "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("%d.String() = %q, expected %q", a, got, want)
		}
	}
}

func TestRuntimeConfigDt(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 30}).Dt(); got != 1.0/30.0 {
		t.Errorf("Dt() = %v", got)
	}
	if got := (RuntimeConfig{}).Dt(); got != 1.0/60.0 {
		t.Errorf("zero tick rate Dt() = %v, expected 1/60", got)
	}
}

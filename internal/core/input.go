package core

// Action is a semantic input, abstracted from the physical key that
// produced it.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W / Up arrow
	ActionDown             // S / Down arrow
	ActionLeft             // A / Left arrow
	ActionRight            // D / Right arrow
	ActionCreateIce        // Space (P1), Enter (P2)
	ActionBreakIce         // E (P1), / (P2)
	ActionConfirm          // Enter in menus
	ActionBack             // Esc
	ActionRestart          // R after the game ends
	ActionQuit             // Q, Ctrl+C
	ActionPause            // P
	ActionSave             // Ctrl+S
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionCreateIce: "CreateIce",
	ActionBreakIce:  "BreakIce",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
	ActionSave:      "Save",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame is the set of actions one player triggered during a tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether nothing was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Slot identifies one of the two local players.
type Slot int

const (
	SlotP1 Slot = iota
	SlotP2
)

// MultiInputFrame holds the input of both local players for one tick.
// Global actions (pause, quit, restart) are recorded on player one.
type MultiInputFrame struct {
	BySlot map[Slot]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		BySlot: make(map[Slot]InputFrame),
	}
}

// Player returns the frame of a slot, empty if it has no input.
func (m MultiInputFrame) Player(s Slot) InputFrame {
	if frame, ok := m.BySlot[s]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer replaces the frame of a slot.
func (m *MultiInputFrame) SetPlayer(s Slot, frame InputFrame) {
	if m.BySlot == nil {
		m.BySlot = make(map[Slot]InputFrame)
	}
	m.BySlot[s] = frame
}

// Press records one action for a slot.
func (m *MultiInputFrame) Press(s Slot, a Action) {
	frame := m.Player(s)
	frame.Set(a)
	m.SetPlayer(s, frame)
}

// Player1 returns player one's frame.
func (m MultiInputFrame) Player1() InputFrame { return m.Player(SlotP1) }

// Player2 returns player two's frame.
func (m MultiInputFrame) Player2() InputFrame { return m.Player(SlotP2) }

// Clear resets every slot for the next frame.
func (m *MultiInputFrame) Clear() {
	for s := range m.BySlot {
		frame := m.BySlot[s]
		frame.Clear()
		m.BySlot[s] = frame
	}
}

// Clone creates a deep copy.
func (m MultiInputFrame) Clone() MultiInputFrame {
	clone := NewMultiInputFrame()
	for s, frame := range m.BySlot {
		clone.BySlot[s] = frame.Clone()
	}
	return clone
}

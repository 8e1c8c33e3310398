package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/icearena/internal/core"
)

// GameKeyMap holds the in-game bindings. Player one uses WASD, player two
// the arrow keys; global keys are recorded on player one's slot.
type GameKeyMap struct {
	P1Up     key.Binding
	P1Down   key.Binding
	P1Left   key.Binding
	P1Right  key.Binding
	P1Create key.Binding
	P1Break  key.Binding

	P2Up     key.Binding
	P2Down   key.Binding
	P2Left   key.Binding
	P2Right  key.Binding
	P2Create key.Binding
	P2Break  key.Binding

	Pause   key.Binding
	Restart key.Binding
	Save    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		P1Up:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "p1 up")),
		P1Down:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "p1 down")),
		P1Left:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "p1 left")),
		P1Right:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "p1 right")),
		P1Create: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "p1 ice")),
		P1Break:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "p1 break")),

		P2Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "p2 up")),
		P2Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "p2 down")),
		P2Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "p2 left")),
		P2Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "p2 right")),
		P2Create: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "p2 ice")),
		P2Break:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "p2 break")),

		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Save, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Up, k.P1Down, k.P1Left, k.P1Right, k.P1Create, k.P1Break},
		{k.P2Up, k.P2Down, k.P2Left, k.P2Right, k.P2Create, k.P2Break},
		{k.Pause, k.Restart, k.Save, k.Back, k.Quit},
	}
}

type slotBinding struct {
	binding key.Binding
	slot    core.Slot
	action  core.Action
}

func (k GameKeyMap) playerBindings() []slotBinding {
	return []slotBinding{
		{k.P1Up, core.SlotP1, core.ActionUp},
		{k.P1Down, core.SlotP1, core.ActionDown},
		{k.P1Left, core.SlotP1, core.ActionLeft},
		{k.P1Right, core.SlotP1, core.ActionRight},
		{k.P1Create, core.SlotP1, core.ActionCreateIce},
		{k.P1Break, core.SlotP1, core.ActionBreakIce},
		{k.P2Up, core.SlotP2, core.ActionUp},
		{k.P2Down, core.SlotP2, core.ActionDown},
		{k.P2Left, core.SlotP2, core.ActionLeft},
		{k.P2Right, core.SlotP2, core.ActionRight},
		{k.P2Create, core.SlotP2, core.ActionCreateIce},
		{k.P2Break, core.SlotP2, core.ActionBreakIce},
		{k.Pause, core.SlotP1, core.ActionPause},
		{k.Restart, core.SlotP1, core.ActionRestart},
	}
}

// Apply records the game actions a key triggers into frame and reports
// whether the key was bound to any. Enter also confirms on player one's
// slot so it restarts a finished game.
func (k GameKeyMap) Apply(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	bound := false
	for _, b := range k.playerBindings() {
		if key.Matches(msg, b.binding) {
			frame.Press(b.slot, b.action)
			bound = true
		}
	}
	if key.Matches(msg, k.P2Create) {
		frame.Press(core.SlotP1, core.ActionConfirm)
	}
	return bound
}

// MenuKeyMap holds the menu and form bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/h", "change")),
		Right:  key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/l", "change")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Delete: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Delete, k.Back, k.Quit},
	}
}

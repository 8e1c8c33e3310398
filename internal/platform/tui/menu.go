package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/icearena/internal/config"
	"github.com/vovakirdan/icearena/internal/core"
	gamecore "github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/players"
	"github.com/vovakirdan/icearena/internal/registry"
	"github.com/vovakirdan/icearena/internal/saves"
)

// MenuAction is what the user picked in the menu.
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuPlay
	MenuResume
	MenuScores
	MenuQuit
)

// Choice is the game setup picked on the new game form.
type Choice struct {
	Mode       gamecore.Mode
	LevelID    string
	Flavors    [2]players.Flavor
	Difficulty config.DifficultyPreset // empty keeps the configured opponent
}

// Apply writes the choice into cfg.
func (c Choice) Apply(cfg *config.IceArenaConfig) {
	cfg.Session.Mode = string(c.Mode)
	cfg.Session.Level = c.LevelID
	cfg.Players.P1.Flavor = string(c.Flavors[0])
	cfg.Players.P2.Flavor = string(c.Flavors[1])
	if c.Difficulty != "" {
		config.ApplyPreset(cfg, c.Difficulty)
	}
}

// ChoiceFromConfig is the form's starting point.
func ChoiceFromConfig(cfg config.IceArenaConfig) Choice {
	c := Choice{
		Mode:       gamecore.Mode(strings.ToUpper(cfg.Session.Mode)),
		LevelID:    cfg.Session.Level,
		Difficulty: cfg.Difficulty,
	}
	for i, name := range []string{cfg.Players.P1.Flavor, cfg.Players.P2.Flavor} {
		if f, ok := players.ParseFlavor(name); ok {
			c.Flavors[i] = f
		} else {
			c.Flavors[i] = players.Flavors[i]
		}
	}
	return c
}

type menuScreen int

const (
	screenMain menuScreen = iota
	screenSetup
	screenSaves
)

var mainItems = []string{"New game", "Continue", "High scores", "Quit"}

// formField is one row of the new game form, cycled with left and right.
type formField struct {
	label   string
	options []string
	index   int
}

func (f formField) value() string {
	if len(f.options) == 0 {
		return ""
	}
	return f.options[f.index]
}

func (f *formField) shift(delta int) {
	n := len(f.options)
	if n == 0 {
		return
	}
	f.index = (f.index + delta + n) % n
}

func newField(label string, options []string, current string) formField {
	f := formField{label: label, options: options}
	for i, o := range options {
		if strings.EqualFold(o, current) {
			f.index = i
		}
	}
	return f
}

// Form rows.
const (
	fieldMode = iota
	fieldLevel
	fieldP1Flavor
	fieldP2Flavor
	fieldDifficulty
	fieldStart
)

// MenuModel is the Bubble Tea model of the main menu, the new game form
// and the save slot picker.
type MenuModel struct {
	screen  menuScreen
	cursor  int
	fields  []formField
	slots   []*saves.Slot
	saves   *saves.Service
	keys    MenuKeyMap
	help    help.Model
	theme   Theme
	width   int
	height  int
	config  core.RuntimeConfig
	message string
	result  MenuResult
	done    bool
}

// NewMenuModel creates a menu starting from the configured setup. svc may
// be nil, which hides saved games.
func NewMenuModel(cfg core.RuntimeConfig, base config.IceArenaConfig, svc *saves.Service) MenuModel {
	return MenuModel{
		fields: choiceFields(ChoiceFromConfig(base)),
		saves:  svc,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		theme:  DefaultTheme(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

func choiceFields(c Choice) []formField {
	modes := make([]string, len(gamecore.Modes))
	for i, m := range gamecore.Modes {
		modes[i] = string(m)
	}
	var levels []string
	for _, l := range registry.List() {
		levels = append(levels, l.ID)
	}
	flavors := make([]string, len(players.Flavors))
	for i, f := range players.Flavors {
		flavors[i] = string(f)
	}
	difficulties := []string{"config"}
	for _, d := range config.DifficultyPresets {
		difficulties = append(difficulties, string(d))
	}
	difficulty := string(c.Difficulty)
	if difficulty == "" {
		difficulty = "config"
	}

	return []formField{
		fieldMode:       newField("Mode", modes, string(c.Mode)),
		fieldLevel:      newField("Level", levels, c.LevelID),
		fieldP1Flavor:   newField("Player 1", flavors, string(c.Flavors[0])),
		fieldP2Flavor:   newField("Player 2", flavors, string(c.Flavors[1])),
		fieldDifficulty: newField("Difficulty", difficulties, difficulty),
		fieldStart:      {label: "Start"},
	}
}

// WithMessage shows text under the menu until the next key press.
func (m MenuModel) WithMessage(text string) MenuModel {
	m.message = text
	return m
}

// Choice returns the setup currently shown on the form.
func (m MenuModel) Choice() Choice {
	c := Choice{
		Mode:    gamecore.Mode(m.fields[fieldMode].value()),
		LevelID: m.fields[fieldLevel].value(),
		Flavors: [2]players.Flavor{
			players.Flavor(m.fields[fieldP1Flavor].value()),
			players.Flavor(m.fields[fieldP2Flavor].value()),
		},
	}
	if d := m.fields[fieldDifficulty].value(); d != "config" {
		c.Difficulty = config.DifficultyPreset(d)
	}
	return c
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m.finish(MenuQuit)
		}
		switch m.screen {
		case screenSetup:
			return m.updateSetup(msg)
		case screenSaves:
			return m.updateSaves(msg)
		default:
			return m.updateMain(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) finish(action MenuAction) (tea.Model, tea.Cmd) {
	m.done = true
	m.result.Action = action
	m.result.Config = m.config
	return m, tea.Quit
}

func (m MenuModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(len(mainItems)-1, m.cursor+1)
	case key.Matches(msg, m.keys.Back):
		return m.finish(MenuQuit)
	case key.Matches(msg, m.keys.Select):
		switch m.cursor {
		case 0:
			m.screen, m.cursor = screenSetup, 0
		case 1:
			if m.saves == nil {
				m.message = "Saved games are not available"
				return m, nil
			}
			m.loadSlots()
			m.screen, m.cursor = screenSaves, 0
		case 2:
			return m.finish(MenuScores)
		default:
			return m.finish(MenuQuit)
		}
	}
	return m, nil
}

func (m MenuModel) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(len(m.fields)-1, m.cursor+1)
	case key.Matches(msg, m.keys.Left):
		m.fields[m.cursor].shift(-1)
	case key.Matches(msg, m.keys.Right):
		m.fields[m.cursor].shift(1)
	case key.Matches(msg, m.keys.Back):
		m.screen, m.cursor = screenMain, 0
	case key.Matches(msg, m.keys.Select):
		if m.cursor != fieldStart {
			m.fields[m.cursor].shift(1)
			return m, nil
		}
		m.result.Choice = m.Choice()
		return m.finish(MenuPlay)
	}
	return m, nil
}

func (m MenuModel) updateSaves(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = max(0, min(len(m.slots)-1, m.cursor+1))
	case key.Matches(msg, m.keys.Back):
		m.screen, m.cursor = screenMain, 1
	case key.Matches(msg, m.keys.Delete):
		if len(m.slots) == 0 {
			return m, nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		slot := m.slots[m.cursor]
		if err := m.saves.Delete(ctx, slot.ID); err != nil {
			m.message = "Delete failed: " + err.Error()
			return m, nil
		}
		m.message = "Deleted " + slot.Name
		m.loadSlots()
		m.cursor = max(0, min(m.cursor, len(m.slots)-1))
	case key.Matches(msg, m.keys.Select):
		if len(m.slots) == 0 {
			return m, nil
		}
		m.result.SaveID = m.slots[m.cursor].ID
		return m.finish(MenuResume)
	}
	return m, nil
}

func (m *MenuModel) loadSlots() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	slots, err := m.saves.List(ctx)
	if err != nil {
		m.message = "Could not list saves: " + err.Error()
		m.slots = nil
		return
	}
	m.slots = slots
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("❄  I C E   A R E N A  ❄"), m.width))
	b.WriteString("\n\n")

	switch m.screen {
	case screenSetup:
		m.viewSetup(&b)
	case screenSaves:
		m.viewSaves(&b)
	default:
		m.viewMain(&b)
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.Error.Render(m.message), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Help.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m MenuModel) item(i int, text string) string {
	if i == m.cursor {
		return m.theme.ItemActive.Render("> " + text + " ")
	}
	return m.theme.ItemNormal.Render("  " + text + " ")
}

func (m MenuModel) viewMain(b *strings.Builder) {
	b.WriteString(centerText(m.theme.Subtitle.Render("Collect the fruit, dodge the monsters"), m.width))
	b.WriteString("\n\n")
	for i, text := range mainItems {
		b.WriteString(centerText(m.item(i, text), m.width))
		b.WriteString("\n")
	}
}

func (m MenuModel) viewSetup(b *strings.Builder) {
	b.WriteString(centerText(m.theme.Subtitle.Render("New game"), m.width))
	b.WriteString("\n\n")

	var rows strings.Builder
	for i, f := range m.fields {
		if i == fieldStart {
			rows.WriteString("\n")
			rows.WriteString(m.item(i, f.label))
			continue
		}
		line := fmt.Sprintf("%-11s ‹ %s ›", f.label, m.theme.Value.Render(f.value()))
		rows.WriteString(m.item(i, line))
		rows.WriteString("\n")
	}
	b.WriteString(centerBlock(m.theme.Box.Render(rows.String()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Description.Render(modeDescription(gamecore.Mode(m.fields[fieldMode].value()))), m.width))
	b.WriteString("\n")
}

func modeDescription(mode gamecore.Mode) string {
	switch mode {
	case gamecore.ModeSingle:
		return "One player clears every wave before time runs out"
	case gamecore.ModePVP:
		return "Two players on one keyboard race for fruit"
	case gamecore.ModePVM:
		return "You against a bot"
	case gamecore.ModeMVM:
		return "Watch two bots play"
	}
	return ""
}

func (m MenuModel) viewSaves(b *strings.Builder) {
	b.WriteString(centerText(m.theme.Subtitle.Render("Continue a saved game"), m.width))
	b.WriteString("\n\n")
	if len(m.slots) == 0 {
		b.WriteString(centerText(m.theme.Description.Render("No saved games yet. Press ctrl+s while playing."), m.width))
		b.WriteString("\n")
		return
	}
	for i, s := range m.slots {
		line := fmt.Sprintf("%-24s %-6s %-8s %6d  %s",
			truncate(s.Name, 24), s.Mode, s.LevelID, s.Score, s.UpdatedAt.Local().Format("Jan 02 15:04"))
		b.WriteString(centerText(m.item(i, line), m.width))
		b.WriteString("\n")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Result returns what the user picked once the menu has finished.
func (m MenuModel) Result() MenuResult {
	return m.result
}

// Done reports whether the user left the menu.
func (m MenuModel) Done() bool {
	return m.done
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Action MenuAction
	Choice Choice
	SaveID string
	Config core.RuntimeConfig
}

// RunMenu runs the menu in its own program. message, when set, is shown
// until the first key press.
func RunMenu(cfg core.RuntimeConfig, base config.IceArenaConfig, svc *saves.Service, message string) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, base, svc).WithMessage(message),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return MenuResult{Action: MenuQuit, Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok || !m.Done() {
		return MenuResult{Action: MenuQuit, Config: cfg}, nil
	}
	return m.Result(), nil
}

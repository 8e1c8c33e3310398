package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/icearena/internal/core"
	"github.com/vovakirdan/icearena/internal/saves"
	"github.com/vovakirdan/icearena/internal/storage"
)

// Game is what the terminal loop drives.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.MultiInputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Scorer is implemented by games that report final results per player.
type Scorer interface {
	ScoreEntries() []storage.ScoreEntry
}

// Saveable is implemented by games whose session can go into a save slot.
type Saveable interface {
	SaveInput() (saves.SaveInput, error)
}

// noticeTicks is how long a status notice stays on screen.
const noticeTicks = 120

// Options wires a Model to persistence. Every field is optional.
type Options struct {
	Store  *storage.Store
	Saves  *saves.Service
	Logger *log.Logger
}

// savedMsg reports the outcome of a save started with ctrl+s.
type savedMsg struct {
	slot *saves.Slot
	err  error
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	saves      *saves.Service
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	input      core.MultiInputFrame
	state      core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // scores of the current finished game are recorded
	notice     string
	noticeLeft int
}

// NewModel creates a model for game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  opts.Store,
		saves:  opts.Saves,
		logger: logger,
		config: cfg,
		keys:   DefaultGameKeyMap(),
		input:  core.NewMultiInputFrame(),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game keeps running; it redraws for the new size.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case savedMsg:
		if msg.err != nil {
			m.logger.Error("save failed", "game", m.game.ID(), "err", msg.err)
			m.setNotice("Save failed: " + msg.err.Error())
		} else {
			m.logger.Info("game saved", "slot", msg.slot.ID)
			m.setNotice(fmt.Sprintf("Saved as %s", msg.slot.ID))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()
	}

	m.keys.Apply(msg, &m.input)
	return m, nil
}

// saveCmd captures the session now and stores it in the background.
func (m *Model) saveCmd() tea.Cmd {
	sg, ok := m.game.(Saveable)
	if !ok || m.saves == nil {
		m.setNotice("Saving is not available")
		return nil
	}
	in, err := sg.SaveInput()
	if err != nil {
		m.setNotice("Nothing to save: " + err.Error())
		return nil
	}
	svc := m.saves
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slot, err := svc.Save(ctx, in)
		return savedMsg{slot: slot, err: err}
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeLeft = noticeTicks
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input)
	m.state = result.State

	if m.state.GameOver && !m.scoreSaved {
		m.recordScores()
		m.scoreSaved = true
	} else if !m.state.GameOver {
		m.scoreSaved = false
	}

	if m.noticeLeft > 0 {
		m.noticeLeft--
		if m.noticeLeft == 0 {
			m.notice = ""
		}
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordScores stores the final results once per finished game.
func (m *Model) recordScores() {
	sc, ok := m.game.(Scorer)
	if !ok || m.store == nil {
		return
	}
	for _, e := range sc.ScoreEntries() {
		if _, err := m.store.SaveScore(e); err != nil {
			m.logger.Warn("could not record score", "player", e.Player, "err", err)
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.notice != "" && m.screen.Height() > 0 {
		y := m.screen.Height() - 1
		m.screen.DrawHLine(0, y, m.screen.Width(), ' ', core.ColorDefault)
		m.screen.DrawTextCenteredWithColor(y, m.notice, core.ColorBrightGreen)
	}
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.state
}

// Notice returns the status line shown over the help row.
func (m Model) Notice() string {
	return m.notice
}

// backModel quits the program when the user goes back; used for local runs
// where the menu lives in its own program.
type backModel struct{ Model }

func (b backModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := b.Model.Update(msg)
	b.Model = next.(Model)
	if b.Model.BackToMenu() {
		return b, tea.Quit
	}
	return b, cmd
}

// Run plays game until the user quits or goes back. It reports whether the
// user asked to quit entirely.
func Run(game Game, cfg core.RuntimeConfig, opts Options) (quit bool, err error) {
	p := tea.NewProgram(
		backModel{NewModel(game, cfg, opts)},
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	b, ok := final.(backModel)
	if !ok {
		return true, nil
	}
	return b.IsQuitting(), nil
}

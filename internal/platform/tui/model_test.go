package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/icearena/internal/core"
	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/pkg/clock"
	"github.com/vovakirdan/icearena/internal/pkg/idgen"
	"github.com/vovakirdan/icearena/internal/saves"
	"github.com/vovakirdan/icearena/internal/storage"
)

// fakeGame records what the loop hands it.
type fakeGame struct {
	resets  int
	steps   []core.MultiInputFrame
	state   core.GameState
	entries []storage.ScoreEntry
	saveIn  saves.SaveInput
	saveErr error
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *fakeGame) Step(in core.MultiInputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "FAKE ARENA")
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) ScoreEntries() []storage.ScoreEntry { return g.entries }

func (g *fakeGame) SaveInput() (saves.SaveInput, error) { return g.saveIn, g.saveErr }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newSaves(t *testing.T, store *storage.Store) *saves.Service {
	t.Helper()
	repo, err := saves.NewSQLiteRepository(store)
	require.NoError(t, err)
	svc, err := saves.NewService(&saves.Config{
		Repository: repo,
		Clock:      &clock.Fixed{T: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)},
		IDGen:      idgen.NewSequential("save"),
	})
	require.NoError(t, err)
	return svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestModelForwardsInputOnTick(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, testConfig(), Options{})
	m.Init()
	assert.Equal(t, 1, g.resets)

	m, _ = update(t, m, runes("d"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := update(t, m, TickMsg(time.Now()))
	assert.NotNil(t, cmd, "tick should schedule the next tick")

	require.Len(t, g.steps, 1)
	assert.True(t, g.steps[0].Player1().Has(core.ActionRight))
	assert.True(t, g.steps[0].Player2().Has(core.ActionUp))

	// Input is cleared after every tick.
	update(t, m, TickMsg(time.Now()))
	require.Len(t, g.steps, 2)
	assert.True(t, g.steps[1].Player1().Empty())
}

func TestModelQuitAndBack(t *testing.T) {
	m := NewModel(&fakeGame{}, testConfig(), Options{})

	back, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, back.BackToMenu())
	assert.False(t, back.IsQuitting())
	assert.Nil(t, cmd)

	quit, cmd := update(t, m, runes("q"))
	assert.True(t, quit.IsQuitting())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, quit.View())
}

func TestModelRecordsScoresOncePerGame(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{
		state: core.GameState{GameOver: true},
		entries: []storage.ScoreEntry{
			{Mode: "PVP", LevelID: "LEVEL_1", Player: "Ann", Score: 300},
			{Mode: "PVP", LevelID: "LEVEL_1", Player: "Ben", Score: 100},
		},
	}
	m := NewModel(g, testConfig(), Options{Store: store})

	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))
	scores, err := store.TopScores("PVP", 10)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "Ann", scores[0].Player)

	// A restarted game that ends again records again.
	g.state = core.GameState{}
	m, _ = update(t, m, TickMsg(time.Now()))
	g.state = core.GameState{GameOver: true}
	update(t, m, TickMsg(time.Now()))
	scores, err = store.TopScores("PVP", 10)
	require.NoError(t, err)
	assert.Len(t, scores, 4)
}

func TestModelSave(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{saveIn: saves.SaveInput{Mode: "PVM", LevelID: "LEVEL_2", Score: 40, Data: []byte(`{"status":"PLAYING"}`)}}
	m := NewModel(g, testConfig(), Options{Store: store, Saves: newSaves(t, store)})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "Saved as save_1", m.Notice())
	assert.Contains(t, m.View(), "Saved as save_1")

	slot, err := store.GetSlot(t.Context(), "save_1")
	require.NoError(t, err)
	assert.Equal(t, "LEVEL_2", slot.LevelID)

	// The notice fades after a while.
	for range noticeTicks {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	assert.Empty(t, m.Notice())
}

func TestModelSaveUnavailable(t *testing.T) {
	m := NewModel(&fakeGame{}, testConfig(), Options{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Equal(t, "Saving is not available", m.Notice())

	store := openStore(t)
	g := &fakeGame{saveErr: errors.InvalidArgument("no game in progress")}
	m = NewModel(g, testConfig(), Options{Saves: newSaves(t, store)})
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Contains(t, m.Notice(), "Nothing to save")
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, testConfig(), Options{})
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 1, g.resets)
	assert.Contains(t, m.View(), "FAKE ARENA")
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(10, 2)
	scr.DrawTextWithColor(0, 0, "ice", core.ColorIce)
	scr.DrawTextWithColor(4, 0, "pink", core.ColorPink)
	out := RenderScreen(scr)
	assert.Contains(t, out, "ice")
	assert.Contains(t, out, "pink")
}

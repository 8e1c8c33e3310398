package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/icearena/internal/config"
	gamecore "github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/players"
	"github.com/vovakirdan/icearena/internal/saves"
)

func menuUpdate(t *testing.T, m MenuModel, msgs ...tea.Msg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(MenuModel)
		require.True(t, ok)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestChoiceFromConfig(t *testing.T) {
	cfg := config.DefaultIceArenaConfig()
	c := ChoiceFromConfig(cfg)
	assert.Equal(t, gamecore.ModePVM, c.Mode)
	assert.Equal(t, "LEVEL_1", c.LevelID)
	assert.Equal(t, [2]players.Flavor{players.FlavorVanilla, players.FlavorChocolate}, c.Flavors)
	assert.Empty(t, c.Difficulty)

	cfg.Players.P2.Flavor = "mint"
	assert.Equal(t, players.Flavors[1], ChoiceFromConfig(cfg).Flavors[1])
}

func TestChoiceApply(t *testing.T) {
	cfg := config.DefaultIceArenaConfig()
	Choice{
		Mode:       gamecore.ModePVP,
		LevelID:    "LEVEL_3",
		Flavors:    [2]players.Flavor{players.FlavorStrawberry, players.FlavorVanilla},
		Difficulty: config.DifficultyExpert,
	}.Apply(&cfg)

	assert.Equal(t, "PVP", cfg.Session.Mode)
	assert.Equal(t, "LEVEL_3", cfg.Session.Level)
	assert.Equal(t, "STRAWBERRY", cfg.Players.P1.Flavor)
	assert.Equal(t, "VANILLA", cfg.Players.P2.Flavor)
	assert.Equal(t, 120.0, cfg.Session.MaxTime)
	assert.Equal(t, "freeze", cfg.Session.RippleOnWave)

	// Without a difficulty the configured opponent is kept.
	cfg = config.DefaultIceArenaConfig()
	Choice{Mode: gamecore.ModeSingle, LevelID: "LEVEL_1"}.Apply(&cfg)
	assert.Equal(t, 180.0, cfg.Session.MaxTime)
	assert.Empty(t, cfg.Difficulty)
}

func TestMenuNewGameForm(t *testing.T) {
	m := NewMenuModel(testConfig(), config.DefaultIceArenaConfig(), nil)
	assert.Contains(t, m.View(), "New game")

	// Enter the form, move the mode from PVM to MVM, then start.
	m = menuUpdate(t, m, keyEnter)
	assert.Contains(t, m.View(), "Difficulty")
	m = menuUpdate(t, m, keyRight)
	assert.Equal(t, gamecore.ModeMVM, m.Choice().Mode)

	m = menuUpdate(t, m, keyDown, keyDown, keyDown, keyDown, keyRight)
	assert.Equal(t, config.DifficultyEasy, m.Choice().Difficulty)

	m = menuUpdate(t, m, keyDown, keyEnter)
	require.True(t, m.Done())
	res := m.Result()
	assert.Equal(t, MenuPlay, res.Action)
	assert.Equal(t, gamecore.ModeMVM, res.Choice.Mode)
	assert.Equal(t, config.DifficultyEasy, res.Choice.Difficulty)
	assert.Equal(t, 40, res.Config.ScreenW)
}

func TestMenuBackAndQuit(t *testing.T) {
	m := NewMenuModel(testConfig(), config.DefaultIceArenaConfig(), nil)
	m = menuUpdate(t, m, keyEnter, keyEsc)
	assert.False(t, m.Done())
	assert.Contains(t, m.View(), "High scores")

	m = menuUpdate(t, m, keyDown, keyDown, keyEnter)
	require.True(t, m.Done())
	assert.Equal(t, MenuScores, m.Result().Action)

	m = menuUpdate(t, NewMenuModel(testConfig(), config.DefaultIceArenaConfig(), nil), runes("q"))
	assert.Equal(t, MenuQuit, m.Result().Action)
}

func TestMenuContinueWithoutSaves(t *testing.T) {
	m := NewMenuModel(testConfig(), config.DefaultIceArenaConfig(), nil)
	m = menuUpdate(t, m, keyDown, keyEnter)
	assert.False(t, m.Done())
	assert.Contains(t, m.View(), "Saved games are not available")

	// The message goes away on the next key.
	m = menuUpdate(t, m, keyUp)
	assert.NotContains(t, m.View(), "Saved games are not available")
}

func TestMenuResumeSlot(t *testing.T) {
	store := openStore(t)
	svc := newSaves(t, store)
	for _, lvl := range []string{"LEVEL_1", "LEVEL_2"} {
		_, err := svc.Save(t.Context(), saves.SaveInput{Mode: "PVP", LevelID: lvl, Data: []byte(`{}`)})
		require.NoError(t, err)
	}

	m := NewMenuModel(testConfig(), config.DefaultIceArenaConfig(), svc)
	m = menuUpdate(t, m, keyDown, keyEnter)
	view := m.View()
	assert.Contains(t, view, "LEVEL_1")
	assert.Contains(t, view, "LEVEL_2")

	// Delete the first slot, then resume the one left.
	m = menuUpdate(t, m, runes("x"))
	slots, err := svc.List(t.Context())
	require.NoError(t, err)
	require.Len(t, slots, 1)

	m = menuUpdate(t, m, keyEnter)
	require.True(t, m.Done())
	assert.Equal(t, MenuResume, m.Result().Action)
	assert.Equal(t, slots[0].ID, m.Result().SaveID)
}

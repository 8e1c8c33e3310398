package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/icearena/internal/config"
	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena"
	gamecore "github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/pkg/clock"
	"github.com/vovakirdan/icearena/internal/pkg/idgen"
	"github.com/vovakirdan/icearena/internal/platform/tui"
	"github.com/vovakirdan/icearena/internal/registry"
	"github.com/vovakirdan/icearena/internal/saves"
	"github.com/vovakirdan/icearena/internal/storage"
)

func testApp(t *testing.T) *app {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	repo, err := saves.NewSQLiteRepository(store)
	require.NoError(t, err)
	svc, err := saves.NewService(&saves.Config{
		Repository: repo,
		Clock:      &clock.Fixed{T: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		IDGen:      idgen.NewSequential("save"),
	})
	require.NoError(t, err)

	a := &app{cfg: config.DefaultIceArenaConfig(), logger: log.New(io.Discard), store: store, saves: svc}
	t.Cleanup(a.Close)
	return a
}

func TestNewGameFromChoice(t *testing.T) {
	a := testApp(t)
	res := tui.MenuResult{Action: tui.MenuPlay, Choice: tui.Choice{
		Mode:    gamecore.ModeSingle,
		LevelID: "LEVEL_2",
		Flavors: tui.ChoiceFromConfig(a.cfg).Flavors,
	}}

	g, err := a.newGame(context.Background(), res)
	require.NoError(t, err)
	game := g.(*icearena.Game)
	assert.Equal(t, gamecore.ModeSingle, game.Setup().Mode)
	assert.Equal(t, "LEVEL_2", game.Setup().LevelID)

	res.Choice.LevelID = "NOPE"
	_, err = a.newGame(context.Background(), res)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestNewGameResumesLatest(t *testing.T) {
	a := testApp(t)

	// Play a little, save, then resume the latest slot.
	first := icearena.New(icearena.DefaultSetup())
	first.Reset(a.runtimeConfig())
	in, err := first.SaveInput()
	require.NoError(t, err)
	_, err = a.saves.Save(context.Background(), in)
	require.NoError(t, err)

	g, err := a.newGame(context.Background(), tui.MenuResult{Action: tui.MenuResume, SaveID: "latest"})
	require.NoError(t, err)
	assert.Equal(t, gamecore.ModePVM, g.(*icearena.Game).Setup().Mode)

	_, err = a.newGame(context.Background(), tui.MenuResult{Action: tui.MenuResume, SaveID: "save_99"})
	assert.Error(t, err)

	a.saves = nil
	_, err = a.newGame(context.Background(), tui.MenuResult{Action: tui.MenuResume})
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := newLogger(io.Discard, "loud")
	assert.Error(t, err)

	logger, err := newLogger(io.Discard, "debug")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestPrintLevels(t *testing.T) {
	var buf bytes.Buffer
	printLevels(&buf, registry.List())
	out := buf.String()
	assert.Contains(t, out, "LEVEL_1")
	assert.Contains(t, out, "built-in")

	buf.Reset()
	printLevels(&buf, nil)
	assert.Equal(t, "No levels available.\n", buf.String())
}

func TestPrintScores(t *testing.T) {
	a := testApp(t)
	_, err := a.store.SaveScore(storage.ScoreEntry{Mode: "SINGLE", LevelID: "LEVEL_1", Player: "Ann", Score: 700})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printScores(&buf, a.store, "SINGLE", 10))
	assert.Contains(t, buf.String(), "Ann")
	assert.Contains(t, buf.String(), "Best: 700")

	buf.Reset()
	require.NoError(t, printScores(&buf, a.store, "PVP", 10))
	assert.Contains(t, buf.String(), "No scores recorded yet.")
}

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/icearena/internal/config"
	"github.com/vovakirdan/icearena/internal/core"
	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena"
	"github.com/vovakirdan/icearena/internal/pkg/clock"
	"github.com/vovakirdan/icearena/internal/pkg/idgen"
	"github.com/vovakirdan/icearena/internal/platform/tui"
	"github.com/vovakirdan/icearena/internal/registry"
	"github.com/vovakirdan/icearena/internal/saves"
	"github.com/vovakirdan/icearena/internal/storage"
)

// app holds what every command shares. Fields other than cfg and logger
// may be nil when the backing service could not be opened.
type app struct {
	cfg        config.IceArenaConfig
	logger     *log.Logger
	store      *storage.Store
	saves      *saves.Service
	closeSaves func() error
}

// newApp loads configuration and opens storage. A missing scores database
// or saves backend is reported and the game carries on without it.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	logger, err := newLogger(logOut, flagLogLevel)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadIceArena(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagFPS > 0 {
		cfg.Session.TickRate = flagFPS
	}
	if flagSavesBackend != "" {
		cfg.Storage.SavesBackend = flagSavesBackend
	}

	a := &app{cfg: cfg, logger: logger}
	a.loadLevels()

	a.store, err = storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		a.store = nil
	}

	repo, closeRepo, err := saves.OpenRepository(ctx, cfg.Storage, a.store)
	if err != nil {
		logger.Warn("saved games disabled", "backend", cfg.Storage.SavesBackend, "err", err)
		return a, nil
	}
	a.saves, err = saves.NewService(&saves.Config{
		Repository: repo,
		Clock:      clock.New(),
		IDGen:      idgen.NewUUID("save"),
		Logger:     logger.WithPrefix("saves"),
	})
	if err != nil {
		closeRepo()
		return nil, err
	}
	a.closeSaves = closeRepo
	return a, nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.InvalidArgumentf("unknown log level %q", level)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "icearena",
	}), nil
}

// loadLevels registers the YAML levels of the configured directory.
func (a *app) loadLevels() {
	dir := a.cfg.Session.LevelsDir
	if dir == "" {
		return
	}
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	n, err := registry.LoadDir(dir)
	if err != nil {
		a.logger.Warn("could not load levels", "dir", dir, "err", err)
	}
	a.logger.Debug("loaded levels", "dir", dir, "count", n)
}

func (a *app) Close() {
	if a.closeSaves != nil {
		if err := a.closeSaves(); err != nil {
			a.logger.Warn("closing saves backend", "err", err)
		}
	}
	if a.store != nil {
		a.store.Close()
	}
}

// runtimeConfig sizes the screen to the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.Session.TickRate,
		Seed:     flagSeed,
	}
}

func (a *app) tuiOptions() tui.Options {
	return tui.Options{Store: a.store, Saves: a.saves, Logger: a.logger}
}

// newGame builds a game for a menu result, starting fresh from the form
// choice or resuming a save slot.
func (a *app) newGame(ctx context.Context, res tui.MenuResult) (tui.Game, error) {
	cfg := a.cfg
	if res.Action == tui.MenuPlay {
		res.Choice.Apply(&cfg)
	}
	setup, err := icearena.SetupFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	setup.Logger = a.logger.WithPrefix("session")

	if res.Action != tui.MenuResume {
		if !registry.Exists(setup.LevelID) {
			return nil, errors.NotFoundf("level %s not found", setup.LevelID)
		}
		return icearena.New(setup), nil
	}
	return a.resume(ctx, res.SaveID, setup)
}

// resume loads slot id, or the most recent slot when id is "latest".
func (a *app) resume(ctx context.Context, id string, setup icearena.Setup) (tui.Game, error) {
	if a.saves == nil {
		return nil, errors.Unavailable("saved games are not available")
	}
	var (
		slot *saves.Slot
		err  error
	)
	if id == "" || id == "latest" {
		slot, err = a.saves.Latest(ctx)
	} else {
		slot, err = a.saves.Load(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	a.logger.Info("resuming", "slot", slot.ID, "level", slot.LevelID)
	return icearena.Resume(slot.Data, setup)
}

// Package session runs one arena game: it owns every controller, ticks
// them in a fixed order, resolves collisions and drives the state machine.
package session

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/board"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/enemies"
	"github.com/vovakirdan/icearena/internal/games/icearena/items"
	"github.com/vovakirdan/icearena/internal/games/icearena/level"
	"github.com/vovakirdan/icearena/internal/games/icearena/players"
)

const (
	DefaultWidth   = 18
	DefaultHeight  = 10
	DefaultMaxTime = 180.0

	Player1 = "p1"
	Player2 = "p2"

	// DrawMarker is the winner reported when both players tie on score.
	DrawMarker = "DRAW"

	pvpBotID = "pvp_bot"
)

// RippleOnWave selects the board ripple started when a new wave spawns.
type RippleOnWave string

const (
	RippleNone   RippleOnWave = "none"
	RippleThaw   RippleOnWave = "thaw"
	RippleFreeze RippleOnWave = "freeze"
)

// Options configures a new Session.
type Options struct {
	Seed         int64
	MaxTime      float64
	RippleOnWave RippleOnWave
	Logger       *log.Logger
}

// Session is the whole simulation for one game.
type Session struct {
	log *log.Logger
	rng *core.Rand

	board   *board.Board
	items   *items.Controller
	enemies *enemies.Controller
	players *players.Controller
	placer  *level.Placer

	mode         core.Mode
	levelID      string
	config       level.Configuration
	names        [2]string
	flavors      [2]players.Flavor
	bots         [2]players.Control
	rippleOnWave RippleOnWave

	loaded  bool
	status  core.Status
	elapsed float64
	maxTime float64
	scoreP1 int
	scoreP2 int
	wave    int
	winner  *string
}

// New creates a paused session with default setup and an empty board.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	maxTime := opts.MaxTime
	if maxTime <= 0 {
		maxTime = DefaultMaxTime
	}
	ripple := opts.RippleOnWave
	if ripple == "" {
		ripple = RippleNone
	}

	s := &Session{
		log:          logger,
		rng:          core.NewRand(opts.Seed),
		board:        board.New(DefaultWidth, DefaultHeight),
		mode:         core.ModePVP,
		levelID:      level.Level1,
		config:       level.Lookup(level.Level1).Config,
		names:        [2]string{"Player 1", "Player 2"},
		flavors:      [2]players.Flavor{players.FlavorVanilla, players.FlavorChocolate},
		bots:         [2]players.Control{players.ControlHungry, players.ControlHungry},
		rippleOnWave: ripple,
		status:       core.StatusPaused,
		maxTime:      maxTime,
	}
	s.wire()
	return s
}

// wire builds the controllers around the current board and generator.
func (s *Session) wire() {
	s.items = items.NewController(s.board, s.rng)
	s.enemies = enemies.NewController(s.board, s.items)
	s.players = players.NewController(s.board, s.items, s.rng)
	s.placer = &level.Placer{Board: s.board, Items: s.items, Enemies: s.enemies, Rand: s.rng}
}

// SetMode selects the game mode for the next LoadLevel.
func (s *Session) SetMode(m core.Mode) { s.mode = m }

// SetPlayerNames sets display names for both slots.
func (s *Session) SetPlayerNames(p1, p2 string) {
	s.names = [2]string{p1, p2}
}

// SetFlavors sets the flavour of both slots.
func (s *Session) SetFlavors(p1, p2 players.Flavor) {
	s.flavors = [2]players.Flavor{p1, p2}
}

// SetBots sets the strategies used when a slot is bot-driven.
func (s *Session) SetBots(p1, p2 players.Control) {
	s.bots = [2]players.Control{p1, p2}
}

// SetLevelConfiguration replaces the waves, enemies and obstacles used by
// the next LoadLevel.
func (s *Session) SetLevelConfiguration(cfg level.Configuration) {
	s.config = cfg.Normalize()
}

// SetLevelID records which level is being played.
func (s *Session) SetLevelID(id string) { s.levelID = id }

// LoadLevel validates layout and starts a fresh game on it. A configuration
// error leaves the current session untouched.
func (s *Session) LoadLevel(layout []string) error {
	m, err := level.ParseMap(layout)
	if err != nil {
		return errors.Wrapf(err, "load level %s", s.levelID)
	}
	p1, p2 := spawnPoints(m.Width, m.Height)
	for _, sp := range []core.Coord{p1, p2} {
		if sp.X < 0 || sp.Y < 0 || sp.X >= m.Width || sp.Y >= m.Height {
			return errors.Configurationf("level %s is too small for player spawns", s.levelID)
		}
		if m.At(sp.X, sp.Y) == level.CodeWall {
			return errors.Configurationf("player spawn %v of level %s is a wall", sp, s.levelID)
		}
	}
	if s.mode != core.ModeSingle && p1 == p2 {
		return errors.Configurationf("level %s leaves no room for two player spawns", s.levelID)
	}

	s.items.Reset()
	s.enemies.Reset()
	s.players.Reset()
	s.board.Reset(m.Width, m.Height)
	if err := s.placer.ApplyMap(m); err != nil {
		return errors.Wrapf(err, "load level %s", s.levelID)
	}
	s.placer.ApplyConfiguration(s.config)
	s.setupPlayers(p1, p2)

	s.loaded = true
	s.status = core.StatusPlaying
	s.elapsed = 0
	s.scoreP1 = 0
	s.scoreP2 = 0
	s.winner = nil
	s.wave = 0
	s.placer.SpawnFruitWave(s.config, 0)

	s.log.Info("level loaded",
		"level", s.levelID,
		"mode", s.mode,
		"size", [2]int{m.Width, m.Height},
		"waves", len(s.config.Waves),
		"enemies", len(s.enemies.Enemies()))
	return nil
}

func spawnPoints(w, h int) (core.Coord, core.Coord) {
	return core.C(1, 1), core.C(min(16, w-2), min(8, h-2))
}

func (s *Session) setupPlayers(p1, p2 core.Coord) {
	c1 := players.ControlHuman
	if s.mode == core.ModeMVM {
		c1 = s.bots[0]
	}
	s.players.Add(Player1, s.flavors[0], c1, p1.X, p1.Y)
	s.players.SetName(Player1, s.names[0])

	switch s.mode {
	case core.ModeSingle:
		return
	case core.ModePVP:
		s.players.Add(Player2, s.flavors[1], players.ControlHuman, p2.X, p2.Y)
		s.enemies.Spawn(string(enemies.KindTroll), pvpBotID, p2.X, p1.Y)
	default:
		s.players.Add(Player2, s.flavors[1], s.bots[1], p2.X, p2.Y)
	}
	s.players.SetName(Player2, s.names[1])
}

// HandlePlayerAction applies an input action while playing. A successful
// move settles that player's collisions at once.
func (s *Session) HandlePlayerAction(id string, kind core.ActionKind, dir core.Direction) bool {
	if s.status != core.StatusPlaying {
		return false
	}
	ok := s.players.PerformAction(id, kind, dir)
	if ok && kind == core.ActionMove {
		s.resolveCollisions(id)
		if s.status == core.StatusPlaying {
			s.checkEndConditions()
		}
	}
	return ok
}

// TogglePause flips between Playing and Paused. It does nothing before a
// level is loaded or after the game has ended.
func (s *Session) TogglePause() {
	if !s.loaded {
		return
	}
	switch s.status {
	case core.StatusPlaying:
		s.status = core.StatusPaused
	case core.StatusPaused:
		s.status = core.StatusPlaying
	}
	s.log.Debug("pause toggled", "status", s.status)
}

// Ripple starts a board-wide ice ripple from (x, y). Tiles under actors and
// hot tiles are left alone. It returns the number of scheduled cells.
func (s *Session) Ripple(x, y int, kind core.RippleKind) int {
	n := s.board.StartRipple(core.C(x, y), kind, s.rippleBlocked)
	s.log.Debug("ripple started", "origin", core.C(x, y), "kind", kind, "cells", n)
	return n
}

func (s *Session) rippleBlocked(c core.Coord) bool {
	return s.occupied(c) || s.items.HasKindAt(c.X, c.Y, items.KindHotTile)
}

func (s *Session) occupied(c core.Coord) bool {
	return s.players.Occupied(c) || s.enemies.Occupied(c) ||
		s.items.HasKindAt(c.X, c.Y, items.FruitKinds...)
}

func (s *Session) threats() []players.Threat {
	list := s.enemies.Enemies()
	out := make([]players.Threat, len(list))
	for i, e := range list {
		out[i] = players.Threat{X: e.X, Y: e.Y, Kind: string(e.Kind)}
	}
	return out
}

func (s *Session) playerIDs() []string {
	ids := []string{Player1, Player2}
	return slices.DeleteFunc(ids, func(id string) bool {
		_, ok := s.players.Get(id)
		return !ok
	})
}

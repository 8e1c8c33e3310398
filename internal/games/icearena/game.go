// Package icearena adapts the arena session to the terminal platform: it
// turns per-player input frames into session actions, advances the clock,
// renders to a coloured screen and handles restarts and level chaining.
package icearena

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/icearena/internal/config"
	platformcore "github.com/vovakirdan/icearena/internal/core"
	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/level"
	"github.com/vovakirdan/icearena/internal/games/icearena/players"
	"github.com/vovakirdan/icearena/internal/games/icearena/session"
	"github.com/vovakirdan/icearena/internal/registry"
	"github.com/vovakirdan/icearena/internal/saves"
	"github.com/vovakirdan/icearena/internal/storage"
)

// GameID identifies the game in score tables and save slots.
const GameID = "icearena"

func init() {
	for _, def := range level.Builtins() {
		registry.Register(def)
	}
}

// Setup selects what a new game plays.
type Setup struct {
	Mode         core.Mode
	LevelID      string
	Names        [2]string
	Flavors      [2]players.Flavor
	Bots         [2]players.Control
	MaxTime      float64
	RippleOnWave session.RippleOnWave
	// Overrides replace parts of every level's configuration.
	Overrides config.LevelOverrides
	Logger    *log.Logger
}

// DefaultSetup mirrors the embedded configuration defaults.
func DefaultSetup() Setup {
	s, _ := SetupFromConfig(config.DefaultIceArenaConfig())
	return s
}

// SetupFromConfig validates cfg and converts it.
func SetupFromConfig(cfg config.IceArenaConfig) (Setup, error) {
	r, err := cfg.Resolve()
	if err != nil {
		return Setup{}, err
	}
	return Setup{
		Mode:         r.Mode,
		LevelID:      r.LevelID,
		Names:        r.Names,
		Flavors:      r.Flavors,
		Bots:         r.Bots,
		MaxTime:      r.MaxTime,
		RippleOnWave: r.RippleOnWave,
		Overrides:    cfg.Level,
	}, nil
}

// FinalScore is one human player's result.
type FinalScore struct {
	Player string
	Score  int
}

// Game runs one session at a time and restarts it on request.
type Game struct {
	setup   Setup
	sess    *session.Session
	seed    int64
	dt      float64
	err     error
	resumed bool
}

// New creates a game that starts setup.LevelID on the first Reset.
func New(setup Setup) *Game {
	if setup.LevelID == "" {
		setup.LevelID = level.Level1
	}
	if setup.Mode == "" {
		setup.Mode = core.ModePVM
	}
	return &Game{setup: setup, dt: platformcore.DefaultConfig().Dt()}
}

// Resume restores a game from a saved session document. The first Reset
// keeps the restored state instead of loading a level.
func Resume(data []byte, setup Setup) (*Game, error) {
	sess, err := session.Unmarshal(data, session.Options{Logger: setup.Logger})
	if err != nil {
		return nil, err
	}
	setup.Mode = sess.Mode()
	setup.LevelID = sess.LevelID()
	g := New(setup)
	g.sess = sess
	g.resumed = true
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Ice Arena" }

// Reset starts the configured level. A load failure is kept in Err and
// shown on screen.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.seed = cfg.Seed
	g.dt = cfg.Dt()
	if g.resumed {
		g.resumed = false
		return
	}
	g.err = g.start(g.setup.LevelID)
}

// Err returns the last level load failure.
func (g *Game) Err() error { return g.err }

// Session exposes the running session, nil before the first Reset.
func (g *Game) Session() *session.Session { return g.sess }

// Setup returns the current setup; LevelID follows level chaining.
func (g *Game) Setup() Setup { return g.setup }

func (g *Game) start(levelID string) error {
	def, err := registry.Get(levelID)
	if err != nil {
		return err
	}
	cfg := def.Config
	if !g.setup.Overrides.Empty() {
		cfg = g.setup.Overrides.Apply(cfg)
	}

	sess := session.New(session.Options{
		Seed:         g.seed,
		MaxTime:      g.setup.MaxTime,
		RippleOnWave: g.setup.RippleOnWave,
		Logger:       g.setup.Logger,
	})
	sess.SetMode(g.setup.Mode)
	sess.SetLevelID(def.ID)
	sess.SetPlayerNames(g.setup.Names[0], g.setup.Names[1])
	sess.SetFlavors(g.setup.Flavors[0], g.setup.Flavors[1])
	sess.SetBots(g.setup.Bots[0], g.setup.Bots[1])
	sess.SetLevelConfiguration(cfg)
	if err := sess.LoadLevel(def.Layout); err != nil {
		return err
	}

	g.sess = sess
	g.setup.LevelID = def.ID
	g.seed++
	return nil
}

// restart picks the level to play after a finished game: the next level
// after a win, the first level after a single-player loss, otherwise the
// same level again.
func (g *Game) restart() {
	id := g.setup.LevelID
	switch st := g.sess.Status(); {
	case st == core.StatusWon:
		if next, ok := registry.Next(id); ok {
			id = next
		}
	case g.setup.Mode == core.ModeSingle && st == core.StatusGameOver:
		id = level.Level1
	}
	g.err = g.start(id)
}

// humans lists the slots driven by keyboard input in the current mode.
func (g *Game) humans() []platformcore.Slot {
	switch g.setup.Mode {
	case core.ModeSingle, core.ModePVM:
		return []platformcore.Slot{platformcore.SlotP1}
	case core.ModePVP:
		return []platformcore.Slot{platformcore.SlotP1, platformcore.SlotP2}
	}
	return nil
}

func slotPlayerID(s platformcore.Slot) string {
	if s == platformcore.SlotP2 {
		return session.Player2
	}
	return session.Player1
}

var moves = []struct {
	action platformcore.Action
	dir    core.Direction
}{
	{platformcore.ActionUp, core.DirUp},
	{platformcore.ActionDown, core.DirDown},
	{platformcore.ActionLeft, core.DirLeft},
	{platformcore.ActionRight, core.DirRight},
}

func (g *Game) apply(id string, in platformcore.InputFrame) {
	for _, m := range moves {
		if in.Has(m.action) {
			g.sess.HandlePlayerAction(id, core.ActionMove, m.dir)
		}
	}
	if in.Has(platformcore.ActionCreateIce) {
		g.sess.HandlePlayerAction(id, core.ActionCreateIce, core.DirNone)
	}
	if in.Has(platformcore.ActionBreakIce) {
		g.sess.HandlePlayerAction(id, core.ActionBreakIce, core.DirNone)
	}
}

func merge(a, b platformcore.InputFrame) platformcore.InputFrame {
	out := a.Clone()
	for act, on := range b.Actions {
		if on {
			out.Set(act)
		}
	}
	return out
}

// Step applies one frame of input and advances the session by one tick.
func (g *Game) Step(in platformcore.MultiInputFrame) platformcore.StepResult {
	if g.sess == nil {
		return platformcore.StepResult{State: g.State()}
	}

	pressed := func(a platformcore.Action) bool {
		return in.Player1().Has(a) || in.Player2().Has(a)
	}

	if g.sess.Status().Terminal() {
		if pressed(platformcore.ActionRestart) || pressed(platformcore.ActionConfirm) {
			g.restart()
		}
		return platformcore.StepResult{State: g.State()}
	}

	if pressed(platformcore.ActionPause) {
		g.sess.TogglePause()
	}

	humans := g.humans()
	if len(humans) == 1 {
		// A lone human may use either key set.
		g.apply(slotPlayerID(humans[0]), merge(in.Player1(), in.Player2()))
	} else {
		for _, slot := range humans {
			g.apply(slotPlayerID(slot), in.Player(slot))
		}
	}
	g.sess.Tick(g.dt)

	return platformcore.StepResult{State: g.State()}
}

// State reports the platform view of the session. Score is player one's.
func (g *Game) State() platformcore.GameState {
	if g.sess == nil {
		return platformcore.GameState{GameOver: g.err != nil}
	}
	st := g.sess.Status()
	winner, _ := g.sess.Winner()
	return platformcore.GameState{
		Score:    g.sess.ScoreP1(),
		GameOver: st.Terminal(),
		Paused:   st == core.StatusPaused,
		Status:   string(st),
		Winner:   winner,
	}
}

// FinalScores returns the results of keyboard-driven players once the game
// has ended; bot-only games record nothing.
func (g *Game) FinalScores() []FinalScore {
	if g.sess == nil || !g.sess.Status().Terminal() {
		return nil
	}
	var out []FinalScore
	for _, slot := range g.humans() {
		id := slotPlayerID(slot)
		out = append(out, FinalScore{Player: g.sess.PlayerName(id), Score: g.sess.Score(id)})
	}
	return out
}

// Save encodes the running session.
func (g *Game) Save() ([]byte, error) {
	if g.sess == nil {
		if g.err != nil {
			return nil, g.err
		}
		return nil, errors.InvalidArgument("no game in progress")
	}
	return g.sess.Marshal()
}

// ScoreEntries converts FinalScores into score table rows.
func (g *Game) ScoreEntries() []storage.ScoreEntry {
	final := g.FinalScores()
	if len(final) == 0 {
		return nil
	}
	out := make([]storage.ScoreEntry, 0, len(final))
	for _, f := range final {
		out = append(out, storage.ScoreEntry{
			Mode:    string(g.sess.Mode()),
			LevelID: g.sess.LevelID(),
			Player:  f.Player,
			Score:   f.Score,
		})
	}
	return out
}

// SaveInput describes the running session as a save slot.
func (g *Game) SaveInput() (saves.SaveInput, error) {
	data, err := g.Save()
	if err != nil {
		return saves.SaveInput{}, err
	}
	return saves.SaveInput{
		Mode:    string(g.sess.Mode()),
		LevelID: g.sess.LevelID(),
		Score:   max(g.sess.ScoreP1(), g.sess.ScoreP2()),
		Data:    data,
	}, nil
}

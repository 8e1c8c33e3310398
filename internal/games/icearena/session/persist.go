package session

import (
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/board"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/enemies"
	"github.com/vovakirdan/icearena/internal/games/icearena/items"
	"github.com/vovakirdan/icearena/internal/games/icearena/level"
	"github.com/vovakirdan/icearena/internal/games/icearena/players"
)

// stateVersion is bumped whenever the saved document changes shape.
const stateVersion = 1

type sessionState struct {
	Version      int                 `json:"version"`
	Mode         core.Mode           `json:"mode"`
	LevelID      string              `json:"level_id"`
	Config       level.Configuration `json:"config"`
	Names        [2]string           `json:"names"`
	Flavors      [2]players.Flavor   `json:"flavors"`
	Bots         [2]players.Control  `json:"bots"`
	RippleOnWave RippleOnWave        `json:"ripple_on_wave"`
	Loaded       bool                `json:"loaded"`
	Status       core.Status         `json:"status"`
	Elapsed      float64             `json:"elapsed"`
	MaxTime      float64             `json:"max_time"`
	ScoreP1      int                 `json:"score_p1"`
	ScoreP2      int                 `json:"score_p2"`
	Wave         int                 `json:"wave"`
	Winner       *string             `json:"winner"`

	Rand    *core.Rand          `json:"rng"`
	Board   *board.Board        `json:"board"`
	Items   *items.Controller   `json:"items"`
	Enemies *enemies.Controller `json:"enemies"`
	Players *players.Controller `json:"players"`
}

// Marshal encodes the whole session, including every controller, both ice
// queues and the generator state, as one JSON document.
func (s *Session) Marshal() ([]byte, error) {
	data, err := json.Marshal(sessionState{
		Version:      stateVersion,
		Mode:         s.mode,
		LevelID:      s.levelID,
		Config:       s.config,
		Names:        s.names,
		Flavors:      s.flavors,
		Bots:         s.bots,
		RippleOnWave: s.rippleOnWave,
		Loaded:       s.loaded,
		Status:       s.status,
		Elapsed:      s.elapsed,
		MaxTime:      s.maxTime,
		ScoreP1:      s.scoreP1,
		ScoreP2:      s.scoreP2,
		Wave:         s.wave,
		Winner:       s.winner,
		Rand:         s.rng,
		Board:        s.board,
		Items:        s.items,
		Enemies:      s.enemies,
		Players:      s.players,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal session")
	}
	return data, nil
}

// Unmarshal restores a session encoded by Marshal. Only the logger is taken
// from opts; everything else comes from the document.
func Unmarshal(data []byte, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		log:   logger,
		rng:   core.NewRand(0),
		board: board.New(0, 0),
	}
	s.wire()

	st := sessionState{
		Rand:    s.rng,
		Board:   s.board,
		Items:   s.items,
		Enemies: s.enemies,
		Players: s.players,
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "unmarshal session")
	}
	if st.Version != stateVersion {
		return nil, errors.InvalidArgumentf("unsupported session version %d", st.Version)
	}
	if st.Rand != s.rng || st.Board != s.board || st.Items != s.items ||
		st.Enemies != s.enemies || st.Players != s.players {
		return nil, errors.InvalidArgument("session document is missing controller state")
	}

	s.mode = st.Mode
	s.levelID = st.LevelID
	s.config = st.Config
	s.names = st.Names
	s.flavors = st.Flavors
	s.bots = st.Bots
	s.rippleOnWave = st.RippleOnWave
	s.loaded = st.Loaded
	s.status = st.Status
	s.elapsed = st.Elapsed
	s.maxTime = st.MaxTime
	s.scoreP1 = st.ScoreP1
	s.scoreP2 = st.ScoreP2
	s.wave = st.Wave
	s.winner = st.Winner

	s.log.Debug("session restored", "level", s.levelID, "status", s.status, "elapsed", s.elapsed)
	return s, nil
}

package session

import (
	"github.com/vovakirdan/icearena/internal/games/icearena/board"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/enemies"
	"github.com/vovakirdan/icearena/internal/games/icearena/items"
	"github.com/vovakirdan/icearena/internal/games/icearena/players"
)

// Terrain is a read-only view of the board for renderers.
type Terrain interface {
	Width() int
	Height() int
	ContentAt(x, y int) board.Content
	Progress(x, y int) float64
	IsAnimating(x, y int) bool
}

// Snapshot captures the observable session state.
type Snapshot struct {
	Status  core.Status
	Mode    core.Mode
	LevelID string
	Elapsed float64
	ScoreP1 int
	ScoreP2 int
	Wave    int
	Winner  string
	Players []players.Player
	Enemies []enemies.Enemy
	Items   []items.Item
}

// Objects returns descriptors for every item and enemy. Players are not
// included.
func (s *Session) Objects() []core.EntityInfo {
	return append(s.items.Infos(), s.enemies.Infos()...)
}

// Player1Info describes player one, nil when absent or dead.
func (s *Session) Player1Info() *core.EntityInfo { return s.players.Info(Player1) }

// Player2Info describes player two, nil when absent or dead.
func (s *Session) Player2Info() *core.EntityInfo { return s.players.Info(Player2) }

// PlayerName returns the display name of a slot.
func (s *Session) PlayerName(id string) string { return s.players.Name(id) }

// Board returns a read-only terrain view.
func (s *Session) Board() Terrain { return s.board }

// WallMap returns a [y][x] grid of wall cells.
func (s *Session) WallMap() [][]bool { return s.board.WallMap() }

// TimeRemaining returns the seconds left before a timeout.
func (s *Session) TimeRemaining() float64 {
	return max(0, s.maxTime-s.elapsed)
}

// Elapsed returns the simulated seconds played.
func (s *Session) Elapsed() float64 { return s.elapsed }

// ScoreP1 returns player one's points.
func (s *Session) ScoreP1() int { return s.scoreP1 }

// ScoreP2 returns player two's points.
func (s *Session) ScoreP2() int { return s.scoreP2 }

// Score returns the points of the given slot.
func (s *Session) Score(id string) int {
	if id == Player1 {
		return s.scoreP1
	}
	if id == Player2 {
		return s.scoreP2
	}
	return 0
}

func (s *Session) Status() core.Status { return s.status }
func (s *Session) Mode() core.Mode     { return s.mode }
func (s *Session) LevelID() string     { return s.levelID }
func (s *Session) Wave() int           { return s.wave }
func (s *Session) WaveCount() int      { return len(s.config.Waves) }

// Winner returns the winner's name, the draw marker, or false when there is
// none yet.
func (s *Session) Winner() (string, bool) {
	if s.winner == nil {
		return "", false
	}
	return *s.winner, true
}

// RemainingFruits counts fruit on the board per type.
func (s *Session) RemainingFruits() map[string]int {
	out := make(map[string]int)
	for k, n := range s.items.RemainingFruitsByType() {
		out[string(k)] = n
	}
	return out
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Status:  s.status,
		Mode:    s.mode,
		LevelID: s.levelID,
		Elapsed: s.elapsed,
		ScoreP1: s.scoreP1,
		ScoreP2: s.scoreP2,
		Wave:    s.wave,
		Enemies: s.enemies.Enemies(),
		Items:   s.items.Items(),
	}
	if w, ok := s.Winner(); ok {
		snap.Winner = w
	}
	for _, id := range s.playerIDs() {
		p, _ := s.players.Get(id)
		snap.Players = append(snap.Players, p)
	}
	return snap
}

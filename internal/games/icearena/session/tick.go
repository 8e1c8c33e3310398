package session

import (
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/items"
)

// Tick advances the game by dt seconds. Nothing happens unless the session
// is playing.
func (s *Session) Tick(dt float64) {
	if s.status != core.StatusPlaying {
		return
	}

	s.elapsed += dt
	if s.elapsed >= s.maxTime {
		s.elapsed = s.maxTime
		s.finish(core.StatusTimeout, s.scoreWinner())
		return
	}

	if pos, ok := s.target(); ok {
		s.enemies.UpdatePlayerPos(pos.X, pos.Y)
	}

	s.items.Update(dt)
	s.items.ApplyRipple(s.board.UpdateRipple(dt, s.occupied))
	s.enemies.Update(dt)
	s.players.UpdateBots(dt, s.threats())

	for _, id := range s.playerIDs() {
		s.resolveCollisions(id)
		if s.status != core.StatusPlaying {
			return
		}
	}

	s.checkEndConditions()
	if s.status != core.StatusPlaying {
		return
	}
	s.checkWaves()
}

// target is the live player enemies chase: player one, else player two.
func (s *Session) target() (core.Coord, bool) {
	for _, id := range s.playerIDs() {
		if s.players.IsAlive(id) {
			return s.players.Position(id)
		}
	}
	return core.Coord{}, false
}

func (s *Session) resolveCollisions(id string) {
	if !s.players.IsAlive(id) {
		return
	}
	pos, _ := s.players.Position(id)

	if s.enemies.CheckCollision(pos.X, pos.Y) {
		s.kill(id, "enemy")
		return
	}
	if s.items.HasDangerousCactusAt(pos.X, pos.Y) {
		s.kill(id, "cactus")
		return
	}
	switch score := s.items.CollectItemAt(pos.X, pos.Y); {
	case score == items.Lethal:
		s.kill(id, "campfire")
	case score > 0:
		s.players.AddScore(id, score)
		if id == Player1 {
			s.scoreP1 += score
		} else {
			s.scoreP2 += score
		}
	}
}

func (s *Session) kill(id, cause string) {
	s.players.Kill(id)
	s.log.Info("player died", "player", s.players.Name(id), "cause", cause)
	if s.mode == core.ModeSingle {
		s.finish(core.StatusGameOver, nil)
	}
}

// checkEndConditions handles deaths in two-player modes: the survivor is
// the provisional winner and the game ends once both are dead.
func (s *Session) checkEndConditions() {
	if s.mode == core.ModeSingle {
		return
	}
	alive1 := s.players.IsAlive(Player1)
	alive2 := s.players.IsAlive(Player2)
	switch {
	case !alive1 && !alive2:
		s.finish(core.StatusGameOver, s.scoreWinner())
	case !alive1:
		s.setWinner(s.players.Name(Player2))
	case !alive2:
		s.setWinner(s.players.Name(Player1))
	}
}

func (s *Session) checkWaves() {
	if s.items.FruitCount() > 0 {
		return
	}
	s.wave++
	if s.wave >= len(s.config.Waves) {
		s.finish(core.StatusWon, s.scoreWinner())
		return
	}
	s.placer.SpawnFruitWave(s.config, s.wave)
	s.log.Debug("wave spawned", "wave", s.wave, "fruit", s.items.FruitCount())

	switch s.rippleOnWave {
	case RippleThaw:
		if pos, ok := s.target(); ok {
			s.Ripple(pos.X, pos.Y, core.RippleDestroy)
		}
	case RippleFreeze:
		s.Ripple(s.board.Width()/2, s.board.Height()/2, core.RippleCreate)
	}
}

func (s *Session) scoreWinner() *string {
	if s.mode == core.ModeSingle {
		return nil
	}
	var name string
	switch {
	case s.scoreP1 > s.scoreP2:
		name = s.players.Name(Player1)
	case s.scoreP2 > s.scoreP1:
		name = s.players.Name(Player2)
	default:
		name = DrawMarker
	}
	return &name
}

func (s *Session) setWinner(name string) {
	s.winner = &name
}

func (s *Session) finish(status core.Status, winner *string) {
	s.status = status
	s.winner = winner
	w := "none"
	if winner != nil {
		w = *winner
	}
	s.log.Info("game finished", "status", status, "winner", w, "p1", s.scoreP1, "p2", s.scoreP2)
}

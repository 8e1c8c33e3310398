package config

import (
	"slices"
	"strings"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/players"
)

// DifficultyPreset is a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
)

// DifficultyPresets lists every preset from easiest to hardest.
var DifficultyPresets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert}

// ParseDifficulty parses a preset name, case-insensitively.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(DifficultyPresets, p) {
		return "", errors.Configurationf("unknown difficulty %q", name)
	}
	return p, nil
}

// DifficultyProfile is what a preset changes.
type DifficultyProfile struct {
	Opponent     players.Control // player two's bot
	MaxTime      float64
	RippleOnWave string
}

// ProfileFor returns the settings of a preset. Unknown presets get normal.
func ProfileFor(p DifficultyPreset) DifficultyProfile {
	switch p {
	case DifficultyEasy:
		// A fearful bot rarely contests fruit.
		return DifficultyProfile{Opponent: players.ControlFearful, MaxTime: 240, RippleOnWave: "none"}
	case DifficultyHard:
		return DifficultyProfile{Opponent: players.ControlExpert, MaxTime: 180, RippleOnWave: "none"}
	case DifficultyExpert:
		return DifficultyProfile{Opponent: players.ControlExpert, MaxTime: 120, RippleOnWave: "freeze"}
	default:
		return DifficultyProfile{Opponent: players.ControlHungry, MaxTime: 180, RippleOnWave: "none"}
	}
}

// ApplyPreset overwrites the opponent bot, time limit and wave ripple of
// cfg with the preset's profile.
func ApplyPreset(cfg *IceArenaConfig, preset DifficultyPreset) {
	prof := ProfileFor(preset)
	cfg.Difficulty = preset
	cfg.Players.P2.Bot = string(prof.Opponent)
	cfg.Session.MaxTime = prof.MaxTime
	cfg.Session.RippleOnWave = prof.RippleOnWave
}

package config

import (
	_ "embed"

	"github.com/vovakirdan/icearena/internal/games/icearena/level"
)

//go:embed defaults/icearena.yaml
var defaultIceArenaYAML []byte

// DefaultIceArenaConfig returns the built-in configuration used when no
// file can be read.
func DefaultIceArenaConfig() IceArenaConfig {
	return IceArenaConfig{
		Session: SessionConfig{
			Mode:         "PVM",
			Level:        level.Level1,
			MaxTime:      180,
			TickRate:     60,
			RippleOnWave: "none",
		},
		Players: PlayersConfig{
			P1: PlayerConfig{Name: "Player 1", Flavor: "VANILLA", Bot: "HUNGRY"},
			P2: PlayerConfig{Name: "Player 2", Flavor: "CHOCOLATE", Bot: "HUNGRY"},
		},
		Storage: StorageConfig{
			SavesBackend: BackendSQLite,
			RedisAddr:    "localhost:6379",
		},
	}
}

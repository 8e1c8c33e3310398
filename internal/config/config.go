// Package config loads the YAML game configuration: session setup, player
// slots, level overrides, difficulty and storage backends.
package config

import (
	"github.com/vovakirdan/icearena/internal/games/icearena/level"
)

// IceArenaConfig is the whole configuration file.
type IceArenaConfig struct {
	Session    SessionConfig    `yaml:"session"`
	Players    PlayersConfig    `yaml:"players"`
	Level      LevelOverrides   `yaml:"level"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Storage    StorageConfig    `yaml:"storage"`
}

// SessionConfig selects what gets played and how fast.
type SessionConfig struct {
	Mode         string  `yaml:"mode"`           // SINGLE, PVP, PVM or MVM
	Level        string  `yaml:"level"`          // level id to start on
	MaxTime      float64 `yaml:"max_time"`       // seconds before a timeout
	TickRate     int     `yaml:"tick_rate"`      // simulation ticks per second
	RippleOnWave string  `yaml:"ripple_on_wave"` // none, thaw or freeze
	LevelsDir    string  `yaml:"levels_dir"`     // extra YAML levels, optional
}

// PlayersConfig configures both player slots.
type PlayersConfig struct {
	P1 PlayerConfig `yaml:"p1"`
	P2 PlayerConfig `yaml:"p2"`
}

// PlayerConfig is one slot. Bot is used only when the mode makes the slot
// machine-controlled.
type PlayerConfig struct {
	Name   string `yaml:"name"`
	Flavor string `yaml:"flavor"`
	Bot    string `yaml:"bot"`
}

// LevelOverrides replaces parts of the selected level's configuration when
// set.
type LevelOverrides struct {
	Waves     []level.WaveSpec `yaml:"waves,omitempty"`
	Enemies   map[string]int   `yaml:"enemies,omitempty"`
	Obstacles map[string]int   `yaml:"obstacles,omitempty"`
}

// Empty reports whether no override is set.
func (o LevelOverrides) Empty() bool {
	return len(o.Waves) == 0 && o.Enemies == nil && o.Obstacles == nil
}

// Apply returns base with every set override replacing its counterpart.
func (o LevelOverrides) Apply(base level.Configuration) level.Configuration {
	out := base.Clone()
	if len(o.Waves) > 0 {
		out.Waves = o.Waves
	}
	if o.Enemies != nil {
		out.Enemies = o.Enemies
	}
	if o.Obstacles != nil {
		out.Obstacles = o.Obstacles
	}
	return out.Normalize()
}

// StorageConfig selects where save slots live.
type StorageConfig struct {
	SavesBackend string `yaml:"saves_backend"` // sqlite, redis or postgres
	RedisAddr    string `yaml:"redis_addr"`
	PostgresDSN  string `yaml:"postgres_dsn"`
}

// Saves backends.
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

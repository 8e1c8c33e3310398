package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/players"
	"github.com/vovakirdan/icearena/internal/games/icearena/session"
)

const fileName = "icearena.yaml"

// LoadIceArena loads the configuration.
// Search order: customPath -> ~/.icearena/configs/icearena.yaml ->
// ./configs/icearena.yaml -> embedded default -> DefaultIceArenaConfig.
// Only a failing customPath is an error; unreadable files further down the
// search order are skipped. Fields missing from a file keep their defaults.
func LoadIceArena(customPath string) (IceArenaConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return IceArenaConfig{}, errors.WrapWithCode(err, errors.CodeConfiguration, "read config "+customPath)
		}
		cfg, err := parse(data)
		if err != nil {
			return IceArenaConfig{}, errors.Wrapf(err, "parse config %s", customPath)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if cfg, err := parse(defaultIceArenaYAML); err == nil {
		return cfg, nil
	}
	return DefaultIceArenaConfig(), nil
}

func parse(data []byte) (IceArenaConfig, error) {
	cfg := DefaultIceArenaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return IceArenaConfig{}, errors.WrapWithCode(err, errors.CodeConfiguration, "yaml unmarshal")
	}
	if cfg.Difficulty != "" {
		preset, err := ParseDifficulty(string(cfg.Difficulty))
		if err != nil {
			return IceArenaConfig{}, err
		}
		ApplyPreset(&cfg, preset)
	}
	if _, err := cfg.Resolve(); err != nil {
		return IceArenaConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path of a file in the user config directory,
// or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".icearena", "configs", filename)
}

// Resolved is a validated configuration in the game's own types.
type Resolved struct {
	Mode         core.Mode
	LevelID      string
	MaxTime      float64
	TickRate     int
	RippleOnWave session.RippleOnWave
	Names        [2]string
	Flavors      [2]players.Flavor
	Bots         [2]players.Control
}

var rippleOptions = []session.RippleOnWave{session.RippleNone, session.RippleThaw, session.RippleFreeze}

// Resolve validates every enumerated field and converts it.
func (c IceArenaConfig) Resolve() (Resolved, error) {
	var r Resolved
	var ok bool

	if r.Mode, ok = core.ParseMode(c.Session.Mode); !ok {
		return r, errors.Configurationf("unknown mode %q", c.Session.Mode).WithMeta("field", "session.mode")
	}
	r.LevelID = c.Session.Level
	if r.LevelID == "" {
		return r, errors.Configuration("session.level is required")
	}
	if c.Session.MaxTime < 0 {
		return r, errors.Configurationf("session.max_time must not be negative, got %v", c.Session.MaxTime)
	}
	r.MaxTime = c.Session.MaxTime
	r.TickRate = c.Session.TickRate
	if r.TickRate <= 0 {
		r.TickRate = 60
	}

	r.RippleOnWave = session.RippleOnWave(strings.ToLower(c.Session.RippleOnWave))
	if r.RippleOnWave == "" {
		r.RippleOnWave = session.RippleNone
	}
	if !slices.Contains(rippleOptions, r.RippleOnWave) {
		return r, errors.Configurationf("unknown ripple_on_wave %q", c.Session.RippleOnWave)
	}

	for i, p := range []PlayerConfig{c.Players.P1, c.Players.P2} {
		r.Names[i] = p.Name
		if r.Flavors[i], ok = players.ParseFlavor(p.Flavor); !ok {
			return r, errors.Configurationf("player %d: unknown flavor %q", i+1, p.Flavor)
		}
		bot, ok := players.ParseControl(p.Bot)
		if !ok || bot == players.ControlHuman {
			return r, errors.Configurationf("player %d: unknown bot strategy %q", i+1, p.Bot)
		}
		r.Bots[i] = bot
	}

	switch c.Storage.SavesBackend {
	case BackendSQLite, BackendRedis, BackendPostgres:
	default:
		return r, errors.Configurationf("unknown saves_backend %q", c.Storage.SavesBackend)
	}
	return r, nil
}

// SessionOptions builds session options from the resolved configuration.
func (r Resolved) SessionOptions(seed int64) session.Options {
	return session.Options{
		Seed:         seed,
		MaxTime:      r.MaxTime,
		RippleOnWave: r.RippleOnWave,
	}
}

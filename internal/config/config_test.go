package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/level"
	"github.com/vovakirdan/icearena/internal/games/icearena/players"
	"github.com/vovakirdan/icearena/internal/games/icearena/session"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "icearena.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	embedded, err := parse(defaultIceArenaYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	want, _ := DefaultIceArenaConfig().Resolve()
	got, _ := embedded.Resolve()
	if got != want {
		t.Errorf("embedded = %+v\nhardcoded = %+v", got, want)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
session:
  mode: mvm
  level: LEVEL_3
players:
  p1:
    bot: expert
    flavor: strawberry
level:
  waves:
    - type: cherry
      count: 2
`)
	cfg, err := LoadIceArena(path)
	if err != nil {
		t.Fatalf("LoadIceArena() failed: %v", err)
	}

	r, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if r.Mode != core.ModeMVM || r.LevelID != level.Level3 {
		t.Errorf("session = %s %s", r.Mode, r.LevelID)
	}
	if r.Bots[0] != players.ControlExpert || r.Flavors[0] != players.FlavorStrawberry {
		t.Errorf("p1 = %s %s", r.Bots[0], r.Flavors[0])
	}
	// untouched fields keep their defaults
	if r.Names[1] != "Player 2" || r.MaxTime != 180 || r.TickRate != 60 {
		t.Errorf("defaults lost: %+v", r)
	}

	applied := cfg.Level.Apply(level.Lookup(level.Level3).Config)
	if len(applied.Waves) != 1 || applied.Waves[0] != (level.WaveSpec{Type: "CHERRY", Count: 2}) {
		t.Errorf("waves = %+v", applied.Waves)
	}
	if applied.Enemies["NARWHAL"] != 1 {
		t.Error("enemy counts should come from the level when not overridden")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "session: [unclosed"},
		{"bad mode", "session:\n  mode: COOP\n"},
		{"bad flavor", "players:\n  p2:\n    flavor: mint\n"},
		{"human bot", "players:\n  p2:\n    bot: human\n"},
		{"bad ripple", "session:\n  ripple_on_wave: boil\n"},
		{"bad backend", "storage:\n  saves_backend: mongo\n"},
		{"bad difficulty", "difficulty: insane\n"},
		{"negative time", "session:\n  max_time: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadIceArena(writeConfig(t, tt.body))
			if !errors.IsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}

	_, err := LoadIceArena(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.IsConfiguration(err) {
		t.Errorf("missing file: expected configuration error, got %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadIceArena("")
	if err != nil {
		t.Fatalf("LoadIceArena() failed: %v", err)
	}
	if cfg.Session.Mode != "PVM" || cfg.Storage.SavesBackend != BackendSQLite {
		t.Errorf("unexpected fallback config: %+v", cfg)
	}
}

func TestLoadPrefersLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	body := []byte("session:\n  mode: SINGLE\n")
	if err := os.WriteFile(filepath.Join(dir, "configs", fileName), body, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadIceArena("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Session.Mode != "SINGLE" {
		t.Errorf("mode = %q, expected SINGLE from ./configs", cfg.Session.Mode)
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		opponent players.Control
		maxTime  float64
		ripple   session.RippleOnWave
	}{
		{DifficultyEasy, players.ControlFearful, 240, session.RippleNone},
		{DifficultyNormal, players.ControlHungry, 180, session.RippleNone},
		{DifficultyHard, players.ControlExpert, 180, session.RippleNone},
		{DifficultyExpert, players.ControlExpert, 120, session.RippleFreeze},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultIceArenaConfig()
			ApplyPreset(&cfg, tt.preset)

			r, err := cfg.Resolve()
			if err != nil {
				t.Fatal(err)
			}
			if r.Bots[1] != tt.opponent || r.MaxTime != tt.maxTime || r.RippleOnWave != tt.ripple {
				t.Errorf("resolved = %s %v %s", r.Bots[1], r.MaxTime, r.RippleOnWave)
			}
			if r.Bots[0] != players.ControlHungry {
				t.Error("presets must not touch player one's bot")
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, err := ParseDifficulty(" Hard "); err != nil || p != DifficultyHard {
		t.Errorf("ParseDifficulty(Hard) = %q, %v", p, err)
	}
	if _, err := ParseDifficulty("fixed"); !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestLevelOverridesEmpty(t *testing.T) {
	if !(LevelOverrides{}).Empty() {
		t.Error("zero overrides should be empty")
	}
	o := LevelOverrides{Enemies: map[string]int{}}
	if o.Empty() {
		t.Error("an explicit empty enemy map is an override")
	}
	if got := o.Apply(level.Lookup(level.Level1).Config); len(got.Enemies) != 0 {
		t.Errorf("enemies = %v, expected none", got.Enemies)
	}
}

func TestSessionOptions(t *testing.T) {
	r, _ := DefaultIceArenaConfig().Resolve()
	opts := r.SessionOptions(7)
	if opts.Seed != 7 || opts.MaxTime != 180 || opts.RippleOnWave != session.RippleNone {
		t.Errorf("options = %+v", opts)
	}
}

package level

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/board"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/enemies"
	"github.com/vovakirdan/icearena/internal/games/icearena/items"
)

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
	}{
		{"empty", nil},
		{"empty row", []string{""}},
		{"ragged", []string{"####", "#..", "####"}},
		{"unknown code", []string{"###", "#?#", "###"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap(tt.layout)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestBuiltinLayoutsAreValid(t *testing.T) {
	for _, def := range Builtins() {
		m, err := ParseMap(def.Layout)
		if err != nil {
			t.Errorf("%s: %v", def.ID, err)
			continue
		}
		if m.Width != 18 || m.Height != 10 {
			t.Errorf("%s: size %dx%d, want 18x10", def.ID, m.Width, m.Height)
		}
		if spawns := m.Positions(CodeSpawn); len(spawns) != 1 || spawns[0] != core.C(1, 1) {
			t.Errorf("%s: spawns = %v", def.ID, spawns)
		}
	}
}

func TestPresets(t *testing.T) {
	l1 := Lookup(Level1)
	if len(l1.Config.Waves) != 2 || l1.Config.Waves[0] != (WaveSpec{Type: "GRAPE", Count: 8}) {
		t.Errorf("LEVEL_1 waves = %v", l1.Config.Waves)
	}
	if l1.Config.Enemies["TROLL"] != 2 {
		t.Errorf("LEVEL_1 enemies = %v", l1.Config.Enemies)
	}

	l3 := Lookup(Level3)
	if l3.Config.TotalFruit() != 16 || l3.Config.Enemies["NARWHAL"] != 1 {
		t.Errorf("LEVEL_3 config = %+v", l3.Config)
	}

	def := Lookup("custom")
	if len(def.Config.Waves) != 1 || def.Config.Enemies["TROLL"] != 1 || IsBuiltin("custom") {
		t.Errorf("default preset = %+v", def.Config)
	}

	// Lookup hands out copies
	l1.Config.Waves[0].Count = 99
	if Lookup(Level1).Config.Waves[0].Count != 8 {
		t.Error("Lookup leaked shared state")
	}
}

func TestNext(t *testing.T) {
	if n, ok := Next(Level1); !ok || n != Level2 {
		t.Errorf("Next(LEVEL_1) = %s, %v", n, ok)
	}
	if n, ok := Next(Level2); !ok || n != Level3 {
		t.Errorf("Next(LEVEL_2) = %s, %v", n, ok)
	}
	if _, ok := Next(Level3); ok {
		t.Error("LEVEL_3 is the last level")
	}
	if _, ok := Next("frozen_lake"); ok {
		t.Error("unknown level has no successor")
	}
}

func TestNormalize(t *testing.T) {
	cfg := Configuration{
		Waves:   []WaveSpec{{Type: " grape ", Count: 2}, {Type: "banana", Count: 0}},
		Enemies: map[string]int{"troll": -3, "Squid": 2},
	}.Normalize()

	if len(cfg.Waves) != 1 || cfg.Waves[0].Type != "GRAPE" {
		t.Errorf("waves = %v", cfg.Waves)
	}
	if cfg.Enemies["TROLL"] != 0 || cfg.Enemies["SQUID"] != 2 {
		t.Errorf("enemies = %v", cfg.Enemies)
	}
}

type world struct {
	board   *board.Board
	items   *items.Controller
	enemies *enemies.Controller
	placer  *Placer
}

func newWorld(t *testing.T, layout []string) world {
	t.Helper()
	m, err := ParseMap(layout)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	rng := core.NewRand(11)
	b := board.New(m.Width, m.Height)
	it := items.NewController(b, rng)
	en := enemies.NewController(b, it)
	p := &Placer{Board: b, Items: it, Enemies: en, Rand: rng}
	if err := p.ApplyMap(m); err != nil {
		t.Fatalf("ApplyMap failed: %v", err)
	}
	return world{board: b, items: it, enemies: en, placer: p}
}

func TestApplyMap(t *testing.T) {
	w := newWorld(t, []string{
		"#####",
		"#ICH#",
		"#####",
	})

	if w.board.ContentAt(0, 0) != board.Wall {
		t.Error("wall not applied")
	}
	if w.board.ContentAt(1, 1) != board.Ice || !w.items.HasKindAt(1, 1, items.KindIceBlock) {
		t.Error("ice not applied")
	}
	if !w.items.HasKindAt(2, 1, items.KindCampfire) || !w.items.HasKindAt(3, 1, items.KindHotTile) {
		t.Error("campfire or hot tile missing")
	}
	if info := w.items.Infos()[0]; info.ID != "obs_1_1" {
		t.Errorf("obstacle id = %s, want obs_1_1", info.ID)
	}
}

func inBand(c core.Coord, w, h int) bool {
	if c.X < 2 || c.X >= w-2 || c.Y < 2 || c.Y >= h-2 {
		return false
	}
	if c.X <= 2 && c.Y <= 2 {
		return false
	}
	if c.X >= w-3 && c.Y >= h-3 {
		return false
	}
	return true
}

func TestSpawnFruitWave(t *testing.T) {
	w := newWorld(t, Lookup(Level1).Layout)
	w.items.SpawnObstacle(string(items.KindHotTile), "hot", 5, 4)
	cfg := Lookup(Level1).Config

	if !w.placer.SpawnFruitWave(cfg, 0) {
		t.Fatal("wave 0 should exist")
	}
	if got := w.items.RemainingFruitsByType()[items.KindGrape]; got != 8 {
		t.Errorf("spawned %d grapes, want 8", got)
	}
	for _, info := range w.items.Infos() {
		if info.Type != "GRAPE" {
			continue
		}
		if !inBand(core.C(info.X, info.Y), 18, 10) {
			t.Errorf("fruit %s at (%d,%d) outside the spawn band", info.ID, info.X, info.Y)
		}
		if info.X == 5 && info.Y == 4 {
			t.Error("fruit spawned on a hot tile")
		}
		if !strings.HasPrefix(info.ID, "wave0_GRAPE_") {
			t.Errorf("fruit id = %s", info.ID)
		}
	}

	if w.placer.SpawnFruitWave(cfg, 2) || w.placer.SpawnFruitWave(cfg, -1) {
		t.Error("out-of-range waves should report false")
	}
}

func TestApplyConfiguration(t *testing.T) {
	w := newWorld(t, Lookup("open").Layout)
	w.placer.ApplyConfiguration(DefaultConfiguration())

	if got := len(w.enemies.Enemies()); got != 5 {
		t.Errorf("spawned %d enemies, want 5", got)
	}
	if got := len(w.items.Infos()); got != 9 {
		t.Errorf("spawned %d obstacles, want 9", got)
	}

	seen := make(map[core.Coord]bool)
	for _, e := range w.enemies.Enemies() {
		seen[e.Pos()] = true
		if !inBand(e.Pos(), 18, 10) {
			t.Errorf("enemy %s outside the spawn band", e.ID)
		}
	}
	for _, info := range w.items.Infos() {
		c := core.C(info.X, info.Y)
		if seen[c] {
			t.Errorf("tile %v used twice", c)
		}
		seen[c] = true
	}
}

func TestPlacerRunsOutOfTiles(t *testing.T) {
	w := newWorld(t, []string{
		"#######",
		"#.....#",
		"#.....#",
		"#.....#",
		"#.....#",
		"#######",
	})
	// band is x in [2,5), y in [2,4) minus the corners: (3,2), (4,2), (2,3), (3,3)
	cfg := Configuration{Waves: []WaveSpec{{Type: "BANANA", Count: 10}}}
	w.placer.SpawnFruitWave(cfg, 0)
	if got := w.items.FruitCount(); got != 4 {
		t.Errorf("FruitCount = %d, want 4", got)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	l := NewLoader(filepath.Join("testdata", "levels"))

	ids, err := l.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "frozen_lake" || ids[1] != "hot_springs" {
		t.Errorf("ids = %v, want [frozen_lake hot_springs]", ids)
	}

	lake, err := l.LoadByID("frozen_lake")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lake.Name != "Frozen Lake" || lake.Config.Waves[0].Type != "GRAPE" || lake.Config.Enemies["TROLL"] != 1 {
		t.Errorf("frozen_lake = %+v", lake)
	}
	if lake.FilePath == "" {
		t.Error("FilePath should be set")
	}

	springs, _ := l.LoadByID("hot_springs")
	if springs.Name != "hot_springs" {
		t.Errorf("name should default to id, got %s", springs.Name)
	}

	if _, err := l.LoadByID("missing"); !errors.IsConfiguration(err) {
		t.Errorf("missing level error = %v", err)
	}
}

func TestLoadFileRejectsRaggedMap(t *testing.T) {
	l := NewLoader("testdata")
	_, err := l.LoadFile(filepath.Join("testdata", "levels", "broken.yaml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

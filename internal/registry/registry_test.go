package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/level"
)

const lakeYAML = `id: frozen_lake
name: Frozen Lake
map:
  - "##########"
  - "#........#"
  - "#........#"
  - "#........#"
  - "#........#"
  - "##########"
waves:
  - type: grape
    count: 4
enemies:
  troll: 2
`

func registerBuiltins(t *testing.T) {
	t.Helper()
	unregisterAll()
	t.Cleanup(unregisterAll)
	for _, def := range level.Builtins() {
		Register(def)
	}
}

func TestRegisterAndGet(t *testing.T) {
	registerBuiltins(t)

	if !Exists(level.Level2) {
		t.Fatal("LEVEL_2 should be registered")
	}
	def, err := Get(level.Level2)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if def.Name != "Pineapple Pier" {
		t.Errorf("Name = %q", def.Name)
	}

	// Returned definitions are copies
	def.Layout[0] = "mutated"
	again, _ := Get(level.Level2)
	if again.Layout[0] == "mutated" {
		t.Error("Get should return a copy of the layout")
	}
}

func TestGetUnknown(t *testing.T) {
	registerBuiltins(t)

	_, err := Get("nope")
	if !errors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	registerBuiltins(t)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(level.Lookup(level.Level1))
}

func TestAddRejectsEmptyID(t *testing.T) {
	registerBuiltins(t)

	err := Add(level.Definition{})
	if errors.GetCode(err) != errors.CodeInvalidArgument {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestLoadDirAndList(t *testing.T) {
	registerBuiltins(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lake.yaml"), []byte(lakeYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	// Same id as a shipped level: skipped
	dup := "id: LEVEL_1\nmap:\n  - \"#####\"\n  - \"#...#\"\n  - \"#####\"\nwaves:\n  - {type: banana, count: 1}\n"
	if err := os.WriteFile(filepath.Join(dir, "dup.yml"), []byte(dup), 0o600); err != nil {
		t.Fatal(err)
	}

	added, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, expected 1", added)
	}

	list := List()
	if len(list) != 4 {
		t.Fatalf("List() has %d levels, expected 4", len(list))
	}
	wantOrder := []string{level.Level1, level.Level2, level.Level3, "frozen_lake"}
	for i, id := range wantOrder {
		if list[i].ID != id {
			t.Errorf("List()[%d] = %s, expected %s", i, list[i].ID, id)
		}
	}

	lake := list[3]
	if lake.Builtin || lake.Source == "" {
		t.Errorf("file level info = %+v", lake)
	}
	if lake.Waves != 1 || lake.Fruit != 4 || lake.Enemies != 2 {
		t.Errorf("file level counts = %+v", lake)
	}
	if !list[0].Builtin {
		t.Error("LEVEL_1 should be builtin")
	}
}

func TestLoadDirMissing(t *testing.T) {
	registerBuiltins(t)

	if _, err := LoadDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestNext(t *testing.T) {
	registerBuiltins(t)

	if next, ok := Next(level.Level1); !ok || next != level.Level2 {
		t.Errorf("Next(LEVEL_1) = %q, %v", next, ok)
	}
	if _, ok := Next(level.Level3); ok {
		t.Error("LEVEL_3 is the last level")
	}
	if _, ok := Next("frozen_lake"); ok {
		t.Error("file levels have no successor")
	}
}

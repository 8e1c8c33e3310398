// Package registry keeps every playable level by id. Shipped levels register
// themselves from an init function; level files are added at startup from a
// directory, so the front-end can list and start levels without knowing
// where they came from.
package registry

import (
	"cmp"
	"slices"
	"sync"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/level"
)

// LevelInfo describes a registered level.
type LevelInfo struct {
	ID      string
	Name    string
	Builtin bool
	Source  string // file path, empty for shipped levels
	Waves   int
	Fruit   int
	Enemies int
}

var (
	levels = make(map[string]level.Definition)
	mu     sync.RWMutex
)

// Register adds a level. Typically called from an init function.
// Panics if a level with the same id is already registered.
func Register(def level.Definition) {
	if err := Add(def); err != nil {
		panic("registry: " + err.Error())
	}
}

// Add registers a level, failing if the id is empty or taken.
func Add(def level.Definition) error {
	if def.ID == "" {
		return errors.InvalidArgument("level id is required")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := levels[def.ID]; exists {
		return errors.AlreadyExistsf("level %q already registered", def.ID)
	}
	levels[def.ID] = def
	return nil
}

// LoadDir registers every level file under root and returns how many were
// added. Files whose id is already taken are skipped.
func LoadDir(root string) (int, error) {
	defs, err := level.NewLoader(root).LoadAll()
	if err != nil {
		return 0, errors.Wrapf(err, "load levels from %s", root)
	}

	added := 0
	for _, def := range defs {
		if err := Add(def); err != nil {
			if errors.GetCode(err) == errors.CodeAlreadyExists {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

// List returns every registered level: shipped levels in play order first,
// then the rest sorted by id.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(levels))
	for _, def := range levels {
		result = append(result, info(def))
	}

	slices.SortFunc(result, func(a, b LevelInfo) int {
		if a.Builtin != b.Builtin {
			if a.Builtin {
				return -1
			}
			return 1
		}
		if a.Builtin {
			return cmp.Compare(playOrder(a.ID), playOrder(b.ID))
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

func info(def level.Definition) LevelInfo {
	enemies := 0
	for _, n := range def.Config.Enemies {
		enemies += n
	}
	return LevelInfo{
		ID:      def.ID,
		Name:    def.Name,
		Builtin: def.FilePath == "" && level.IsBuiltin(def.ID),
		Source:  def.FilePath,
		Waves:   len(def.Config.Waves),
		Fruit:   def.Config.TotalFruit(),
		Enemies: enemies,
	}
}

func playOrder(id string) int {
	return slices.IndexFunc(level.Builtins(), func(d level.Definition) bool { return d.ID == id })
}

// Get returns a copy of a registered level.
func Get(id string) (level.Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	def, ok := levels[id]
	if !ok {
		return level.Definition{}, errors.Configurationf("unknown level %q", id).
			WithMeta("level", id)
	}
	def.Layout = slices.Clone(def.Layout)
	def.Config = def.Config.Clone()
	return def, nil
}

// Exists reports whether a level with the given id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := levels[id]
	return ok
}

// Next returns the registered level that follows id in play order.
func Next(id string) (string, bool) {
	next, ok := level.Next(id)
	if !ok || !Exists(next) {
		return "", false
	}
	return next, true
}

// unregisterAll clears the registry. Tests only.
func unregisterAll() {
	mu.Lock()
	defer mu.Unlock()
	levels = make(map[string]level.Definition)
}

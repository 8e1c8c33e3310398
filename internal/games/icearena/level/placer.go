package level

import (
	"fmt"

	"github.com/vovakirdan/icearena/internal/games/icearena/board"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/items"
)

// Terrain is the board as the placer sees it.
type Terrain interface {
	Width() int
	Height() int
	IsWalkable(x, y int) bool
	SetMapObstacle(x, y int, content board.Content) error
}

// ItemSpawner is the item controller as the placer sees it.
type ItemSpawner interface {
	SpawnFruit(name, id string, x, y int) bool
	SpawnObstacle(name, id string, x, y int) bool
	HasKindAt(x, y int, kinds ...items.Kind) bool
}

// EnemySpawner is the enemy controller as the placer sees it.
type EnemySpawner interface {
	Spawn(name, id string, x, y int) bool
}

// fruitBlockers are obstacles fruit never spawns on.
var fruitBlockers = []items.Kind{items.KindHotTile, items.KindCampfire, items.KindIceBlock}

// Placer puts map terrain, configured enemies and obstacles, and fruit
// waves onto a freshly reset board.
type Placer struct {
	Board   Terrain
	Items   ItemSpawner
	Enemies EnemySpawner
	Rand    *core.Rand
}

// ApplyMap writes walls and spawns the map's initial obstacles.
func (p *Placer) ApplyMap(m *Map) error {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			id := fmt.Sprintf("obs_%d_%d", x, y)
			switch m.At(x, y) {
			case CodeWall:
				if err := p.Board.SetMapObstacle(x, y, board.Wall); err != nil {
					return err
				}
			case CodeIce:
				p.Items.SpawnObstacle(string(items.KindIceBlock), id, x, y)
			case CodeCampfire:
				p.Items.SpawnObstacle(string(items.KindCampfire), id, x, y)
			case CodeHotTile:
				p.Items.SpawnObstacle(string(items.KindHotTile), id, x, y)
			}
		}
	}
	return nil
}

// ApplyConfiguration scatters the configured enemies and obstacles over
// random valid tiles. Each tile is used at most once.
func (p *Placer) ApplyConfiguration(cfg Configuration) {
	free := p.candidates(nil)

	for _, name := range sortedKeys(cfg.Enemies) {
		for i := 0; i < cfg.Enemies[name]; i++ {
			pos, ok := p.take(&free)
			if !ok {
				return
			}
			p.Enemies.Spawn(name, fmt.Sprintf("custom_enemy_%s_%d", name, i), pos.X, pos.Y)
		}
	}
	for _, name := range sortedKeys(cfg.Obstacles) {
		for i := 0; i < cfg.Obstacles[name]; i++ {
			pos, ok := p.take(&free)
			if !ok {
				return
			}
			p.Items.SpawnObstacle(name, fmt.Sprintf("custom_obs_%s_%d", name, i), pos.X, pos.Y)
		}
	}
}

// SpawnFruitWave places wave index of cfg on random valid tiles. It returns
// false when there is no such wave.
func (p *Placer) SpawnFruitWave(cfg Configuration, index int) bool {
	if index < 0 || index >= len(cfg.Waves) {
		return false
	}
	wave := cfg.Waves[index]
	free := p.candidates(func(c core.Coord) bool {
		return !p.Items.HasKindAt(c.X, c.Y, fruitBlockers...)
	})
	for n := 0; n < wave.Count; n++ {
		pos, ok := p.take(&free)
		if !ok {
			break
		}
		p.Items.SpawnFruit(wave.Type, fmt.Sprintf("wave%d_%s_%d", index, wave.Type, n), pos.X, pos.Y)
	}
	return true
}

// candidates returns walkable tiles of the inner band outside both player
// spawn corners, filtered by keep when it is set.
func (p *Placer) candidates(keep func(core.Coord) bool) []core.Coord {
	w, h := p.Board.Width(), p.Board.Height()
	var out []core.Coord
	for y := 2; y < h-2; y++ {
		for x := 2; x < w-2; x++ {
			if x <= 2 && y <= 2 {
				continue
			}
			if x >= w-3 && y >= h-3 {
				continue
			}
			if !p.Board.IsWalkable(x, y) {
				continue
			}
			c := core.C(x, y)
			if keep != nil && !keep(c) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

func (p *Placer) take(free *[]core.Coord) (core.Coord, bool) {
	list := *free
	if len(list) == 0 {
		return core.Coord{}, false
	}
	i := p.Rand.IntN(len(list))
	c := list[i]
	*free = append(list[:i], list[i+1:]...)
	return c, true
}

package items

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/icearena/internal/games/icearena/board"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
)

// Terrain is the part of the board the item controller reads and writes.
type Terrain interface {
	Width() int
	Height() int
	IsValidPosition(x, y int) bool
	IsWalkable(x, y int) bool
	IsAnimating(x, y int) bool
	CreateIceBlock(x, y int) bool
	BreakIceBlock(x, y int) bool
}

// Controller owns every live item and the player ice row queue.
type Controller struct {
	grid Terrain
	rng  *core.Rand

	items    []*Item
	row      []RowAction
	rowTimer float64
	iceSeq   int
}

// NewController creates an empty controller over the given terrain.
func NewController(t Terrain, rng *core.Rand) *Controller {
	return &Controller{grid: t, rng: rng}
}

func (c *Controller) terrain() Terrain { return c.grid }
func (c *Controller) rand() *core.Rand { return c.rng }

func (c *Controller) itemsAt(x, y int) []*Item {
	var out []*Item
	for _, it := range c.items {
		if it.X == x && it.Y == y {
			out = append(out, it)
		}
	}
	return out
}

// Reset drops every item and any pending row action.
func (c *Controller) Reset() {
	c.items = nil
	c.row = nil
	c.rowTimer = 0
	c.iceSeq = 0
}

// SpawnFruit places a fruit. It returns false if the name is not a fruit or
// the tile is not walkable, is mid-animation, or holds a blocking item.
func (c *Controller) SpawnFruit(name, id string, x, y int) bool {
	it, ok := NewFruit(name, id, x, y)
	if !ok {
		return false
	}
	if !c.grid.IsWalkable(x, y) || c.grid.IsAnimating(x, y) || c.blockedAt(x, y) {
		return false
	}
	c.items = append(c.items, it)
	return true
}

// SpawnObstacle places an obstacle. An ice block also claims the board cell.
func (c *Controller) SpawnObstacle(name, id string, x, y int) bool {
	it, ok := NewObstacle(name, id, x, y)
	if !ok {
		return false
	}
	if !c.grid.IsValidPosition(x, y) || c.grid.IsAnimating(x, y) || c.blockedAt(x, y) {
		return false
	}
	if f := it.b().canSpawnAt; f != nil && !f(it, c) {
		return false
	}
	if it.Kind == KindIceBlock {
		if !c.grid.CreateIceBlock(x, y) {
			return false
		}
	} else if !c.grid.IsWalkable(x, y) {
		return false
	}
	c.items = append(c.items, it)
	return true
}

func (c *Controller) blockedAt(x, y int) bool {
	for _, it := range c.items {
		if it.X == x && it.Y == y && it.Blocking() {
			return true
		}
	}
	return false
}

func (c *Controller) nextIceID() string {
	c.iceSeq++
	return fmt.Sprintf("ice_%d", c.iceSeq)
}

// Update advances every item, then drains the row queue head if its delay
// has elapsed.
func (c *Controller) Update(dt float64) {
	for _, it := range c.items {
		it.update(dt)
	}
	c.updateRow(dt)
}

// IsObstacleAt reports whether a non-walkable item occupies (x, y).
func (c *Controller) IsObstacleAt(x, y int) bool {
	for _, it := range c.items {
		if it.X == x && it.Y == y && !it.Walkable() {
			return true
		}
	}
	return false
}

// HasDestructibleAt reports whether the first blocking item at (x, y) can be
// broken.
func (c *Controller) HasDestructibleAt(x, y int) bool {
	for _, it := range c.items {
		if it.X != x || it.Y != y {
			continue
		}
		if it.Destructible() {
			return true
		}
		if !it.Walkable() {
			return false
		}
	}
	return false
}

// BreakIceBlock removes the first destructible item at (x, y), frees the
// board cell and lets items underneath react.
func (c *Controller) BreakIceBlock(x, y int) bool {
	for i, it := range c.items {
		if it.X != x || it.Y != y {
			continue
		}
		if it.Destructible() {
			c.items = slices.Delete(c.items, i, i+1)
			c.grid.BreakIceBlock(x, y)
			if f := it.b().onDestroy; f != nil {
				f(it, c)
			}
			return true
		}
		if !it.Walkable() {
			return false
		}
	}
	return false
}

// CollectItemAt collects the first collectable item at (x, y) and returns
// its score. A lit campfire stays in place and yields Lethal. Zero means
// nothing was collected.
func (c *Controller) CollectItemAt(x, y int) int {
	for i, it := range c.items {
		if it.X != x || it.Y != y || !it.Collectable() {
			continue
		}
		score := it.Score()
		if score == Lethal {
			return Lethal
		}
		c.items = slices.Delete(c.items, i, i+1)
		return score
	}
	return 0
}

// HasDangerousCactusAt reports whether a spiked cactus occupies (x, y).
func (c *Controller) HasDangerousCactusAt(x, y int) bool {
	for _, it := range c.items {
		if it.X == x && it.Y == y && it.Dangerous() {
			return true
		}
	}
	return false
}

// HasKindAt reports whether any item of one of the given kinds is at (x, y).
func (c *Controller) HasKindAt(x, y int, kinds ...Kind) bool {
	for _, it := range c.items {
		if it.X == x && it.Y == y && slices.Contains(kinds, it.Kind) {
			return true
		}
	}
	return false
}

// FruitCount returns the number of fruit left on the board.
func (c *Controller) FruitCount() int {
	n := 0
	for _, it := range c.items {
		if it.Fruit() {
			n++
		}
	}
	return n
}

// RemainingFruitsByType counts fruit per kind.
func (c *Controller) RemainingFruitsByType() map[Kind]int {
	out := make(map[Kind]int)
	for _, it := range c.items {
		if it.Fruit() {
			out[it.Kind]++
		}
	}
	return out
}

// OnPlayerMove lets items react to a player step.
func (c *Controller) OnPlayerMove() {
	for _, it := range c.items {
		if f := it.b().onPlayerMove; f != nil {
			f(it, c)
		}
	}
}

// Fruits returns positions of fruit that can currently be collected.
func (c *Controller) Fruits() []core.Coord {
	var out []core.Coord
	for _, it := range c.items {
		if it.Fruit() && it.Collectable() {
			out = append(out, it.Pos())
		}
	}
	return out
}

// Items returns a copy of every live item.
func (c *Controller) Items() []Item {
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = *it
	}
	return out
}

// Infos returns renderer descriptors for every item.
func (c *Controller) Infos() []core.EntityInfo {
	out := make([]core.EntityInfo, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it.Info())
	}
	return out
}

// ApplyRipple mirrors finished board ripple cells into ice items.
func (c *Controller) ApplyRipple(commits []board.Commit) {
	for _, cm := range commits {
		switch cm.Content {
		case board.Ice:
			if !c.HasKindAt(cm.X, cm.Y, KindIceBlock) {
				c.items = append(c.items, newItem(KindIceBlock, c.nextIceID(), cm.X, cm.Y))
			}
		case board.Empty:
			for i := 0; i < len(c.items); i++ {
				it := c.items[i]
				if it.X != cm.X || it.Y != cm.Y || it.Kind != KindIceBlock {
					continue
				}
				c.items = slices.Delete(c.items, i, i+1)
				it.b().onDestroy(it, c)
				i--
			}
		}
	}
}

package enemies

import (
	"encoding/json"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
)

// Terrain answers board walkability.
type Terrain interface {
	IsWalkable(x, y int) bool
}

// Obstacles is the part of the item controller enemies interact with.
type Obstacles interface {
	IsObstacleAt(x, y int) bool
	BreakIceBlock(x, y int) bool
}

// Controller owns every enemy and arbitrates their moves.
type Controller struct {
	grid    Terrain
	items   Obstacles
	enemies []*Enemy
	target  core.Coord
}

// NewController creates an empty controller.
func NewController(t Terrain, items Obstacles) *Controller {
	return &Controller{grid: t, items: items, target: core.C(-1, -1)}
}

// Reset removes every enemy and forgets the player position.
func (c *Controller) Reset() {
	c.enemies = nil
	c.target = core.C(-1, -1)
}

// Spawn adds an enemy on a free tile.
func (c *Controller) Spawn(name, id string, x, y int) bool {
	e, ok := New(name, id, x, y)
	if !ok {
		return false
	}
	if !c.grid.IsWalkable(x, y) || c.items.IsObstacleAt(x, y) {
		return false
	}
	c.enemies = append(c.enemies, e)
	return true
}

// UpdatePlayerPos sets the position chasers aim for.
func (c *Controller) UpdatePlayerPos(x, y int) {
	c.target = core.C(x, y)
}

// Update advances every enemy. An enemy acts once its timer reaches one
// move; acting consumes exactly one move from the timer.
func (c *Controller) Update(dt float64) {
	for _, e := range c.enemies {
		e.MoveTimer += e.Speed * dt
		if e.MoveTimer < 1 {
			continue
		}
		c.act(e)
		e.MoveTimer -= 1
	}
}

func (c *Controller) act(e *Enemy) {
	dir := e.Decide(false, c.target)
	if dir == core.DirNone {
		return
	}
	next := e.Pos().Step(dir)
	blocked := !c.grid.IsWalkable(next.X, next.Y)
	obstacle := c.items.IsObstacleAt(next.X, next.Y)

	if obstacle && e.CanBreakIce() && c.items.BreakIceBlock(next.X, next.Y) {
		return
	}
	if !blocked && !obstacle {
		e.X, e.Y = next.X, next.Y
		return
	}
	e.Decide(true, c.target)
}

// CheckCollision reports whether any enemy stands on (x, y).
func (c *Controller) CheckCollision(x, y int) bool {
	for _, e := range c.enemies {
		if e.X == x && e.Y == y {
			return true
		}
	}
	return false
}

// Enemies returns a copy of every enemy.
func (c *Controller) Enemies() []Enemy {
	out := make([]Enemy, len(c.enemies))
	for i, e := range c.enemies {
		out[i] = *e
	}
	return out
}

// Infos returns renderer descriptors for every enemy.
func (c *Controller) Infos() []core.EntityInfo {
	out := make([]core.EntityInfo, 0, len(c.enemies))
	for _, e := range c.enemies {
		out = append(out, e.Info())
	}
	return out
}

// Occupied reports whether an enemy stands on pos.
func (c *Controller) Occupied(pos core.Coord) bool {
	return c.CheckCollision(pos.X, pos.Y)
}

type controllerState struct {
	Enemies []*Enemy   `json:"enemies"`
	Target  core.Coord `json:"target"`
}

// MarshalJSON encodes enemies and the last known player position.
func (c *Controller) MarshalJSON() ([]byte, error) {
	return json.Marshal(controllerState{Enemies: c.enemies, Target: c.target})
}

// UnmarshalJSON restores state into a controller built with NewController.
func (c *Controller) UnmarshalJSON(data []byte) error {
	var st controllerState
	if err := json.Unmarshal(data, &st); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "decode enemies")
	}
	for _, e := range st.Enemies {
		if e == nil {
			return errors.InvalidArgument("null enemy in saved state")
		}
		if _, ok := behaviours[e.Kind]; !ok {
			return errors.InvalidArgumentf("unknown enemy kind %q", e.Kind)
		}
	}
	c.enemies = st.Enemies
	c.target = st.Target
	return nil
}

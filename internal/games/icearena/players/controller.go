package players

import (
	"encoding/json"
	"slices"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
)

// BotInterval is the time between two bot decisions.
const BotInterval = 0.25

// Terrain answers board geometry questions.
type Terrain interface {
	IsValidPosition(x, y int) bool
	IsWalkable(x, y int) bool
}

// Items is the part of the item controller players act through.
type Items interface {
	IsObstacleAt(x, y int) bool
	HasDestructibleAt(x, y int) bool
	QueueIceCreation(tiles []core.Coord)
	QueueIceDestruction(tiles []core.Coord)
	OnPlayerMove()
	Fruits() []core.Coord
}

// Controller owns every player, keyed by id.
type Controller struct {
	grid    Terrain
	items   Items
	rng     *core.Rand
	players map[string]*Player
}

// NewController creates a controller with no players.
func NewController(t Terrain, items Items, rng *core.Rand) *Controller {
	return &Controller{
		grid:    t,
		items:   items,
		rng:     rng,
		players: make(map[string]*Player),
	}
}

// Reset removes every player.
func (c *Controller) Reset() {
	c.players = make(map[string]*Player)
}

// Add creates a player facing down. It returns false if the id is taken.
func (c *Controller) Add(id string, flavor Flavor, control Control, x, y int) bool {
	if _, exists := c.players[id]; exists {
		return false
	}
	c.players[id] = &Player{
		ID:      id,
		X:       x,
		Y:       y,
		Facing:  core.DirDown,
		Alive:   true,
		Flavor:  flavor,
		Control: control,
	}
	return true
}

// SetName sets the display name of a player.
func (c *Controller) SetName(id, name string) {
	if p := c.players[id]; p != nil {
		p.Name = name
	}
}

// Name returns the display name, falling back to the id.
func (c *Controller) Name(id string) string {
	p := c.players[id]
	if p == nil || p.Name == "" {
		return id
	}
	return p.Name
}

// Get returns a copy of the player and whether it exists.
func (c *Controller) Get(id string) (Player, bool) {
	p := c.players[id]
	if p == nil {
		return Player{}, false
	}
	return *p, true
}

// Position returns the tile of a player.
func (c *Controller) Position(id string) (core.Coord, bool) {
	p := c.players[id]
	if p == nil {
		return core.Coord{}, false
	}
	return p.Pos(), true
}

// IsAlive reports whether the player exists and is alive.
func (c *Controller) IsAlive(id string) bool {
	p := c.players[id]
	return p != nil && p.Alive
}

// Kill marks a player dead.
func (c *Controller) Kill(id string) {
	if p := c.players[id]; p != nil {
		p.Alive = false
	}
}

// AddScore adds points to a player.
func (c *Controller) AddScore(id string, points int) {
	if p := c.players[id]; p != nil {
		p.Score += points
	}
}

// Score returns the player's points.
func (c *Controller) Score(id string) int {
	if p := c.players[id]; p != nil {
		return p.Score
	}
	return 0
}

// Info returns the renderer descriptor, or nil for a missing or dead player.
func (c *Controller) Info(id string) *core.EntityInfo {
	p := c.players[id]
	if p == nil || !p.Alive {
		return nil
	}
	return &core.EntityInfo{ID: p.ID, X: p.X, Y: p.Y, Type: p.TypeName()}
}

// IDs returns every player id in sorted order.
func (c *Controller) IDs() []string {
	ids := make([]string, 0, len(c.players))
	for id := range c.players {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Occupied reports whether a live player stands on pos.
func (c *Controller) Occupied(pos core.Coord) bool {
	for _, p := range c.players {
		if p.Alive && p.X == pos.X && p.Y == pos.Y {
			return true
		}
	}
	return false
}

func (c *Controller) free(pos core.Coord) bool {
	return c.grid.IsWalkable(pos.X, pos.Y) && !c.items.IsObstacleAt(pos.X, pos.Y)
}

// PerformAction applies an action for a player. Unknown and dead players
// are ignored. It returns true when the player moved or queued ice.
func (c *Controller) PerformAction(id string, kind core.ActionKind, dir core.Direction) bool {
	p := c.players[id]
	if p == nil || !p.Alive {
		return false
	}
	if dir != core.DirNone {
		p.Facing = dir
	}

	switch kind {
	case core.ActionMove:
		if dir == core.DirNone {
			return false
		}
		next := p.Pos().Step(dir)
		if !c.free(next) {
			return false
		}
		p.X, p.Y = next.X, next.Y
		c.items.OnPlayerMove()
		return true
	case core.ActionCreateIce:
		next := p.Pos().Step(p.Facing)
		if c.grid.IsValidPosition(next.X, next.Y) && c.items.IsObstacleAt(next.X, next.Y) {
			return c.breakRow(p)
		}
		return c.createRow(p)
	case core.ActionBreakIce:
		return c.breakRow(p)
	}
	return false
}

func (c *Controller) createRow(p *Player) bool {
	var tiles []core.Coord
	for pos := p.Pos().Step(p.Facing); c.grid.IsValidPosition(pos.X, pos.Y) && c.free(pos); pos = pos.Step(p.Facing) {
		tiles = append(tiles, pos)
	}
	if len(tiles) == 0 {
		return false
	}
	c.items.QueueIceCreation(tiles)
	return true
}

func (c *Controller) breakRow(p *Player) bool {
	var tiles []core.Coord
	for pos := p.Pos().Step(p.Facing); c.grid.IsValidPosition(pos.X, pos.Y) && c.items.HasDestructibleAt(pos.X, pos.Y); pos = pos.Step(p.Facing) {
		tiles = append(tiles, pos)
	}
	if len(tiles) == 0 {
		return false
	}
	c.items.QueueIceDestruction(tiles)
	return true
}

// UpdateBots advances every bot's decision timer and lets due bots act.
func (c *Controller) UpdateBots(dt float64, threats []Threat) {
	for _, id := range c.IDs() {
		p := c.players[id]
		if !p.Alive || !p.IsBot() {
			continue
		}
		p.Timer += dt
		if p.Timer < BotInterval {
			continue
		}
		if d := c.Decide(id, threats); d.Dir != core.DirNone {
			c.PerformAction(id, d.Kind, d.Dir)
		}
		p.Timer = 0
	}
}

// Decide asks a bot's strategy what to do from its current position. A
// human or unknown player gets a zero Decision.
func (c *Controller) Decide(id string, threats []Threat) Decision {
	p := c.players[id]
	if p == nil {
		return Decision{}
	}
	s, ok := strategies[p.Control]
	if !ok {
		return Decision{}
	}
	v := view{
		self:    p.Pos(),
		fruits:  c.items.Fruits(),
		threats: threats,
		rng:     c.rng,
	}
	for i, d := range core.Directions {
		v.canMove[i] = c.free(p.Pos().Step(d))
	}
	return s(v)
}

// MarshalJSON encodes players in id order.
func (c *Controller) MarshalJSON() ([]byte, error) {
	list := make([]*Player, 0, len(c.players))
	for _, id := range c.IDs() {
		list = append(list, c.players[id])
	}
	return json.Marshal(list)
}

// UnmarshalJSON restores players into a controller built with NewController.
func (c *Controller) UnmarshalJSON(data []byte) error {
	var list []*Player
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "decode players")
	}
	players := make(map[string]*Player, len(list))
	for _, p := range list {
		if p == nil || p.ID == "" {
			return errors.InvalidArgument("player without id in saved state")
		}
		players[p.ID] = p
	}
	c.players = players
	return nil
}

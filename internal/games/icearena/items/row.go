package items

import "github.com/vovakirdan/icearena/internal/games/icearena/core"

// RowDelay is the pause between two tiles of a player ice row.
const RowDelay = 0.08

// RowAction is one queued tile of a player ice row.
type RowAction struct {
	Kind core.RippleKind `json:"kind"`
	X    int             `json:"x"`
	Y    int             `json:"y"`
}

// QueueIceCreation appends a create action for every tile, in order.
func (c *Controller) QueueIceCreation(tiles []core.Coord) {
	for _, t := range tiles {
		c.row = append(c.row, RowAction{Kind: core.RippleCreate, X: t.X, Y: t.Y})
	}
}

// QueueIceDestruction appends a destroy action for every tile, in order.
func (c *Controller) QueueIceDestruction(tiles []core.Coord) {
	for _, t := range tiles {
		c.row = append(c.row, RowAction{Kind: core.RippleDestroy, X: t.X, Y: t.Y})
	}
}

// PendingRow returns a copy of the queued row actions.
func (c *Controller) PendingRow() []RowAction {
	out := make([]RowAction, len(c.row))
	copy(out, c.row)
	return out
}

func (c *Controller) updateRow(dt float64) {
	if len(c.row) == 0 {
		c.rowTimer = 0
		return
	}
	c.rowTimer += dt
	if c.rowTimer < RowDelay {
		return
	}
	c.rowTimer = 0

	head := c.row[0]
	c.row = c.row[1:]
	if len(c.row) == 0 {
		c.row = nil
	}

	switch head.Kind {
	case core.RippleCreate:
		c.SpawnObstacle(string(KindIceBlock), c.nextIceID(), head.X, head.Y)
	case core.RippleDestroy:
		c.BreakIceBlock(head.X, head.Y)
	}
}

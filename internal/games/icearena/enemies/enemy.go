// Package enemies implements the arena monsters and the controller that
// moves them against the board and items.
package enemies

import "github.com/vovakirdan/icearena/internal/games/icearena/core"

// Kind identifies an enemy archetype.
type Kind string

const (
	KindTroll     Kind = "TROLL"
	KindFlowerPot Kind = "FLOWERPOT"
	KindSquid     Kind = "SQUID"
	KindNarwhal   Kind = "NARWHAL"
)

// Kinds lists every archetype.
var Kinds = []Kind{KindTroll, KindFlowerPot, KindSquid, KindNarwhal}

const (
	// BaseSpeed is the default number of moves per second.
	BaseSpeed = 3.3
	// DashSpeed is the narwhal speed while dashing.
	DashSpeed = 16.0
)

// Enemy is one monster on the board.
type Enemy struct {
	ID        string         `json:"id"`
	Kind      Kind           `json:"kind"`
	X         int            `json:"x"`
	Y         int            `json:"y"`
	Speed     float64        `json:"speed"`
	MoveTimer float64        `json:"move_timer"`
	Facing    core.Direction `json:"facing"`
	Dashing   bool           `json:"dashing,omitempty"`
}

type behaviour struct {
	facing      core.Direction
	decide      func(e *Enemy, blocked bool, target core.Coord) core.Direction
	canBreakIce func(e *Enemy) bool
	typeName    func(e *Enemy) string
}

var behaviours = map[Kind]behaviour{
	KindTroll: {
		facing:      core.DirRight,
		decide:      trollDecide,
		canBreakIce: func(*Enemy) bool { return false },
	},
	KindFlowerPot: {
		facing:      core.DirDown,
		decide:      chaseDecide,
		canBreakIce: func(*Enemy) bool { return false },
	},
	KindSquid: {
		facing:      core.DirDown,
		decide:      chaseDecide,
		canBreakIce: func(*Enemy) bool { return true },
	},
	KindNarwhal: {
		facing:      core.DirLeft,
		decide:      narwhalDecide,
		canBreakIce: func(e *Enemy) bool { return e.Dashing },
		typeName: func(e *Enemy) string {
			if e.Dashing {
				return "NARWHAL_DASH"
			}
			return string(KindNarwhal)
		},
	},
}

// New creates an enemy of the given archetype. It returns false for an
// unknown name.
func New(name, id string, x, y int) (*Enemy, bool) {
	b, ok := behaviours[Kind(name)]
	if !ok {
		return nil, false
	}
	return &Enemy{
		ID:     id,
		Kind:   Kind(name),
		X:      x,
		Y:      y,
		Speed:  BaseSpeed,
		Facing: b.facing,
	}, true
}

// Decide returns the direction the enemy wants to move. blocked is true
// when the previous intent could not be carried out.
func (e *Enemy) Decide(blocked bool, target core.Coord) core.Direction {
	return behaviours[e.Kind].decide(e, blocked, target)
}

// CanBreakIce reports whether the enemy smashes ice in its way.
func (e *Enemy) CanBreakIce() bool {
	return behaviours[e.Kind].canBreakIce(e)
}

// TypeName is the renderer-facing type in the current state.
func (e *Enemy) TypeName() string {
	if f := behaviours[e.Kind].typeName; f != nil {
		return f(e)
	}
	return string(e.Kind)
}

// Pos returns the enemy position.
func (e *Enemy) Pos() core.Coord { return core.C(e.X, e.Y) }

// Info returns the renderer descriptor.
func (e *Enemy) Info() core.EntityInfo {
	return core.EntityInfo{ID: e.ID, X: e.X, Y: e.Y, Type: e.TypeName()}
}

func hasTarget(target core.Coord) bool {
	return target.X >= 0 && target.Y >= 0
}

func trollDecide(e *Enemy, blocked bool, _ core.Coord) core.Direction {
	if blocked {
		e.Facing = e.Facing.Clockwise()
	}
	return e.Facing
}

// chaseDecide walks along the axis with the larger offset, x on ties.
func chaseDecide(e *Enemy, _ bool, target core.Coord) core.Direction {
	if !hasTarget(target) {
		return core.DirNone
	}
	dx := target.X - e.X
	dy := target.Y - e.Y
	if dx == 0 && dy == 0 {
		return core.DirNone
	}
	var dir core.Direction
	switch {
	case abs(dx) >= abs(dy) && dx > 0:
		dir = core.DirRight
	case abs(dx) >= abs(dy):
		dir = core.DirLeft
	case dy > 0:
		dir = core.DirDown
	default:
		dir = core.DirUp
	}
	e.Facing = dir
	return dir
}

// narwhalDecide patrols until aligned with the player, then dashes. Only a
// collision ends the dash.
func narwhalDecide(e *Enemy, blocked bool, target core.Coord) core.Direction {
	if blocked {
		e.Dashing = false
		e.Speed = BaseSpeed
		e.Facing = e.Facing.Opposite()
		return e.Facing
	}
	if e.Dashing || !hasTarget(target) {
		return e.Facing
	}
	switch {
	case target.Y == e.Y && target.X != e.X:
		e.Dashing = true
		e.Speed = DashSpeed
		if target.X > e.X {
			e.Facing = core.DirRight
		} else {
			e.Facing = core.DirLeft
		}
	case target.X == e.X && target.Y != e.Y:
		e.Dashing = true
		e.Speed = DashSpeed
		if target.Y > e.Y {
			e.Facing = core.DirDown
		} else {
			e.Facing = core.DirUp
		}
	}
	return e.Facing
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

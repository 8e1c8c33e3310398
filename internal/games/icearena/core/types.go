// Package core holds the value types shared by every part of the ice arena
// simulation. It is UI-agnostic and has no behaviour beyond small helpers.
package core

import "strings"

// Direction is a facing or movement direction on the grid.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Directions lists the four movement directions in the order bots scan them.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the upper-case name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return "NONE"
	}
}

// Delta returns the (dx, dy) offset for one step. Up decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reversed direction. DirNone stays DirNone.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// Clockwise returns the direction a quarter turn to the right.
func (d Direction) Clockwise() Direction {
	switch d {
	case DirUp:
		return DirRight
	case DirRight:
		return DirDown
	case DirDown:
		return DirLeft
	case DirLeft:
		return DirUp
	default:
		return d
	}
}

// ParseDirection maps an upper-case name back to a Direction.
func ParseDirection(s string) Direction {
	switch s {
	case "UP":
		return DirUp
	case "DOWN":
		return DirDown
	case "LEFT":
		return DirLeft
	case "RIGHT":
		return DirRight
	default:
		return DirNone
	}
}

// ActionKind is what an actor does on its turn.
type ActionKind string

const (
	ActionMove      ActionKind = "MOVE"
	ActionCreateIce ActionKind = "CREATE_ICE"
	ActionBreakIce  ActionKind = "BREAK_ICE"
	ActionWait      ActionKind = "WAIT"
)

// Status is the session state machine.
type Status string

const (
	StatusPlaying  Status = "PLAYING"
	StatusPaused   Status = "PAUSED"
	StatusWon      Status = "WON"
	StatusGameOver Status = "GAME_OVER"
	StatusTimeout  Status = "TIMEOUT"
)

// Terminal reports whether no further ticks change the session.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusGameOver || s == StatusTimeout
}

// Mode selects which players exist and how a death ends the session.
type Mode string

const (
	ModeSingle Mode = "SINGLE"
	ModePVP    Mode = "PVP"
	ModePVM    Mode = "PVM"
	ModeMVM    Mode = "MVM"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeSingle, ModePVP, ModePVM, ModeMVM}

// ParseMode returns the mode for a case-insensitive name and whether it is
// known.
func ParseMode(name string) (Mode, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, m := range Modes {
		if string(m) == name {
			return m, true
		}
	}
	return "", false
}

// RippleKind selects whether a domino builds or melts ice.
type RippleKind string

const (
	RippleCreate  RippleKind = "CREATE"
	RippleDestroy RippleKind = "DESTROY"
)

// EntityInfo is the immutable descriptor handed to renderers.
type EntityInfo struct {
	ID           string `json:"id"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Type         string `json:"type"`
	Destructible bool   `json:"destructible"`
}

// Package players implements the ice cream characters, both human and
// bot-driven, and the controller that resolves their actions.
package players

import (
	"strings"

	"github.com/vovakirdan/icearena/internal/games/icearena/core"
)

// Flavor is the cosmetic ice cream flavour of a player.
type Flavor string

const (
	FlavorVanilla    Flavor = "VANILLA"
	FlavorChocolate  Flavor = "CHOCOLATE"
	FlavorStrawberry Flavor = "STRAWBERRY"
)

// Flavors lists every flavour in menu order.
var Flavors = []Flavor{FlavorVanilla, FlavorChocolate, FlavorStrawberry}

// ParseFlavor maps a case-insensitive name to a Flavor.
func ParseFlavor(name string) (Flavor, bool) {
	f := Flavor(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range Flavors {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Control says who drives a player.
type Control string

const (
	ControlHuman   Control = "HUMAN"
	ControlHungry  Control = "HUNGRY"
	ControlFearful Control = "FEARFUL"
	ControlExpert  Control = "EXPERT"
)

// Strategies lists the bot controls.
var Strategies = []Control{ControlHungry, ControlFearful, ControlExpert}

// ParseControl maps a case-insensitive name to a Control.
func ParseControl(name string) (Control, bool) {
	c := Control(strings.ToUpper(strings.TrimSpace(name)))
	switch c {
	case ControlHuman, ControlHungry, ControlFearful, ControlExpert:
		return c, true
	}
	return "", false
}

// Player is one ice cream on the board.
type Player struct {
	ID      string         `json:"id"`
	Name    string         `json:"name,omitempty"`
	X       int            `json:"x"`
	Y       int            `json:"y"`
	Facing  core.Direction `json:"facing"`
	Score   int            `json:"score"`
	Alive   bool           `json:"alive"`
	Flavor  Flavor         `json:"flavor"`
	Control Control        `json:"control"`
	Timer   float64        `json:"timer,omitempty"`
}

// IsBot reports whether a strategy drives the player.
func (p *Player) IsBot() bool {
	return p.Control != ControlHuman
}

// Pos returns the player position.
func (p *Player) Pos() core.Coord { return core.C(p.X, p.Y) }

// TypeName is the renderer-facing type.
func (p *Player) TypeName() string {
	return "PLAYER_" + string(p.Flavor)
}

// Decision is what a bot wants to do this turn.
type Decision struct {
	Kind core.ActionKind
	Dir  core.Direction
}

// Threat is an enemy as bots see it. Kind is the archetype regardless of
// the enemy's current visual state.
type Threat struct {
	X    int
	Y    int
	Kind string
}

// Pos returns the threat position.
func (t Threat) Pos() core.Coord { return core.C(t.X, t.Y) }

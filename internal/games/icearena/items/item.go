// Package items implements fruit and obstacle items and the controller that
// owns them, including the row-by-row ice domino triggered by players.
package items

import "github.com/vovakirdan/icearena/internal/games/icearena/core"

// Kind identifies an item variant.
type Kind string

const (
	KindBanana    Kind = "BANANA"
	KindGrape     Kind = "GRAPE"
	KindPineapple Kind = "PINEAPPLE"
	KindCherry    Kind = "CHERRY"
	KindCactus    Kind = "CACTUS"
	KindIceBlock  Kind = "ICE_BLOCK"
	KindCampfire  Kind = "CAMPFIRE"
	KindHotTile   Kind = "HOT_TILE"
)

// FruitKinds and ObstacleKinds list the variants accepted by NewFruit and
// NewObstacle.
var (
	FruitKinds    = []Kind{KindBanana, KindGrape, KindPineapple, KindCherry, KindCactus}
	ObstacleKinds = []Kind{KindIceBlock, KindCampfire, KindHotTile}
)

// Lethal is returned by CollectItemAt when the player touched a lit campfire.
const Lethal = -1

const (
	cactusCycle      = 30.0
	campfireReignite = 10.0
	cherryCooldown   = 20.0
	cherryAttempts   = 50
)

// Item is a fruit or obstacle on the board. Timer, Spiked and Lit are only
// meaningful for the variants that use them.
type Item struct {
	ID     string  `json:"id"`
	Kind   Kind    `json:"kind"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Timer  float64 `json:"timer,omitempty"`
	Spiked bool    `json:"spiked,omitempty"`
	Lit    bool    `json:"lit,omitempty"`
}

// world is what item behaviours may consult when they act.
type world interface {
	terrain() Terrain
	rand() *core.Rand
	itemsAt(x, y int) []*Item
	IsObstacleAt(x, y int) bool
}

type behaviour struct {
	fruit        bool
	destructible bool
	hot          bool
	walkable     func(*Item) bool
	collectable  func(*Item) bool
	dangerous    func(*Item) bool
	score        func(*Item) int
	typeName     func(*Item) string

	init             func(*Item)
	update           func(*Item, float64)
	onPlayerMove     func(*Item, world)
	canSpawnAt       func(*Item, world) bool
	onDestroy        func(*Item, world)
	onIceBrokenAbove func(*Item)
}

func always(*Item) bool { return true }
func never(*Item) bool  { return false }

func fixedScore(n int) func(*Item) int {
	return func(*Item) int { return n }
}

func fixedName(kind Kind) func(*Item) string {
	return func(*Item) string { return string(kind) }
}

func fruitBehaviour(kind Kind, score int) behaviour {
	return behaviour{
		fruit:       true,
		walkable:    always,
		collectable: always,
		dangerous:   never,
		score:       fixedScore(score),
		typeName:    fixedName(kind),
	}
}

var behaviours map[Kind]behaviour

func init() {
	behaviours = map[Kind]behaviour{
		KindBanana: fruitBehaviour(KindBanana, 100),
		KindGrape:  fruitBehaviour(KindGrape, 50),
		KindPineapple: func() behaviour {
			b := fruitBehaviour(KindPineapple, 200)
			b.onPlayerMove = pineappleStep
			return b
		}(),
		KindCherry: func() behaviour {
			b := fruitBehaviour(KindCherry, 150)
			b.update = func(it *Item, dt float64) { it.Timer += dt }
			b.onPlayerMove = cherryTeleport
			return b
		}(),
		KindCactus: {
			fruit:       true,
			walkable:    always,
			collectable: func(it *Item) bool { return !it.Spiked },
			dangerous:   func(it *Item) bool { return it.Spiked },
			score:       fixedScore(250),
			typeName: func(it *Item) string {
				if it.Spiked {
					return "CACTUS_SPIKES"
				}
				return "CACTUS"
			},
			update: func(it *Item, dt float64) {
				it.Timer += dt
				for it.Timer >= cactusCycle {
					it.Timer -= cactusCycle
					it.Spiked = !it.Spiked
				}
			},
		},
		KindIceBlock: {
			destructible: true,
			walkable:     never,
			collectable:  never,
			dangerous:    never,
			score:        fixedScore(0),
			typeName:     fixedName("ICE"),
			canSpawnAt: func(it *Item, w world) bool {
				for _, other := range w.itemsAt(it.X, it.Y) {
					if other.Hot() {
						return false
					}
				}
				return true
			},
			onDestroy: func(it *Item, w world) {
				for _, other := range w.itemsAt(it.X, it.Y) {
					if other != it {
						other.iceBrokenAbove()
					}
				}
			},
		},
		KindCampfire: {
			walkable:    always,
			collectable: func(it *Item) bool { return it.Lit },
			dangerous:   never,
			score: func(it *Item) int {
				if it.Lit {
					return Lethal
				}
				return 0
			},
			typeName: func(it *Item) string {
				if it.Lit {
					return "CAMPFIRE"
				}
				return "CAMPFIRE_OFF"
			},
			init: func(it *Item) { it.Lit = true },
			update: func(it *Item, dt float64) {
				if it.Lit {
					return
				}
				it.Timer += dt
				if it.Timer >= campfireReignite {
					it.Timer -= campfireReignite
					it.Lit = true
				}
			},
			onIceBrokenAbove: func(it *Item) {
				it.Lit = false
				it.Timer = 0
			},
		},
		KindHotTile: {
			hot:         true,
			walkable:    always,
			collectable: never,
			dangerous:   never,
			score:       fixedScore(0),
			typeName:    fixedName(KindHotTile),
		},
	}
}

// IsFruitKind reports whether kind is a fruit variant.
func IsFruitKind(kind Kind) bool {
	b, ok := behaviours[kind]
	return ok && b.fruit
}

// IsObstacleKind reports whether kind is an obstacle variant.
func IsObstacleKind(kind Kind) bool {
	b, ok := behaviours[kind]
	return ok && !b.fruit
}

// NewFruit creates a fruit by upper-case name. It returns false for an
// unknown or non-fruit name.
func NewFruit(name, id string, x, y int) (*Item, bool) {
	if !IsFruitKind(Kind(name)) {
		return nil, false
	}
	return newItem(Kind(name), id, x, y), true
}

// NewObstacle creates an obstacle by upper-case name. It returns false for an
// unknown or non-obstacle name.
func NewObstacle(name, id string, x, y int) (*Item, bool) {
	if !IsObstacleKind(Kind(name)) {
		return nil, false
	}
	return newItem(Kind(name), id, x, y), true
}

func newItem(kind Kind, id string, x, y int) *Item {
	it := &Item{ID: id, Kind: kind, X: x, Y: y}
	if b := behaviours[kind]; b.init != nil {
		b.init(it)
	}
	return it
}

func (it *Item) b() behaviour { return behaviours[it.Kind] }

// Walkable reports whether actors may share the tile with this item.
func (it *Item) Walkable() bool { return it.b().walkable(it) }

// Collectable reports whether touching the item collects it.
func (it *Item) Collectable() bool { return it.b().collectable(it) }

// Dangerous reports whether touching the item kills a player.
func (it *Item) Dangerous() bool { return it.b().dangerous(it) }

// Destructible reports whether the item can be broken like ice.
func (it *Item) Destructible() bool { return it.b().destructible }

// Fruit reports whether the item counts toward wave completion.
func (it *Item) Fruit() bool { return it.b().fruit }

// Hot reports whether the item prevents ice from forming on its tile.
func (it *Item) Hot() bool { return it.b().hot }

// Score is the points awarded on collection, Lethal for a lit campfire.
func (it *Item) Score() int { return it.b().score(it) }

// TypeName is the renderer-facing type of the item in its current state.
func (it *Item) TypeName() string { return it.b().typeName(it) }

// Blocking reports whether the item occupies its tile for spawn purposes.
func (it *Item) Blocking() bool { return !it.Walkable() || it.Destructible() }

// Pos returns the item position.
func (it *Item) Pos() core.Coord { return core.C(it.X, it.Y) }

// Info returns the renderer descriptor for the item.
func (it *Item) Info() core.EntityInfo {
	return core.EntityInfo{
		ID:           it.ID,
		X:            it.X,
		Y:            it.Y,
		Type:         it.TypeName(),
		Destructible: it.Destructible(),
	}
}

func (it *Item) update(dt float64) {
	if f := it.b().update; f != nil {
		f(it, dt)
	}
}

func (it *Item) iceBrokenAbove() {
	if f := it.b().onIceBrokenAbove; f != nil {
		f(it)
	}
}

func freeTile(w world, x, y int) bool {
	return w.terrain().IsWalkable(x, y) && !w.IsObstacleAt(x, y)
}

func pineappleStep(it *Item, w world) {
	start := w.rand().IntN(len(core.Directions))
	for i := range core.Directions {
		next := it.Pos().Step(core.Directions[(start+i)%len(core.Directions)])
		if freeTile(w, next.X, next.Y) {
			it.X, it.Y = next.X, next.Y
			return
		}
	}
}

func cherryTeleport(it *Item, w world) {
	if it.Timer < cherryCooldown {
		return
	}
	t := w.terrain()
	for i := 0; i < cherryAttempts; i++ {
		x := w.rand().IntN(t.Width())
		y := w.rand().IntN(t.Height())
		if freeTile(w, x, y) {
			it.X, it.Y = x, y
			it.Timer = 0
			return
		}
	}
}

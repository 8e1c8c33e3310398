package players

import (
	"math"

	"github.com/vovakirdan/icearena/internal/games/icearena/core"
)

const (
	threatNarwhal = "NARWHAL"
	threatSquid   = "SQUID"
	randomDraws   = 10
)

// view is everything a strategy may look at.
type view struct {
	self    core.Coord
	canMove [4]bool // indexed like core.Directions
	fruits  []core.Coord
	threats []Threat
	rng     *core.Rand
}

type strategy func(v view) Decision

var strategies = map[Control]strategy{
	ControlHungry:  hungry,
	ControlFearful: fearful,
	ControlExpert:  expert,
}

func move(d core.Direction) Decision {
	return Decision{Kind: core.ActionMove, Dir: d}
}

func hungry(v view) Decision {
	if target, ok := nearest(v.self, v.fruits); ok {
		return move(v.towards(target))
	}
	return move(v.random())
}

func fearful(v view) Decision {
	if t, dist, ok := v.nearestThreat(5.0); ok {
		placeIce := t.Kind != threatNarwhal &&
			!(t.Kind == threatSquid && dist < 3.0) &&
			dist > 1.5 && dist < 4.0 &&
			aligned(v.self, t.Pos())
		if placeIce {
			return Decision{Kind: core.ActionCreateIce, Dir: towardsSimple(v.self, t.Pos())}
		}
		if d := v.away(t.Pos()); d != core.DirNone {
			return move(d)
		}
	}
	return move(v.random())
}

func expert(v view) Decision {
	for _, t := range v.threats {
		if t.Kind == threatNarwhal && aligned(v.self, t.Pos()) {
			if d := v.away(t.Pos()); d != core.DirNone {
				return move(d)
			}
		}
	}

	if t, dist, ok := v.nearestThreat(4.0); ok {
		placeIce := t.Kind != threatNarwhal && t.Kind != threatSquid &&
			dist >= 2.0 && dist <= 3.5 &&
			aligned(v.self, t.Pos())
		if placeIce {
			return Decision{Kind: core.ActionCreateIce, Dir: towardsSimple(v.self, t.Pos())}
		}
		if d := v.away(t.Pos()); d != core.DirNone {
			return move(d)
		}
	}

	if target, ok := nearest(v.self, v.fruits); ok {
		return move(v.towards(target))
	}
	return move(v.random())
}

// nearest returns the closest target by squared distance. Earlier targets
// win ties.
func nearest(from core.Coord, targets []core.Coord) (core.Coord, bool) {
	best := -1
	bestDist := 0
	for i, t := range targets {
		d := from.DistSq(t)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return core.Coord{}, false
	}
	return targets[best], true
}

// nearestThreat returns the closest threat within radius.
func (v view) nearestThreat(radius float64) (Threat, float64, bool) {
	var best Threat
	bestDist := math.Inf(1)
	found := false
	for _, t := range v.threats {
		d := math.Sqrt(float64(v.self.DistSq(t.Pos())))
		if d <= radius && d < bestDist {
			best, bestDist, found = t, d, true
		}
	}
	return best, bestDist, found
}

func aligned(a, b core.Coord) bool {
	return a.X == b.X || a.Y == b.Y
}

func dirIndex(d core.Direction) int {
	for i, dd := range core.Directions {
		if dd == d {
			return i
		}
	}
	return -1
}

func (v view) can(d core.Direction) bool {
	i := dirIndex(d)
	return i >= 0 && v.canMove[i]
}

func horizontal(dx int) core.Direction {
	switch {
	case dx > 0:
		return core.DirRight
	case dx < 0:
		return core.DirLeft
	}
	return core.DirNone
}

func vertical(dy int) core.Direction {
	switch {
	case dy > 0:
		return core.DirDown
	case dy < 0:
		return core.DirUp
	}
	return core.DirNone
}

// seek tries the larger-offset axis first, then the other one.
func (v view) seek(dx, dy int) core.Direction {
	first, second := vertical(dy), horizontal(dx)
	if abs(dx) > abs(dy) {
		first, second = second, first
	}
	if v.can(first) {
		return first
	}
	if v.can(second) {
		return second
	}
	return v.random()
}

func (v view) towards(target core.Coord) core.Direction {
	return v.seek(target.X-v.self.X, target.Y-v.self.Y)
}

// away prefers stepping off the shared row or column when aligned.
func (v view) away(threat core.Coord) core.Direction {
	if v.self.Y == threat.Y {
		if v.can(core.DirDown) {
			return core.DirDown
		}
		if v.can(core.DirUp) {
			return core.DirUp
		}
	}
	if v.self.X == threat.X {
		if v.can(core.DirRight) {
			return core.DirRight
		}
		if v.can(core.DirLeft) {
			return core.DirLeft
		}
	}
	return v.seek(v.self.X-threat.X, v.self.Y-threat.Y)
}

func (v view) random() core.Direction {
	for i := 0; i < randomDraws; i++ {
		idx := v.rng.IntN(len(core.Directions))
		if v.canMove[idx] {
			return core.Directions[idx]
		}
	}
	for i, ok := range v.canMove {
		if ok {
			return core.Directions[i]
		}
	}
	return core.DirNone
}

func towardsSimple(from, to core.Coord) core.Direction {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if abs(dx) > abs(dy) {
		return horizontal(dx)
	}
	return vertical(dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

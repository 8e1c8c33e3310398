package board

import (
	"sort"

	"github.com/vovakirdan/icearena/internal/games/icearena/core"
)

const (
	// RippleRingDelay is the delay added per unit of Manhattan distance.
	RippleRingDelay = 0.3
	// RippleSpeed is how fast a scheduled cell's progress moves, per second.
	RippleSpeed = 4.0
)

// RippleEntry is one scheduled cell of a radial ripple.
type RippleEntry struct {
	X     int             `json:"x"`
	Y     int             `json:"y"`
	Kind  core.RippleKind `json:"kind"`
	Delay float64         `json:"delay"`
}

// Commit reports a cell whose ripple animation finished this update.
type Commit struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Content Content `json:"content"`
}

// StartRipple schedules every matching cell on the board: empty cells for a
// create ripple, ice cells for a destroy ripple. Cells for which skip returns
// true are left alone. Any ripple already running is discarded.
func (b *Board) StartRipple(origin core.Coord, kind core.RippleKind, skip func(core.Coord) bool) int {
	b.cancelRipple()

	want := Empty
	if kind == core.RippleDestroy {
		want = Ice
	}

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			pos := core.C(x, y)
			c := b.cell(x, y)
			if c.Content != want || c.Animating {
				continue
			}
			if skip != nil && skip(pos) {
				continue
			}
			b.ripple = append(b.ripple, RippleEntry{
				X:     x,
				Y:     y,
				Kind:  kind,
				Delay: float64(pos.Manhattan(origin)) * RippleRingDelay,
			})
			c.Animating = true
			if kind == core.RippleCreate {
				c.Progress = 0
			} else {
				c.Progress = 1
			}
		}
	}

	sort.SliceStable(b.ripple, func(i, j int) bool {
		return b.ripple[i].Delay < b.ripple[j].Delay
	})
	return len(b.ripple)
}

// cancelRipple drops pending cells. Only ice drawn by a create cell that
// already started is taken back; every other cell keeps its current
// content, which may have changed since the ripple was scheduled.
func (b *Board) cancelRipple() {
	for _, e := range b.ripple {
		if !b.IsValidPosition(e.X, e.Y) {
			continue
		}
		c := b.cell(e.X, e.Y)
		c.Animating = false
		c.Progress = 1
		if e.Kind == core.RippleCreate && b.rippleClock >= e.Delay {
			c.Content = Empty
		}
	}
	b.ripple = b.ripple[:0]
	b.rippleClock = 0
}

// UpdateRipple advances the ripple clock and animates every cell whose delay
// has elapsed. Finished cells are committed and returned in commit order.
// A create cell that has not started yet is cancelled when occupied reports
// an actor standing on it.
func (b *Board) UpdateRipple(dt float64, occupied func(core.Coord) bool) []Commit {
	if len(b.ripple) == 0 {
		return nil
	}
	b.rippleClock += dt

	var commits []Commit
	remaining := b.ripple[:0]
	for _, e := range b.ripple {
		if b.rippleClock < e.Delay || !b.IsValidPosition(e.X, e.Y) {
			remaining = append(remaining, e)
			continue
		}
		c := b.cell(e.X, e.Y)
		elapsed := (b.rippleClock - e.Delay) * RippleSpeed

		if e.Kind == core.RippleCreate {
			if c.Content == Empty && occupied != nil && occupied(core.C(e.X, e.Y)) {
				c.Animating = false
				c.Progress = 1
				continue
			}
			c.Progress = clamp01(elapsed)
			c.Content = Ice
			if c.Progress >= 1 {
				c.Animating = false
				commits = append(commits, Commit{X: e.X, Y: e.Y, Content: Ice})
				continue
			}
		} else {
			c.Progress = clamp01(1 - elapsed)
			if c.Progress <= 0 {
				c.Content = Empty
				c.Progress = 1
				c.Animating = false
				commits = append(commits, Commit{X: e.X, Y: e.Y, Content: Empty})
				continue
			}
		}
		remaining = append(remaining, e)
	}
	b.ripple = remaining

	if len(b.ripple) == 0 {
		b.rippleClock = 0
	}
	return commits
}

// PendingRipple returns a copy of the scheduled ripple cells.
func (b *Board) PendingRipple() []RippleEntry {
	out := make([]RippleEntry, len(b.ripple))
	copy(out, b.ripple)
	return out
}

// RippleActive reports whether any ripple cell is still pending.
func (b *Board) RippleActive() bool {
	return len(b.ripple) > 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Package board implements the arena grid: terrain occupancy per cell and
// the radial ice ripple that spreads outward from an origin tile.
package board

import (
	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
)

// Content is the terrain tag of a cell.
type Content uint8

const (
	Empty Content = iota
	Wall
	Ice
)

// String returns the name of the content tag.
func (c Content) String() string {
	switch c {
	case Wall:
		return "WALL"
	case Ice:
		return "ICE"
	default:
		return "EMPTY"
	}
}

// Cell is one grid tile.
type Cell struct {
	Content   Content `json:"content"`
	Progress  float64 `json:"progress"` // 0..1, animation position of ice
	Animating bool    `json:"animating"`
}

func emptyCell() Cell {
	return Cell{Content: Empty, Progress: 1}
}

// Board is the width×height grid. Coordinates outside it behave as Wall.
type Board struct {
	width  int
	height int
	cells  []Cell

	ripple      []RippleEntry
	rippleClock float64
}

// New creates a board of the given size with every cell empty.
func New(width, height int) *Board {
	b := &Board{}
	b.Reset(width, height)
	return b
}

// Reset resizes the board, empties every cell and drops any pending ripple.
func (b *Board) Reset(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b.width = width
	b.height = height
	b.cells = make([]Cell, width*height)
	for i := range b.cells {
		b.cells[i] = emptyCell()
	}
	b.ripple = nil
	b.rippleClock = 0
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// IsValidPosition reports whether (x, y) lies inside the grid.
func (b *Board) IsValidPosition(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) cell(x, y int) *Cell {
	return &b.cells[y*b.width+x]
}

// IsWalkable reports whether an actor may stand on (x, y).
func (b *Board) IsWalkable(x, y int) bool {
	return b.ContentAt(x, y) == Empty
}

// ContentAt returns the terrain tag at (x, y), Wall when out of bounds.
func (b *Board) ContentAt(x, y int) Content {
	if !b.IsValidPosition(x, y) {
		return Wall
	}
	return b.cell(x, y).Content
}

// IsAnimating reports whether a ripple is currently changing (x, y).
func (b *Board) IsAnimating(x, y int) bool {
	if !b.IsValidPosition(x, y) {
		return false
	}
	return b.cell(x, y).Animating
}

// Progress returns the ice animation progress at (x, y), 1 when out of bounds.
func (b *Board) Progress(x, y int) float64 {
	if !b.IsValidPosition(x, y) {
		return 1
	}
	return b.cell(x, y).Progress
}

// IcePositions returns every cell currently tagged Ice, row by row.
func (b *Board) IcePositions() []core.Coord {
	var out []core.Coord
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.cell(x, y).Content == Ice {
				out = append(out, core.C(x, y))
			}
		}
	}
	return out
}

// CreateIceBlock turns an empty cell into ice. It returns false if the cell
// is out of bounds or not empty.
func (b *Board) CreateIceBlock(x, y int) bool {
	if !b.IsValidPosition(x, y) {
		return false
	}
	c := b.cell(x, y)
	if c.Content != Empty {
		return false
	}
	c.Content = Ice
	c.Progress = 1
	return true
}

// BreakIceBlock turns an ice cell back into an empty one. It returns false
// if there is no ice at (x, y).
func (b *Board) BreakIceBlock(x, y int) bool {
	if !b.IsValidPosition(x, y) {
		return false
	}
	c := b.cell(x, y)
	if c.Content != Ice {
		return false
	}
	c.Content = Empty
	c.Progress = 1
	return true
}

// SetMapObstacle sets terrain from a level map.
func (b *Board) SetMapObstacle(x, y int, content Content) error {
	if !b.IsValidPosition(x, y) {
		return errors.Configurationf("map obstacle at (%d,%d) outside %dx%d board", x, y, b.width, b.height)
	}
	c := b.cell(x, y)
	c.Content = content
	c.Progress = 1
	c.Animating = false
	return nil
}

// WallMap returns a [y][x] grid that is true for wall cells.
func (b *Board) WallMap() [][]bool {
	out := make([][]bool, b.height)
	for y := range out {
		out[y] = make([]bool, b.width)
		for x := range out[y] {
			out[y][x] = b.cell(x, y).Content == Wall
		}
	}
	return out
}

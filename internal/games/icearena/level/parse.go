package level

import (
	"strings"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
)

// Map codes.
const (
	CodeWall     = '#'
	CodeEmpty    = '.'
	CodeSpawn    = 'P'
	CodeIce      = 'I'
	CodeCampfire = 'C'
	CodeHotTile  = 'H'
)

// Fruit and enemy codes are accepted but placed by waves and configuration.
const ignoredCodes = " BGARXTFSN12"

// Map is a validated rectangular terrain layout.
type Map struct {
	Width  int
	Height int
	rows   [][]rune
}

// At returns the code at (x, y).
func (m *Map) At(x, y int) rune {
	return m.rows[y][x]
}

// Positions returns every coordinate holding code, row by row.
func (m *Map) Positions(code rune) []core.Coord {
	var out []core.Coord
	for y, row := range m.rows {
		for x, r := range row {
			if r == code {
				out = append(out, core.C(x, y))
			}
		}
	}
	return out
}

// ParseMap validates a layout. Rows must be non-empty, equally wide and use
// only known codes.
func ParseMap(layout []string) (*Map, error) {
	if len(layout) == 0 {
		return nil, errors.Configuration("level map is empty")
	}
	m := &Map{Height: len(layout)}
	for y, line := range layout {
		row := []rune(strings.TrimRight(line, "\r"))
		if y == 0 {
			m.Width = len(row)
			if m.Width == 0 {
				return nil, errors.Configuration("level map has an empty first row")
			}
		}
		if len(row) != m.Width {
			return nil, errors.Configurationf("level map row %d has width %d, want %d", y, len(row), m.Width)
		}
		for x, r := range row {
			if !known(r) {
				return nil, errors.Configurationf("unknown map code %q at (%d,%d)", r, x, y)
			}
		}
		m.rows = append(m.rows, row)
	}
	return m, nil
}

func known(r rune) bool {
	switch r {
	case CodeWall, CodeEmpty, CodeSpawn, CodeIce, CodeCampfire, CodeHotTile:
		return true
	}
	return strings.ContainsRune(ignoredCodes, r)
}

package level

import "slices"

// Built-in level ids.
const (
	Level1 = "LEVEL_1"
	Level2 = "LEVEL_2"
	Level3 = "LEVEL_3"
)

// Definition is a complete level: its map and its configuration.
// FilePath is empty for shipped levels.
type Definition struct {
	ID       string
	Name     string
	Layout   []string
	Config   Configuration
	FilePath string
}

var order = []string{Level1, Level2, Level3}

const openRow = "#................#"
const wallRow = "##################"

func layout(rows map[int]string) []string {
	out := make([]string, 10)
	for y := range out {
		switch {
		case y == 0 || y == 9:
			out[y] = wallRow
		case rows[y] != "":
			out[y] = rows[y]
		default:
			out[y] = openRow
		}
	}
	return out
}

var builtins = map[string]Definition{
	Level1: {
		ID:   Level1,
		Name: "Grape Garden",
		Layout: layout(map[int]string{
			1: "#P.G.G.G.G.......#",
			3: "#.......T........#",
			5: "#.G.G.G.G........#",
			7: "#............T...#",
		}),
		Config: Configuration{
			Waves:   []WaveSpec{{Type: "GRAPE", Count: 8}, {Type: "BANANA", Count: 8}},
			Enemies: map[string]int{"TROLL": 2},
		},
	},
	Level2: {
		ID:   Level2,
		Name: "Pineapple Pier",
		Layout: layout(map[int]string{
			1: "#P.A.A.A.A.......#",
			3: "#....S...........#",
			5: "#.A.A.A.A....F...#",
			7: "#........S.......#",
		}),
		Config: Configuration{
			Waves:   []WaveSpec{{Type: "PINEAPPLE", Count: 8}, {Type: "CHERRY", Count: 8}},
			Enemies: map[string]int{"SQUID": 2, "FLOWERPOT": 1},
		},
	},
	Level3: {
		ID:   Level3,
		Name: "Narwhal Bay",
		Layout: layout(map[int]string{
			1: "#P.G.G.G.G.......#",
			3: "#....T...........#",
			5: "#.G.G.G.G....S...#",
			7: "#........N.......#",
		}),
		Config: Configuration{
			Waves: []WaveSpec{
				{Type: "GRAPE", Count: 8},
				{Type: "PINEAPPLE", Count: 4},
				{Type: "CHERRY", Count: 4},
			},
			Enemies: map[string]int{"TROLL": 1, "SQUID": 1, "NARWHAL": 1},
		},
	},
}

// Builtins returns the shipped levels in play order.
func Builtins() []Definition {
	out := make([]Definition, 0, len(order))
	for _, id := range order {
		out = append(out, Lookup(id))
	}
	return out
}

// Lookup returns a copy of a built-in level. Unknown ids get the default
// open arena with one troll and a single grape wave.
func Lookup(id string) Definition {
	b, ok := builtins[id]
	if !ok {
		return Definition{
			ID:     id,
			Name:   "Open Arena",
			Layout: layout(nil),
			Config: Configuration{
				Waves:   []WaveSpec{{Type: "GRAPE", Count: 8}},
				Enemies: map[string]int{"TROLL": 1},
			},
		}
	}
	b.Layout = slices.Clone(b.Layout)
	b.Config = b.Config.Clone()
	return b
}

// IsBuiltin reports whether id names a shipped level.
func IsBuiltin(id string) bool {
	_, ok := builtins[id]
	return ok
}

// Next returns the level after id in play order.
func Next(id string) (string, bool) {
	i := slices.Index(order, id)
	if i < 0 || i+1 >= len(order) {
		return "", false
	}
	return order[i+1], true
}

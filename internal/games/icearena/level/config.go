// Package level describes arena levels: terrain maps, fruit waves and the
// enemies and obstacles scattered at load time.
package level

import (
	"maps"
	"slices"
	"strings"
)

// WaveSpec is one wave of a single fruit type.
type WaveSpec struct {
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// Configuration lists the fruit waves in order and how many of each enemy
// and obstacle to scatter over the map.
type Configuration struct {
	Waves     []WaveSpec     `json:"waves" yaml:"waves"`
	Enemies   map[string]int `json:"enemies,omitempty" yaml:"enemies,omitempty"`
	Obstacles map[string]int `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
}

// DefaultConfiguration is the custom game setup offered by the menu.
func DefaultConfiguration() Configuration {
	return Configuration{
		Waves: []WaveSpec{
			{Type: "BANANA", Count: 5},
			{Type: "GRAPE", Count: 5},
			{Type: "PINEAPPLE", Count: 3},
			{Type: "CHERRY", Count: 3},
			{Type: "CACTUS", Count: 2},
		},
		Enemies: map[string]int{
			"TROLL":     2,
			"SQUID":     1,
			"FLOWERPOT": 1,
			"NARWHAL":   1,
		},
		Obstacles: map[string]int{
			"ICE_BLOCK": 3,
			"CAMPFIRE":  2,
			"HOT_TILE":  4,
		},
	}
}

// Normalize upper-cases every type name, clamps counts at zero and drops
// empty waves. It returns a new Configuration.
func (c Configuration) Normalize() Configuration {
	out := Configuration{
		Enemies:   normalizeCounts(c.Enemies),
		Obstacles: normalizeCounts(c.Obstacles),
	}
	for _, w := range c.Waves {
		name := strings.ToUpper(strings.TrimSpace(w.Type))
		if name == "" || w.Count <= 0 {
			continue
		}
		out.Waves = append(out.Waves, WaveSpec{Type: name, Count: w.Count})
	}
	return out
}

func normalizeCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for name, n := range in {
		if n < 0 {
			n = 0
		}
		out[strings.ToUpper(strings.TrimSpace(name))] += n
	}
	return out
}

// Clone returns a deep copy.
func (c Configuration) Clone() Configuration {
	return Configuration{
		Waves:     slices.Clone(c.Waves),
		Enemies:   maps.Clone(c.Enemies),
		Obstacles: maps.Clone(c.Obstacles),
	}
}

// TotalFruit returns the number of fruit over every wave.
func (c Configuration) TotalFruit() int {
	n := 0
	for _, w := range c.Waves {
		n += w.Count
	}
	return n
}

func sortedKeys(m map[string]int) []string {
	return slices.Sorted(maps.Keys(m))
}

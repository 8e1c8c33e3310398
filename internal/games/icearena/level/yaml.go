package level

import (
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/icearena/internal/errors"
)

// YAMLLevel is the on-disk shape of a level file.
type YAMLLevel struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Map       []string       `yaml:"map"`
	Waves     []WaveSpec     `yaml:"waves"`
	Enemies   map[string]int `yaml:"enemies,omitempty"`
	Obstacles map[string]int `yaml:"obstacles,omitempty"`
}

// ParseYAML parses and validates a level file.
func ParseYAML(data []byte) (Definition, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Definition{}, errors.WrapWithCode(err, errors.CodeConfiguration, "yaml unmarshal")
	}
	if yl.ID == "" {
		return Definition{}, errors.Configuration("level file has no id")
	}
	if _, err := ParseMap(yl.Map); err != nil {
		return Definition{}, errors.Wrapf(err, "level %s", yl.ID)
	}

	cfg := Configuration{
		Waves:     yl.Waves,
		Enemies:   yl.Enemies,
		Obstacles: yl.Obstacles,
	}.Normalize()
	if len(cfg.Waves) == 0 {
		return Definition{}, errors.Configurationf("level %s has no fruit waves", yl.ID)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	return Definition{
		ID:     yl.ID,
		Name:   name,
		Layout: yl.Map,
		Config: cfg,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

package palette

import (
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Black is the resting color of every unselected panel.
var Black = RGB{}

// Default phase colors: red, yellow, green.
var defaults = [3]RGB{
	{R: 255},
	{R: 255, G: 255},
	{G: 255},
}

// PhaseColors overlays up to the first three user palette entries onto
// the defaults, positionally. Fewer than three user colors leave the
// remaining defaults in place.
func PhaseColors(user []RGB) [3]RGB {
	out := defaults
	for i := 0; i < len(user) && i < len(out); i++ {
		out[i] = user[i]
	}
	return out
}

// Load reads user palette colors from a YAML file of hex strings:
//
//	colors: ["#ff0000", "#ffcc00", "#00ff00"]
//
// A missing file is an empty palette, not an error.
func Load(path string) ([]RGB, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc struct {
		Colors []string `yaml:"colors"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return Parse(doc.Colors)
}

// Parse converts hex color strings to RGB triples.
func Parse(hex []string) ([]RGB, error) {
	out := make([]RGB, 0, len(hex))
	for _, s := range hex {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("palette color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		out = append(out, RGB{R: r, G: g, B: b})
	}
	return out, nil
}

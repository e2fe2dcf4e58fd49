// Package colormap maps normalized values in [0, 1] to colours.
//
// Two maps are built in:
//   - [Reds]: a sequential white-to-dark-red scale for histogram counts
//   - [Jet]: a rainbow scale running from dark blue through cyan and yellow
//     to dark red, used for density contours
package colormap

import (
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

// Map is a piecewise-linear colour scale. It is immutable and safe for
// concurrent use.
type Map struct {
	Name  string
	stops []stop
}

type stop struct {
	pos float64
	c   colorful.Color
}

// New builds a map from colours spread evenly over [0, 1].
func New(name string, hexes ...string) *Map {
	m := &Map{Name: name}
	for i, h := range hexes {
		pos := 0.0
		if len(hexes) > 1 {
			pos = float64(i) / float64(len(hexes)-1)
		}
		m.stops = append(m.stops, stop{pos: pos, c: mustHex(h)})
	}
	return m
}

// mustHex parses a "#rrggbb" colour and panics on malformed input. Maps are
// built from literals at init time.
func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic("colormap: " + err.Error())
	}
	return c
}

// At returns the colour for t. Values outside [0, 1] are clamped; NaN maps
// to the low end.
func (m *Map) At(t float64) color.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	i := sort.Search(len(m.stops), func(i int) bool { return m.stops[i].pos >= t })
	var c colorful.Color
	switch {
	case i == 0:
		c = m.stops[0].c
	case i >= len(m.stops):
		c = m.stops[len(m.stops)-1].c
	default:
		lo, hi := m.stops[i-1], m.stops[i]
		c = lo.c.BlendRgb(hi.c, (t-lo.pos)/(hi.pos-lo.pos))
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Built-in maps.
var (
	Reds = New("reds",
		"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a",
		"#ef3b2c", "#cb181d", "#a50f15", "#67000d")

	Jet = New("jet",
		"#000080", "#0000ff", "#00ffff", "#ffff00", "#ff0000", "#800000")
)

var registry = map[string]*Map{
	Reds.Name: Reds,
	Jet.Name:  Jet,
}

// Lookup returns the built-in map called name.
func Lookup(name string) (*Map, error) {
	if m, ok := registry[name]; ok {
		return m, nil
	}
	return nil, herrors.New(herrors.ErrCodeInvalidConfig, "unknown colour map %q (want one of %v)", name, Names())
}

// Names returns the names of the built-in maps in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

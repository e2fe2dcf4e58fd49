// Package fonts provides the font faces used for titles, labels and ticks.
//
// The Go fonts are embedded by golang.org/x/image, so rendering never
// depends on fonts installed on the host.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Style selects a font variant.
type Style int

const (
	Regular Style = iota
	Bold
)

var (
	parseOnce sync.Once
	parsed    map[Style]*opentype.Font
	parseErr  error
)

func parse() {
	parsed = make(map[Style]*opentype.Font, 2)
	for style, ttf := range map[Style][]byte{Regular: goregular.TTF, Bold: gobold.TTF} {
		f, err := opentype.Parse(ttf)
		if err != nil {
			parseErr = fmt.Errorf("parse embedded font: %w", err)
			return
		}
		parsed[style] = f
	}
}

// Face returns a face of the given style and size in points at 72 DPI.
// The parsed font data is shared, but every call returns a fresh face:
// faces carry glyph buffers and must not be drawn with concurrently.
func Face(style Style, size float64) (font.Face, error) {
	parseOnce.Do(parse)
	if parseErr != nil {
		return nil, parseErr
	}
	return opentype.NewFace(parsed[style], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

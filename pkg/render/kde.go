package render

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/heatmap/pkg/colormap"
	"github.com/matzehuels/heatmap/pkg/density"
)

// DrawKDE renders g as filled contour bands over bg. The background is
// stretched to the plot area at full opacity; bands are drawn with
// opts.Alpha. A nil bg leaves the plot white.
func DrawKDE(g *density.Grid, bg image.Image, opts Options) (image.Image, error) {
	if err := opts.validateKDE(); err != nil {
		return nil, err
	}
	cmap := opts.Colormap
	if cmap == nil {
		cmap = colormap.Jet
	}

	f, err := newFrame(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	defer f.close()

	if bg != nil {
		f.drawPlot(imaging.Resize(bg, f.plot.Dx(), f.plot.Dy(), imaging.Linear))
	}

	lo, hi := g.Range()
	levels := Levels(lo, hi, opts.Levels)
	bands := len(levels) - 1
	palette := make([]color.RGBA, bands)
	for i := range palette {
		palette[i] = cmap.At((float64(i) + 0.5) / float64(bands))
	}
	a := uint8(math.Round(opts.Alpha * 255))

	f.drawPlot(f.raster(g, func(v float64) color.NRGBA {
		c := palette[band(levels, v)]
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
	}))
	f.drawAxes(g.Extent, opts.XLabel, opts.YLabel)
	f.drawColorbar(levels[0], levels[bands], func(v float64) color.Color {
		return palette[band(levels, v)]
	}, levels)
	f.drawTitle(opts.Title)
	return f.dc.Image(), nil
}

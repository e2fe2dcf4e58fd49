package render

import (
	"image"
	"image/color"

	"github.com/matzehuels/heatmap/pkg/colormap"
	"github.com/matzehuels/heatmap/pkg/density"
)

// DrawGrid renders g as a cell heatmap. Cell colours scale linearly from
// the smallest to the largest value in g. The image size depends only on
// opts, never on the grid contents.
func DrawGrid(g *density.Grid, opts Options) (image.Image, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	cmap := opts.Colormap
	if cmap == nil {
		cmap = colormap.Reds
	}

	f, err := newFrame(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	defer f.close()

	lo, hi := g.Range()
	norm := func(v float64) float64 {
		if !(hi > lo) {
			return 0
		}
		return (v - lo) / (hi - lo)
	}

	f.drawPlot(f.raster(g, func(v float64) color.NRGBA {
		return color.NRGBA(cmap.At(norm(v)))
	}))
	f.drawAxes(g.Extent, opts.XLabel, opts.YLabel)
	f.drawColorbar(lo, hi, func(v float64) color.Color { return cmap.At(norm(v)) }, ticks(lo, hi, barTickCount))
	f.drawTitle(opts.Title)
	return f.dc.Image(), nil
}

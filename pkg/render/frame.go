package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/heatmap/pkg/density"
	"github.com/matzehuels/heatmap/pkg/fonts"
)

// Frame layout in pixels.
const (
	marginTop    = 56
	marginBottom = 64
	marginLeft   = 84
	marginRight  = 120
	barGap       = 18
	barWidth     = 20
	tickLength   = 5
	xTickCount   = 8
	yTickCount   = 6
	barTickCount = 5

	titleSize = 16
	labelSize = 13
	tickSize  = 10
)

var (
	colorInk  = color.Black
	colorGrid = color.Gray{Y: 0x40}
)

// frame is a canvas divided into title strip, plot area and colour bar.
type frame struct {
	dc    *gg.Context
	plot  image.Rectangle
	bar   image.Rectangle
	title font.Face
	label font.Face
	tick  font.Face
}

func newFrame(width, height int) (*frame, error) {
	title, err := fonts.Face(fonts.Bold, titleSize)
	if err != nil {
		return nil, err
	}
	label, err := fonts.Face(fonts.Regular, labelSize)
	if err != nil {
		return nil, err
	}
	tick, err := fonts.Face(fonts.Regular, tickSize)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	plot := image.Rect(marginLeft, marginTop, width-marginRight, height-marginBottom)
	bar := image.Rect(plot.Max.X+barGap, plot.Min.Y, plot.Max.X+barGap+barWidth, plot.Max.Y)
	return &frame{dc: dc, plot: plot, bar: bar, title: title, label: label, tick: tick}, nil
}

func (f *frame) close() {
	f.title.Close()
	f.label.Close()
	f.tick.Close()
}

// raster builds a plot-sized image whose pixels sample g by nearest cell,
// row 0 at the top.
func (f *frame) raster(g *density.Grid, pixel func(v float64) color.NRGBA) *image.NRGBA {
	w, h := f.plot.Dx(), f.plot.Dy()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		r := py * g.Rows / h
		for px := 0; px < w; px++ {
			c := px * g.Cols / w
			img.SetNRGBA(px, py, pixel(g.At(c, r)))
		}
	}
	return img
}

// drawPlot composites img over the plot area.
func (f *frame) drawPlot(img image.Image) {
	f.dc.DrawImage(img, f.plot.Min.X, f.plot.Min.Y)
}

// drawAxes draws the plot border, tick marks, tick labels and axis labels
// for extent e. y grows downward.
func (f *frame) drawAxes(e density.Extent, xLabel, yLabel string) {
	dc := f.dc
	x0, y0 := float64(f.plot.Min.X), float64(f.plot.Min.Y)
	w, h := float64(f.plot.Dx()), float64(f.plot.Dy())

	dc.SetColor(colorGrid)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x0+0.5, y0+0.5, w-1, h-1)
	dc.Stroke()

	dc.SetFontFace(f.tick)
	for _, v := range ticks(e.MinX, e.MaxX, xTickCount) {
		px := x0 + (v-e.MinX)/e.Width()*w
		dc.SetColor(colorGrid)
		dc.DrawLine(px, y0+h, px, y0+h+tickLength)
		dc.Stroke()
		dc.SetColor(colorInk)
		dc.DrawStringAnchored(formatTick(v), px, y0+h+tickLength+3, 0.5, 1)
	}
	for _, v := range ticks(e.MinY, e.MaxY, yTickCount) {
		py := y0 + (v-e.MinY)/e.Height()*h
		dc.SetColor(colorGrid)
		dc.DrawLine(x0-tickLength, py, x0, py)
		dc.Stroke()
		dc.SetColor(colorInk)
		dc.DrawStringAnchored(formatTick(v), x0-tickLength-3, py, 1, 0.35)
	}

	dc.SetFontFace(f.label)
	dc.SetColor(colorInk)
	dc.DrawStringAnchored(xLabel, x0+w/2, y0+h+tickLength+24, 0.5, 1)

	cx, cy := float64(marginLeft)/4, y0+h/2
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), cx, cy)
	dc.DrawStringAnchored(yLabel, cx, cy, 0.5, 0.5)
	dc.Pop()
}

// drawTitle centers title in the top margin.
func (f *frame) drawTitle(title string) {
	f.dc.SetFontFace(f.title)
	f.dc.SetColor(colorInk)
	f.dc.DrawStringAnchored(title, float64(f.dc.Width())/2, marginTop/2, 0.5, 0.5)
}

// drawColorbar paints a vertical scale for [lo, hi], high values at the
// top, labelled at tickValues.
func (f *frame) drawColorbar(lo, hi float64, shade func(v float64) color.Color, tickValues []float64) {
	dc := f.dc
	h := f.bar.Dy()
	for row := 0; row < h; row++ {
		v := hi
		if h > 1 {
			v = hi - (hi-lo)*float64(row)/float64(h-1)
		}
		dc.SetColor(shade(v))
		dc.DrawRectangle(float64(f.bar.Min.X), float64(f.bar.Min.Y+row), float64(f.bar.Dx()), 1)
		dc.Fill()
	}

	x0, y0 := float64(f.bar.Min.X), float64(f.bar.Min.Y)
	dc.SetColor(colorGrid)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x0+0.5, y0+0.5, float64(f.bar.Dx())-1, float64(h)-1)
	dc.Stroke()

	if !(hi > lo) {
		return
	}
	dc.SetFontFace(f.tick)
	for _, v := range tickValues {
		if v < lo || v > hi {
			continue
		}
		py := y0 + (hi-v)/(hi-lo)*float64(h-1)
		xr := float64(f.bar.Max.X)
		dc.SetColor(colorGrid)
		dc.DrawLine(xr, py, xr+tickLength, py)
		dc.Stroke()
		dc.SetColor(colorInk)
		dc.DrawStringAnchored(formatTick(v), xr+tickLength+3, py, 0, 0.35)
	}
}

package render

import (
	"github.com/matzehuels/heatmap/pkg/colormap"
	herrors "github.com/matzehuels/heatmap/pkg/errors"
)

// Smallest frame that still fits the margins around the plot area.
const (
	MinWidth  = 320
	MinHeight = 240
)

// Options controls a single rendering.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	// Width and Height are the output image size in pixels.
	Width  int
	Height int

	// Colormap defaults to colormap.Reds for grids and colormap.Jet for KDEs.
	Colormap *colormap.Map

	// Alpha is the opacity of the density overlay (KDE only).
	Alpha float64
	// Levels is the requested number of contour bands (KDE only).
	Levels int
}

func (o Options) validate() error {
	if o.Width < MinWidth || o.Height < MinHeight {
		return herrors.New(herrors.ErrCodeInvalidInput, "frame must be at least %dx%d, got %dx%d", MinWidth, MinHeight, o.Width, o.Height)
	}
	return nil
}

func (o Options) validateKDE() error {
	if err := o.validate(); err != nil {
		return err
	}
	if !(o.Alpha > 0 && o.Alpha <= 1) {
		return herrors.New(herrors.ErrCodeInvalidInput, "alpha must be in (0, 1], got %v", o.Alpha)
	}
	if o.Levels < 2 {
		return herrors.New(herrors.ErrCodeInvalidInput, "levels must be at least 2, got %d", o.Levels)
	}
	return nil
}

// Package config holds the tunable parameters of the heatmap pipeline.
//
// Every parameter has a named default. A [Config] starts from [Default],
// may be overlaid by a TOML file with [Load], and is then passed explicitly
// into the pipeline and renderers.
//
// Example file:
//
//	title = "Detected Heatmap"
//
//	[domain]
//	width = 1280
//	height = 960
//
//	[histogram]
//	range = "domain"
//	colormap = "reds"
//	[histogram.bins]
//	x = 128
//	y = 96
//
//	[kde]
//	bandwidth = 0.1
//	alpha = 0.3
//	levels = 8
//	colormap = "jet"
package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/heatmap/pkg/colormap"
	"github.com/matzehuels/heatmap/pkg/density"
	herrors "github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/points"
	"github.com/matzehuels/heatmap/pkg/render"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	DefaultWidth     = 1280
	DefaultHeight    = 960
	DefaultBinsX     = 128
	DefaultBinsY     = 96
	DefaultBandwidth = 0.1
	DefaultAlpha     = 0.3
	DefaultLevels    = 8
	DefaultSamples   = 1000
	DefaultSeed      = uint64(42)

	DefaultTitle  = "Detected Heatmap"
	DefaultXLabel = "X"
	DefaultYLabel = "Y"

	// DefaultGridOutput is the file the grid renderer writes when no output
	// path is given. The KDE renderer writes "<title>.png" instead.
	DefaultGridOutput = "detected_heatmap.png"

	DefaultGridColormap = "reds"
	DefaultKDEColormap  = "jet"

	// DefaultFrameWidth and DefaultFrameHeight size the output image.
	DefaultFrameWidth  = 960
	DefaultFrameHeight = 720
)

// Histogram binning range modes.
const (
	// RangeDomain bins over the nominal domain, the same extent the KDE
	// renderer evaluates over. Sentinel points fall outside and are dropped.
	RangeDomain = "domain"
	// RangeData bins over the observed min/max of the points.
	RangeData = "data"
)

// =============================================================================
// Config
// =============================================================================

// Config is the full set of pipeline parameters.
type Config struct {
	Title  string `toml:"title"`
	XLabel string `toml:"x_label"`
	YLabel string `toml:"y_label"`

	Domain    points.Domain  `toml:"domain"`
	Sentinels []points.Point `toml:"sentinels"`
	Stabilize bool           `toml:"stabilize"`

	Frame     Frame     `toml:"frame"`
	Histogram Histogram `toml:"histogram"`
	KDE       KDE       `toml:"kde"`
}

// Frame is the output image size in pixels.
type Frame struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Histogram configures the grid renderer.
type Histogram struct {
	Bins     density.Bins `toml:"bins"`
	Range    string       `toml:"range"`
	Colormap string       `toml:"colormap"`
}

// KDE configures the kernel density renderer.
type KDE struct {
	Bandwidth float64 `toml:"bandwidth"`
	Alpha     float64 `toml:"alpha"`
	Levels    int     `toml:"levels"`
	Colormap  string  `toml:"colormap"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:     DefaultTitle,
		XLabel:    DefaultXLabel,
		YLabel:    DefaultYLabel,
		Domain:    points.Domain{Width: DefaultWidth, Height: DefaultHeight},
		Sentinels: append([]points.Point(nil), points.DefaultSentinels...),
		Stabilize: true,
		Frame:     Frame{Width: DefaultFrameWidth, Height: DefaultFrameHeight},
		Histogram: Histogram{
			Bins:     density.Bins{X: DefaultBinsX, Y: DefaultBinsY},
			Range:    RangeDomain,
			Colormap: DefaultGridColormap,
		},
		KDE: KDE{
			Bandwidth: DefaultBandwidth,
			Alpha:     DefaultAlpha,
			Levels:    DefaultLevels,
			Colormap:  DefaultKDEColormap,
		},
	}
}

// Load reads a TOML file over Default and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, herrors.Wrap(herrors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, herrors.Wrap(herrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, herrors.New(herrors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every parameter is usable.
func (c Config) Validate() error {
	switch {
	case c.Domain.Width <= 0 || c.Domain.Height <= 0:
		return invalid("domain must be positive, got %dx%d", c.Domain.Width, c.Domain.Height)
	case c.Frame.Width < render.MinWidth || c.Frame.Height < render.MinHeight:
		return invalid("frame must be at least %dx%d, got %dx%d", render.MinWidth, render.MinHeight, c.Frame.Width, c.Frame.Height)
	case c.Histogram.Bins.X <= 0 || c.Histogram.Bins.Y <= 0:
		return invalid("histogram bins must be positive, got %dx%d", c.Histogram.Bins.X, c.Histogram.Bins.Y)
	case c.Histogram.Range != RangeDomain && c.Histogram.Range != RangeData:
		return invalid("histogram range must be %q or %q, got %q", RangeDomain, RangeData, c.Histogram.Range)
	case !(c.KDE.Bandwidth > 0):
		return invalid("kde bandwidth must be positive, got %v", c.KDE.Bandwidth)
	case !(c.KDE.Alpha > 0 && c.KDE.Alpha <= 1):
		return invalid("kde alpha must be in (0, 1], got %v", c.KDE.Alpha)
	case c.KDE.Levels < 2:
		return invalid("kde levels must be at least 2, got %d", c.KDE.Levels)
	}
	if _, err := colormap.Lookup(c.Histogram.Colormap); err != nil {
		return err
	}
	if _, err := colormap.Lookup(c.KDE.Colormap); err != nil {
		return err
	}
	return nil
}

func invalid(format string, args ...any) error {
	return herrors.New(herrors.ErrCodeInvalidConfig, format, args...)
}

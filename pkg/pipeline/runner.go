package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatmap/pkg/cache"
	"github.com/matzehuels/heatmap/pkg/colormap"
	"github.com/matzehuels/heatmap/pkg/config"
	"github.com/matzehuels/heatmap/pkg/density"
	herrors "github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/observability"
	"github.com/matzehuels/heatmap/pkg/points"
	"github.com/matzehuels/heatmap/pkg/render"
)

// densityKeyType labels density grids in cache hooks.
const densityKeyType = "density"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating the stage logic.
//
// The Runner is stateless except for the cache, logger and displayer - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Display Displayer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The displayer defaults to the system image viewer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Display: SystemDisplayer{},
	}
}

// =============================================================================
// Entry points
// =============================================================================

// Grid renders a 2D histogram heatmap and writes it to opts.Output
// (default config.DefaultGridOutput), then displays it if opts.Show is set.
func (r *Runner) Grid(ctx context.Context, opts Options) (*Result, error) {
	cfg, s, err := r.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	path := opts.Output
	if path == "" {
		path = config.DefaultGridOutput
	}
	result, err := r.renderGrid(ctx, cfg, s)
	if err != nil {
		return nil, err
	}
	if err := r.finish(ctx, result, path, opts.Show); err != nil {
		return nil, err
	}
	return result, nil
}

// KDE renders a kernel density heatmap over the background image and
// writes it to opts.Output (default "<title>.png"), then displays it if
// opts.Show is set.
func (r *Runner) KDE(ctx context.Context, opts Options) (*Result, error) {
	cfg, s, err := r.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	path, err := kdeOutput(opts.Output, cfg.Title)
	if err != nil {
		return nil, err
	}
	result, err := r.renderKDE(ctx, cfg, s, opts)
	if err != nil {
		return nil, err
	}
	if err := r.finish(ctx, result, path, opts.Show); err != nil {
		return nil, err
	}
	return result, nil
}

// RenderGrid runs the grid pipeline up to the encoded PNG without writing
// anything.
func (r *Runner) RenderGrid(ctx context.Context, opts Options) (*Result, error) {
	cfg, s, err := r.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.renderGrid(ctx, cfg, s)
}

// RenderKDE runs the KDE pipeline up to the encoded PNG without writing
// anything.
func (r *Runner) RenderKDE(ctx context.Context, opts Options) (*Result, error) {
	cfg, s, err := r.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.renderKDE(ctx, cfg, s, opts)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Stages
// =============================================================================

// prepare validates the options and the raw coordinates, then returns the
// configuration and the (stabilized) set to render.
func (r *Runner) prepare(ctx context.Context, opts Options) (config.Config, points.Set, error) {
	if err := opts.validate(); err != nil {
		return config.Config{}, points.Set{}, err
	}
	cfg := opts.resolveConfig()
	s := opts.resolvePoints(cfg)
	err := r.stage(ctx, observability.StageValidate, s.Len(), func() error {
		return points.Validate(s.X, s.Y)
	})
	if err != nil {
		return config.Config{}, points.Set{}, err
	}
	if cfg.Stabilize {
		s = points.Stabilize(s, cfg.Sentinels)
	}
	return cfg, s, nil
}

func (r *Runner) renderGrid(ctx context.Context, cfg config.Config, s points.Set) (*Result, error) {
	result := &Result{Points: s}
	result.Stats.PointCount = s.Len()

	extent := density.DomainExtent(cfg.Domain)
	if cfg.Histogram.Range == config.RangeData {
		extent = density.DataExtent(s)
	}

	start := time.Now()
	err := r.stage(ctx, observability.StageHistogram, s.Len(), func() (err error) {
		result.Grid, err = density.Histogram(s, cfg.Histogram.Bins, extent)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.DensityTime = time.Since(start)
	result.Stats.Min, result.Stats.Max = result.Grid.Range()

	r.Logger.Info("binned histogram",
		"points", s.Len(),
		"bins", fmt.Sprintf("%dx%d", cfg.Histogram.Bins.X, cfg.Histogram.Bins.Y),
		"range", cfg.Histogram.Range,
		"max", result.Stats.Max)

	cmap, err := colormap.Lookup(cfg.Histogram.Colormap)
	if err != nil {
		return nil, err
	}
	opts := renderOptions(cfg)
	opts.Colormap = cmap

	if err := r.encode(ctx, result, func() (image.Image, error) {
		return render.DrawGrid(result.Grid, opts)
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Runner) renderKDE(ctx context.Context, cfg config.Config, s points.Set, o Options) (*Result, error) {
	bg := o.Background
	if bg == nil && o.BackgroundPath != "" {
		var err error
		if bg, err = render.LoadBackground(o.BackgroundPath); err != nil {
			return nil, err
		}
		r.Logger.Debug("loaded background", "path", o.BackgroundPath,
			"size", fmt.Sprintf("%dx%d", bg.Bounds().Dx(), bg.Bounds().Dy()))
	}

	result := &Result{Points: s}
	result.Stats.PointCount = s.Len()

	start := time.Now()
	g, hit, err := r.density(ctx, s, cfg, o.Refresh)
	if err != nil {
		return nil, err
	}
	result.Grid = g
	result.CacheInfo.DensityHit = hit
	result.Stats.DensityTime = time.Since(start)
	result.Stats.Min, result.Stats.Max = g.Range()

	r.Logger.Info("estimated density",
		"points", s.Len(),
		"grid", fmt.Sprintf("%dx%d", g.Cols, g.Rows),
		"bandwidth", cfg.KDE.Bandwidth,
		"cached", hit,
		"duration", result.Stats.DensityTime)

	cmap, err := colormap.Lookup(cfg.KDE.Colormap)
	if err != nil {
		return nil, err
	}
	opts := renderOptions(cfg)
	opts.Colormap = cmap
	opts.Alpha = cfg.KDE.Alpha
	opts.Levels = cfg.KDE.Levels

	if err := r.encode(ctx, result, func() (image.Image, error) {
		return render.DrawKDE(g, bg, opts)
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// density returns the KDE grid for s, from cache when possible.
func (r *Runner) density(ctx context.Context, s points.Set, cfg config.Config, refresh bool) (*density.Grid, bool, error) {
	key := r.Keyer.DensityKey(cache.HashFloats(s.X, s.Y), cache.DensityKeyOpts{
		Bandwidth: cfg.KDE.Bandwidth,
		Width:     cfg.Domain.Width,
		Height:    cfg.Domain.Height,
	})

	if !refresh {
		if g, ok := r.cachedGrid(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, densityKeyType)
			return g, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, densityKeyType)
	}

	var k *density.KDE
	err := r.stage(ctx, observability.StageKDEFit, s.Len(), func() (err error) {
		k, err = density.FitKDE(s, cfg.KDE.Bandwidth)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	var g *density.Grid
	err = r.stage(ctx, observability.StageKDEEvaluate, s.Len(), func() (err error) {
		g, err = k.Evaluate(ctx, cfg.Domain)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	data, err := g.MarshalBinary()
	if err != nil {
		return nil, false, herrors.Wrap(herrors.ErrCodeInternal, err, "encode density grid")
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("could not cache density grid", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, densityKeyType, len(data))
	}
	return g, false, nil
}

// cachedGrid reads and decodes a grid. Read errors and undecodable entries
// count as misses.
func (r *Runner) cachedGrid(ctx context.Context, key string) (*density.Grid, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var g density.Grid
	if err := g.UnmarshalBinary(data); err != nil {
		r.Logger.Debug("discarding corrupt cache entry", "key", key, "err", err)
		return nil, false
	}
	return &g, true
}

// encode runs draw as the render stage and stores the PNG in result.
func (r *Runner) encode(ctx context.Context, result *Result, draw func() (image.Image, error)) error {
	start := time.Now()
	err := r.stage(ctx, observability.StageRender, result.Stats.PointCount, func() error {
		img, err := draw()
		if err != nil {
			return err
		}
		result.PNG, err = render.EncodePNG(img)
		return err
	})
	if err != nil {
		return err
	}
	result.Stats.RenderTime = time.Since(start)
	r.Logger.Debug("rendered image", "bytes", len(result.PNG), "duration", result.Stats.RenderTime)
	return nil
}

// finish writes the PNG to path and optionally displays it. Display
// failures are logged, not returned: the file is already written.
func (r *Runner) finish(ctx context.Context, result *Result, path string, show bool) error {
	start := time.Now()
	err := r.stage(ctx, observability.StageWrite, result.Stats.PointCount, func() error {
		return WriteFile(path, result.PNG)
	})
	if err != nil {
		return err
	}
	result.Path = path
	result.Stats.WriteTime = time.Since(start)
	r.Logger.Info("wrote heatmap", "path", path, "bytes", len(result.PNG))

	if !show || r.Display == nil {
		return nil
	}
	err = r.stage(ctx, observability.StageDisplay, result.Stats.PointCount, func() error {
		return r.Display.Show(ctx, path)
	})
	if err != nil {
		r.Logger.Warn("could not display heatmap", "path", path, "err", err)
	}
	return nil
}

// stage runs fn between the pipeline start and complete hooks.
func (r *Runner) stage(ctx context.Context, s observability.Stage, n int, fn func() error) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, s, n)
	start := time.Now()
	err := fn()
	hooks.OnStageComplete(ctx, s, time.Since(start), err)
	return err
}

func renderOptions(cfg config.Config) render.Options {
	return render.Options{
		Title:  cfg.Title,
		XLabel: cfg.XLabel,
		YLabel: cfg.YLabel,
		Width:  cfg.Frame.Width,
		Height: cfg.Frame.Height,
	}
}

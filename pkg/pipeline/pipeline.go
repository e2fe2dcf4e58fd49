// Package pipeline provides the heatmap pipeline shared by the CLI and the
// HTTP service.
//
// A run goes through these stages:
//
//  1. Points: use the supplied coordinates or generate random samples
//  2. Stabilize: append the sentinel points (unless disabled)
//  3. Validate: reject coordinate sets whose x and y lengths differ
//  4. Density: bin a 2D histogram, or fit and evaluate a Gaussian KDE
//  5. Render: draw the grid or contour overlay and encode it as PNG
//  6. Write: replace the output file atomically
//  7. Display: optionally open the written file in the system viewer
//
// Render* methods stop after stage 5 and never touch the filesystem beyond
// loading a background image. Grid and KDE run every stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.KDE(ctx, pipeline.Options{
//	    BackgroundPath: "sample_image.png",
//	    Show:           true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Path) // "Detected Heatmap.png"
package pipeline

import (
	"image"
	"time"

	"github.com/matzehuels/heatmap/pkg/config"
	"github.com/matzehuels/heatmap/pkg/density"
	herrors "github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/points"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Config holds titles, sizes and renderer parameters. Nil means
	// config.Default().
	Config *config.Config

	// Points are the input coordinates. When nil, Samples random points
	// are generated with Seed.
	Points *points.Set
	// Samples is the number of random points to generate (0 means
	// config.DefaultSamples).
	Samples int
	// Seed seeds the generator (0 means config.DefaultSeed).
	Seed uint64

	// Background is the image under the KDE overlay. When nil and
	// BackgroundPath is set, the image is loaded from that path. With
	// neither, the plot area stays white.
	Background     image.Image
	BackgroundPath string

	// Output is the file to write. Empty selects the renderer default:
	// config.DefaultGridOutput for grids and "<title>.png" for KDEs.
	Output string
	// Show opens the written file in the system viewer.
	Show bool
	// Refresh recomputes cached density grids instead of reading them.
	Refresh bool
}

// resolveConfig returns the effective configuration.
func (o *Options) resolveConfig() config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return *o.Config
}

// validate checks the options that do not depend on the renderer.
func (o *Options) validate() error {
	if o.Samples < 0 {
		return herrors.New(herrors.ErrCodeInvalidInput, "samples must not be negative, got %d", o.Samples)
	}
	cfg := o.resolveConfig()
	return cfg.Validate()
}

// resolvePoints returns the supplied or generated coordinates. Stabilization
// happens after validation so errors report the caller's counts.
func (o *Options) resolvePoints(cfg config.Config) points.Set {
	var s points.Set
	if o.Points != nil {
		s = *o.Points
	} else {
		n, seed := o.Samples, o.Seed
		if n == 0 {
			n = config.DefaultSamples
		}
		if seed == 0 {
			seed = config.DefaultSeed
		}
		s = points.Generate(n, cfg.Domain, points.NewRand(seed))
	}
	return s
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Points are the coordinates that were rendered, sentinels included.
	Points points.Set

	// Grid is the histogram or density grid that was drawn.
	Grid *density.Grid

	// PNG is the encoded image.
	PNG []byte

	// Path is the written file, empty for Render* calls.
	Path string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PointCount  int
	Min, Max    float64
	DensityTime time.Duration
	RenderTime  time.Duration
	WriteTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DensityHit bool // Whether the KDE grid came from cache
}

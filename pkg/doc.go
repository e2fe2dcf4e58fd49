// Package pkg provides the libraries behind the heatmap tool.
//
// # Overview
//
// heatmap turns 2D point coordinates into heatmap images. The pkg directory
// is organized by pipeline stage:
//
//  1. [points] - coordinate sets: generation, sentinel stabilization,
//     validation, CSV/JSON files
//  2. [density] - 2D histograms and Gaussian kernel density estimates
//  3. [render] - grid and contour drawing, backgrounds, PNG encoding
//  4. [pipeline] - orchestration (points → density → render → file)
//
// Supporting packages: [config] (defaults and TOML files), [colormap],
// [fonts], [cache] (density grid cache), [observability] (hooks),
// [errors] (coded errors), [server] (HTTP service) and [buildinfo].
//
// # Architecture
//
// The data flow of a run:
//
//	points.Generate / points.ReadFile
//	         ↓
//	    points.Stabilize → points.Validate
//	         ↓
//	    density.Histogram  |  density.FitKDE → KDE.Evaluate
//	         ↓
//	    render.DrawGrid    |  render.DrawKDE
//	         ↓
//	    PNG file
//
// # Quick Start
//
// Render a kernel density heatmap of random points:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/heatmap/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.KDE(context.Background(), pipeline.Options{
//	    BackgroundPath: "sample_image.png",
//	})
//	// result.Path == "Detected Heatmap.png"
//
// Or use the stages directly:
//
//	s := points.Stabilize(points.Generate(1000, points.DefaultDomain, points.NewRand(42)), points.DefaultSentinels)
//	k, err := density.FitKDE(s, 0.1)
//	g, err := k.Evaluate(ctx, points.DefaultDomain)
//	img, err := render.DrawKDE(g, bg, render.Options{...})
package pkg

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatmap/pkg/config"
	"github.com/matzehuels/heatmap/pkg/pipeline"
)

// defaultImage is the background the kde command looks for by default.
const defaultImage = "sample_image.png"

// kdeCommand creates the kde command for kernel density heatmaps.
func (c *CLI) kdeCommand() *cobra.Command {
	var (
		flags     plotFlags
		cf        cacheFlags
		image     string
		bandwidth float64
		alpha     float64
		levels    int
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "kde [points-file]",
		Short: "Render a kernel density heatmap over a background image",
		Long: `Render a kernel density heatmap over a background image.

A Gaussian kernel density estimate of the points is evaluated at every
pixel of the 1280x960 domain and drawn as translucent filled contours over
the background image, with the y axis pointing down as in image
coordinates.

The image is written to "<title>.png" unless --output is set. Density grids
are cached locally; use --refresh to recompute or --no-cache to disable.
Pass --image "" to draw on a white canvas.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cfg, err := flags.options(cmd, args)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("bandwidth") {
				cfg.KDE.Bandwidth = bandwidth
			}
			if fs.Changed("alpha") {
				cfg.KDE.Alpha = alpha
			}
			if fs.Changed("levels") {
				cfg.KDE.Levels = levels
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			opts.BackgroundPath = image
			opts.Refresh = refresh
			return c.runKDE(cmd.Context(), opts, cf)
		},
	}

	flags.register(cmd)
	cf.register(cmd)
	cmd.Flags().StringVar(&image, "image", defaultImage, "background image (PNG, JPEG, GIF, BMP, TIFF or WebP)")
	cmd.Flags().Float64Var(&bandwidth, "bandwidth", config.DefaultBandwidth, "kernel bandwidth factor")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "opacity of the density overlay")
	cmd.Flags().IntVar(&levels, "levels", config.DefaultLevels, "number of contour levels")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute the density even if cached")

	return cmd
}

func (c *CLI) runKDE(ctx context.Context, opts pipeline.Options, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Estimating density...")
	spinner.Start()

	prog := newProgress(c.Logger)
	result, err := runner.KDE(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
		} else {
			spinner.StopWithError("Density heatmap failed")
		}
		return err
	}
	spinner.Stop()
	prog.done("rendered kde heatmap", "output", result.Path, "cached", result.CacheInfo.DensityHit)

	printResult(result)
	return nil
}

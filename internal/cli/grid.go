package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatmap/pkg/config"
	"github.com/matzehuels/heatmap/pkg/pipeline"
)

// gridCommand creates the grid command for 2D histogram heatmaps.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		flags     plotFlags
		rangeMode string
	)

	cmd := &cobra.Command{
		Use:   "grid [points-file]",
		Short: "Render a 2D histogram heatmap",
		Long: `Render a 2D histogram heatmap.

Points are read from a CSV (x,y per line) or JSON ({"x":[...],"y":[...]})
file, or generated at random when no file is given. They are counted in a
128x96 grid of bins and drawn with a white-to-red colour scale.

The image is written to detected_heatmap.png unless --output is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cfg, err := flags.options(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("range") {
				cfg.Histogram.Range = rangeMode
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runGrid(cmd.Context(), opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&rangeMode, "range", config.RangeDomain, "binning range: domain (nominal plot area) or data (observed min/max)")

	return cmd
}

func (c *CLI) runGrid(ctx context.Context, opts pipeline.Options) error {
	// Histograms are cheap; nothing to cache.
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Grid(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("rendered grid heatmap", "output", result.Path)

	printResult(result)
	return nil
}

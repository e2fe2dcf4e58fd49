package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatmap/pkg/config"
	"github.com/matzehuels/heatmap/pkg/pipeline"
	"github.com/matzehuels/heatmap/pkg/points"
)

// plotFlags holds the flags shared by the grid and kde commands.
// Flags override the config file only when set explicitly.
type plotFlags struct {
	configPath  string
	title       string
	xLabel      string
	yLabel      string
	samples     int
	seed        uint64
	output      string
	show        bool
	noStabilize bool
}

func (f *plotFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "TOML configuration file")
	fs.StringVar(&f.title, "title", config.DefaultTitle, "plot title")
	fs.StringVar(&f.xLabel, "x-label", config.DefaultXLabel, "x axis label")
	fs.StringVar(&f.yLabel, "y-label", config.DefaultYLabel, "y axis label")
	fs.IntVarP(&f.samples, "samples", "n", config.DefaultSamples, "random points to generate when no points file is given")
	fs.Uint64Var(&f.seed, "seed", config.DefaultSeed, "random seed for generated points")
	fs.StringVarP(&f.output, "output", "o", "", "output PNG file")
	fs.BoolVar(&f.show, "show", false, "open the image in the system viewer after writing it")
	fs.BoolVar(&f.noStabilize, "no-stabilize", false, "do not append the sentinel points")
}

// options loads the configuration, applies explicitly set flags and reads
// the optional points file in args.
func (f *plotFlags) options(cmd *cobra.Command, args []string) (pipeline.Options, *config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return pipeline.Options{}, nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("title") {
		cfg.Title = f.title
	}
	if fs.Changed("x-label") {
		cfg.XLabel = f.xLabel
	}
	if fs.Changed("y-label") {
		cfg.YLabel = f.yLabel
	}
	if f.noStabilize {
		cfg.Stabilize = false
	}

	opts := pipeline.Options{
		Config:  &cfg,
		Samples: f.samples,
		Seed:    f.seed,
		Output:  f.output,
		Show:    f.show,
	}
	if len(args) > 0 {
		s, err := points.ReadFile(args[0])
		if err != nil {
			return pipeline.Options{}, nil, err
		}
		opts.Points = &s
	}
	return opts, &cfg, nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatmap/pkg/config"
	herrors "github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/points"
)

// generateCommand creates the generate command that writes sample points.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		samples   int
		seed      uint64
		output    string
		stabilize bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write random sample points to a file",
		Long: `Write random sample points to a file.

Points are uniformly distributed integer coordinates in the 1280x960 domain.
The format follows the output extension: .csv (default) or .json. The file
can be passed to the grid and kde commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if samples < 0 {
				return herrors.New(herrors.ErrCodeInvalidInput, "samples must not be negative, got %d", samples)
			}
			s := points.Generate(samples, points.DefaultDomain, points.NewRand(seed))
			if stabilize {
				s = points.Stabilize(s, points.DefaultSentinels)
			}
			if err := points.WriteFile(output, s); err != nil {
				return err
			}
			c.Logger.Debug("generated points", "count", s.Len(), "seed", seed)
			printSuccess("Generated %s points", StyleNumber.Render(fmt.Sprint(s.Len())))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&samples, "samples", "n", config.DefaultSamples, "number of points")
	cmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "points.csv", "output file (.csv or .json)")
	cmd.Flags().BoolVar(&stabilize, "stabilize", false, "append the sentinel points")

	return cmd
}

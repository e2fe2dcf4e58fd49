package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatmap/pkg/config"
	"github.com/matzehuels/heatmap/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		cf         cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve heatmaps over HTTP",
		Long: `Serve heatmaps over HTTP.

Routes:
  GET  /healthz           liveness probe
  POST /v1/heatmaps/grid  2D histogram heatmap (image/png)
  POST /v1/heatmaps/kde   kernel density heatmap (image/png)

POST bodies are JSON: {"title", "x_label", "y_label", "x", "y",
"stabilize", "background"} where background is a base64-encoded image.
Use --cache-url to share density grids between instances through redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, cfg, cf)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML configuration file")
	cf.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, cfg config.Config, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	printInfo("Listening on %s", StyleHighlight.Render(addr))
	return server.New(runner, cfg, c.Logger).ListenAndServe(ctx, addr)
}

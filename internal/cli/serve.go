package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/starfield/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve starfield pages and images over HTTP",
		Long: `Serve starts an HTTP server with the starfield page at /stars/ and
rendered images at /stars.svg and /stars.png. The JSON API lives under /api.

Query parameters (count, seed, width, height, frame, pretty) override the
configured defaults per request.`,
		Example: `  starfield serve
  starfield serve --addr 127.0.0.1:9000 --no-cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("addr") {
				c.cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(c.cfg, runner, c.Logger.WithPrefix("http"))
			printInfo("Listening on %s", StyleValue.Render(c.cfg.Server.Addr))
			printNextStep("Open", "http://"+displayAddr(c.cfg.Server.Addr)+"/stars/")
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// displayAddr turns a listen address into something a browser can open.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-intake/internal/server"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var addr, templates string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the intake form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("templates") {
				cfg.Server.TemplatesDir = templates
			}

			logger := loggerFromContext(cmd.Context())
			srv, err := server.New(cfg, server.WithLogger(*logger))
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.cfg.Server.Addr, "HTTP listen address")
	cmd.Flags().StringVar(&templates, "templates", c.cfg.Server.TemplatesDir, "directory of page templates that shadow the built-in ones")
	return cmd
}

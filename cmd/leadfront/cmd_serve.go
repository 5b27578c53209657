package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/app"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.config()
			if port != 0 {
				cfg.Port = port
			}

			application, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides PORT)")
	return cmd
}

func newStubCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "stub-api",
		Short: "Run an in-memory stand-in for the lead API",
		Long: `Run an in-memory stand-in for the lead API for local development.

Leads live in memory only. The admin password comes from
STUB_ADMIN_PASSWORD; API docs are served at /swagger/.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadStubConfig()
			if port != 0 {
				cfg.Port = port
			}

			ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
			if err != nil {
				return fmt.Errorf("failed to listen: %w", err)
			}
			return app.RunStub(cmd.Context(), cfg, ln)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides STUB_PORT)")
	return cmd
}

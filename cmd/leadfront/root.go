package main

import (
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/app"
)

// globalFlags override the environment for every subcommand.
type globalFlags struct {
	apiURL string
	dbFile string
}

func (g *globalFlags) config() app.Config {
	cfg := app.LoadConfig()
	if g.apiURL != "" {
		cfg.APIBaseURL = g.apiURL
	}
	if g.dbFile != "" {
		cfg.DatabaseFile = g.dbFile
	}
	return cfg
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "leadfront",
		Short: "Lead capture front-end",
		Long: `leadfront captures sales leads and lets an admin review them.

It serves a web front-end, drives a terminal dashboard over the same
workflow, and can run a development stand-in for the lead API.

Configuration comes from the environment (API_BASE_URL, PORT,
LEADFRONT_DATABASE_FILE, ...); flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       app.BuildVersion,
	}

	root.PersistentFlags().StringVar(&g.apiURL, "api", "", "lead API base URL (overrides API_BASE_URL)")
	root.PersistentFlags().StringVar(&g.dbFile, "db", "", "SQLite database file (overrides LEADFRONT_DATABASE_FILE)")

	root.AddCommand(
		newServeCmd(g),
		newStubCmd(),
		newLoginCmd(g),
		newLogoutCmd(g),
		newSignupCmd(g),
		newListCmd(g),
		newDashboardCmd(g),
	)
	return root
}

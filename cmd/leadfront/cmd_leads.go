package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/app"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/domain"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/forms"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/tui"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

var errNotLoggedIn = errors.New("not logged in; run `leadfront login` first")

func newSignupCmd(g *globalFlags) *cobra.Command {
	form := &forms.LeadForm{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Submit a lead",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			agent, err := app.NewAgent(ctx, g.config(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer agent.Close()

			var res leadsdk.Result[leadsdk.Lead]
			if !form.Submit(time.Now(), func(lead leadsdk.Lead) {
				res = agent.Leads.Create(ctx, lead)
			}) {
				printFieldErrors(out, form.Fields())
				return errInvalidInput
			}
			if !res.Success {
				return errors.New(res.Message)
			}

			fmt.Fprintln(out, res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.FullName, "name", "", "full name (required)")
	cmd.Flags().StringVar(&form.Email, "email", "", "email (required)")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&form.CompanyName, "company", "", "company name")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "free-form notes")
	return cmd
}

func newListCmd(g *globalFlags) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the leads, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			agent, err := app.NewAgent(ctx, g.config(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer agent.Close()

			if !agent.State.Auth.IsAuthenticated() {
				return errNotLoggedIn
			}

			res := agent.Leads.Refresh(ctx, domain.CLISessionID, agent.State, agent.Tokens)
			if !res.Success {
				return errors.New(res.Message)
			}
			agent.State.View.Commit(query)

			rows := agent.State.View.Rows()
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No leads found.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Name", "Email", "Company", "Notes", "Date")
			for _, r := range rows {
				t.Row(r.Lead.ID, r.Lead.FullName, r.Lead.Email, dash(r.Lead.CompanyName), dash(r.Lead.Notes), r.Created)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d leads\n", len(rows), agent.State.Leads.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by name, email or company")
	return cmd
}

func newDashboardCmd(g *globalFlags) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the terminal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := g.config()

			if logFile == "" {
				logFile = cfg.DatabaseFile + ".log"
			}
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()

			agent, err := app.NewAgent(ctx, cfg, f)
			if err != nil {
				return err
			}
			defer agent.Close()

			if !agent.State.Auth.IsAuthenticated() {
				return errNotLoggedIn
			}

			err = tui.Run(ctx, tui.Deps{
				Key:    domain.CLISessionID,
				State:  agent.State,
				Tokens: agent.Tokens,
				Leads:  agent.Leads,
			})
			if errors.Is(err, tui.ErrNotAuthenticated) {
				agent.Logout(ctx)
				return errNotLoggedIn
			}
			return err
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "where to write logs while the dashboard owns the terminal")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

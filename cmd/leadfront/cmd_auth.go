package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/app"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/forms"
)

// errInvalidInput is returned after field errors have been printed.
var errInvalidInput = errors.New("invalid input")

func newLoginCmd(g *globalFlags) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as the admin",
		Long: `Log in as the admin and keep the token for later commands.

When --password is omitted it is read from the first line of stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if password == "" {
				p, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}

			agent, err := app.NewAgent(ctx, g.config(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer agent.Close()

			form := &forms.LoginForm{Email: email, Password: password}
			var loggedIn bool
			submitted := form.Submit(func(email, password string) string {
				res := agent.Login(ctx, email, password)
				loggedIn = res.Success
				if res.Success {
					return ""
				}
				return res.Message
			})
			if !submitted {
				printFieldErrors(out, form.Fields())
				return errInvalidInput
			}
			if !loggedIn {
				return errors.New(form.General)
			}

			fmt.Fprintln(out, "Logged in as", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}

func newLogoutCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored admin token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			agent, err := app.NewAgent(ctx, g.config(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer agent.Close()

			if res := agent.Logout(ctx); !res.Success {
				return errors.New(res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printFieldErrors(w io.Writer, fields []forms.Field) {
	for _, f := range fields {
		if f.HasError() {
			fmt.Fprintf(w, "%s: %s\n", f.Label, f.Error)
		}
	}
}

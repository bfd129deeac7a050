// File: cmd/strata/auth_cmd.go
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"strata/internal/credential"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *appContainer) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored API credential",
		Long:  `Stores, inspects and removes the bearer token sent with every API request. The STRATA_TOKEN environment variable takes precedence over the stored token.`,
	}

	setTokenCmd := &cobra.Command{
		Use:   "set-token [token]",
		Short: "Store a bearer token",
		Long: `Stores the bearer token in the credentials file (mode 0600). The stored token expires after
'auth.token_ttl' (default 2h), or earlier if it is a JWT whose exp claim comes first.
Pass '-' to read the token from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if token == "-" {
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("error reading token from stdin: %w", err)
				}
				token = strings.TrimSpace(line)
			}

			cred, err := app.Credentials.Save(token, app.Config.Auth.TokenTTL)
			if err != nil {
				return fmt.Errorf("error storing token: %w", err)
			}

			if cred.ExpiresAt.IsZero() {
				fmt.Fprintf(app.Out, "Token stored in %s.\n", app.Credentials.Path())
			} else {
				fmt.Fprintf(app.Out, "Token stored in %s, valid until %s.\n", app.Credentials.Path(), cred.ExpiresAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a usable token is available",
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv(TokenEnv) != "" {
				fmt.Fprintf(app.Out, "Using token from %s.\n", TokenEnv)
				return nil
			}

			cred, err := app.Credentials.Load()
			if errors.Is(err, credential.ErrNoCredential) {
				fmt.Fprintln(app.Out, "Not authenticated. Use 'strata auth set-token <token>'.")
				return nil
			}
			if err != nil {
				return err
			}

			if _, err := app.Credentials.Token(); err != nil {
				fmt.Fprintf(app.Out, "Stored token has expired (at %s). Use 'strata auth set-token <token>'.\n", cred.ExpiresAt.Local().Format(time.DateTime))
				return nil
			}

			if cred.ExpiresAt.IsZero() {
				fmt.Fprintln(app.Out, "Authenticated.")
			} else {
				remaining := time.Until(cred.ExpiresAt).Round(time.Minute)
				fmt.Fprintf(app.Out, "Authenticated, token expires in %s.\n", remaining)
			}
			return nil
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Credentials.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Stored token removed.")
			return nil
		},
	}

	authCmd.AddCommand(setTokenCmd, statusCmd, logoutCmd)
	return authCmd
}

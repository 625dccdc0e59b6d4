package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"timesheet-assistant/pkg/gcalendar"
)

func newAuthCmd(a *app) *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Authorize external services",
	}

	var tokenPath string
	calendar := &cobra.Command{
		Use:   "calendar <credentials.json>",
		Short: "Authorize the Google Calendar mirror",
		Long: `calendar runs the OAuth desktop flow for the given client credentials and
saves the token where the service reads it (calendar.token_path).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			oauthCfg, err := gcalendar.OAuthConfigFromJSON(creds)
			if err != nil {
				return err
			}

			if tokenPath == "" {
				tokenPath = a.cfg.Calendar.TokenPath
			}
			if tokenPath == "" {
				tokenPath = gcalendar.DefaultTokenPath
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Open this link in your browser and authorize access:\n\n%s\n\nPaste the authorization code: ", gcalendar.AuthCodeURL(oauthCfg))

			code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && strings.TrimSpace(code) == "" {
				return fmt.Errorf("read authorization code: %w", err)
			}
			if _, err := gcalendar.ExchangeAndSave(cmd.Context(), oauthCfg, strings.TrimSpace(code), tokenPath); err != nil {
				return err
			}
			fmt.Fprintf(out, "Token saved to %s\n", tokenPath)
			return nil
		},
	}
	calendar.Flags().StringVar(&tokenPath, "token", "", "where to save the token (default calendar.token_path)")

	auth.AddCommand(calendar)
	return auth
}

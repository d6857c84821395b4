package app

import (
	"fmt"

	"github.com/opencatalog/catalogctl/internal/auth"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with GitHub to submit and edit projects",
		Long: `Open the browser for GitHub authorization and store the session.

The OAuth secret lives on the auth proxy; catalogctl only ever sees the
resulting token. Sessions expire after ` + auth.SessionTTL.String() + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessions.IsAuthenticated() {
				ok("Already logged in")
				return nil
			}

			flow := &auth.Flow{
				Proxy:       proxy,
				Store:       sessions,
				RedirectURI: cfg.Auth.RedirectURI,
			}
			fmt.Println("Opening browser for GitHub authorization...")
			if err := flow.Login(); err != nil {
				return err
			}
			ok("Logged in")
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored GitHub session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow := &auth.Flow{Store: sessions}
			if err := flow.Logout(); err != nil {
				return err
			}
			ok("Logged out")
			return nil
		},
	}
}

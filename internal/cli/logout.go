package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if LoadSession() == "" {
				fmt.Println("Not logged in.")
				return nil
			}

			// Best effort: the local session file is removed even when the
			// server call fails.
			if _, err := client.Post("/api/v1/auth/logout", nil); err != nil {
				logger.Warn("server logout failed", "error", err)
			}
			if err := clearCredentials(); err != nil {
				return err
			}

			fmt.Println("Logged out.")
			return nil
		},
	}
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/auth/me")
			if err != nil {
				return fmt.Errorf("whoami: %w", err)
			}

			var me struct {
				UserID           int64  `json:"user_id"`
				Name             string `json:"name"`
				Email            string `json:"email"`
				Role             string `json:"role"`
				SessionExpiresAt string `json:"session_expires_at"`
			}
			if err := json.Unmarshal(resp.Data, &me); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("User:    %s <%s>\n", me.Name, me.Email)
			fmt.Printf("ID:      %d\n", me.UserID)
			fmt.Printf("Role:    %s\n", me.Role)
			fmt.Printf("Session: valid until %s\n", me.SessionExpiresAt)
			return nil
		},
	}
}

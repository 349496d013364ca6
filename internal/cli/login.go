package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const credentialsFileName = "credentials.json"

type credentials struct {
	Session string `json:"session"`
	Server  string `json:"server"`
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate as an administrator",
		Long:  "Log in to the FleetGate server and store the session cookie for later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				fmt.Print("Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			resp, session, err := client.Login(email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			if err := saveCredentials(credentials{Session: session, Server: client.BaseURL}); err != nil {
				return err
			}

			var me struct {
				Name string `json:"name"`
				Role string `json:"role"`
			}
			json.Unmarshal(resp.Data, &me)
			fmt.Printf("Logged in as %s (%s)\n", me.Name, me.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Administrator email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	return cmd
}

// credentialsPath returns the path to the credentials file (~/.fleetgate/credentials.json).
func credentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".fleetgate", credentialsFileName), nil
}

func saveCredentials(creds credentials) error {
	credPath, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(credPath), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(credPath, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// LoadSession reads the stored session cookie, returning empty string if not found.
func LoadSession() string {
	p, err := credentialsPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return ""
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return ""
	}
	return creds.Session
}

// clearCredentials removes the stored session.
func clearCredentials() error {
	p, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

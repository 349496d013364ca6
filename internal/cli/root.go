// Package cli implements the fleetgate command-line client.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/fleetgate/internal/logging"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking FLEETGATE_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("FLEETGATE_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the fleetgate CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fleetgate",
		Short: "FleetGate — admin gateway for the vehicle rental platform",
		Long:  "FleetGate authenticates administrators and manages fleet, booking, and user data through the gateway API.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(logging.ParseLevel(flagLogLevel), flagLogFormat)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "FleetGate server URL (or FLEETGATE_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newVehiclesCmd(),
		newBookingsCmd(),
		newStatsCmd(),
	)

	return root
}

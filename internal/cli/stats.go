package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/stats")
			if err != nil {
				return fmt.Errorf("get stats: %w", err)
			}

			var stats struct {
				TotalUsers       int     `json:"totalUsers"`
				TotalVehicles    int     `json:"totalVehicles"`
				ActiveBookings   int     `json:"activeBookings"`
				PendingBookings  int     `json:"pendingBookings"`
				VehiclesOnRental int     `json:"vehiclesOnRental"`
				MonthlyRevenue   float64 `json:"monthlyRevenue"`
			}
			if err := json.Unmarshal(resp.Data, &stats); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			fmt.Printf("Users:              %d\n", stats.TotalUsers)
			fmt.Printf("Vehicles:           %d\n", stats.TotalVehicles)
			fmt.Printf("Vehicles on rental: %d\n", stats.VehiclesOnRental)
			fmt.Printf("Active bookings:    %d\n", stats.ActiveBookings)
			fmt.Printf("Pending bookings:   %d\n", stats.PendingBookings)
			fmt.Printf("Monthly revenue:    %.2f\n", stats.MonthlyRevenue)
			return nil
		},
	}
}

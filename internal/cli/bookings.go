package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newBookingsCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List rental bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/bookings/?limit=%d&offset=%d", limit, offset)
			resp, err := client.Get(path)
			if err != nil {
				return fmt.Errorf("list bookings: %w", err)
			}

			var bookings []struct {
				ID         int64   `json:"id"`
				UserID     int64   `json:"userId"`
				VehicleID  int64   `json:"vehicleId"`
				StartDate  string  `json:"startDate"`
				EndDate    string  `json:"endDate"`
				TotalPrice float64 `json:"totalPrice"`
				Status     string  `json:"status"`
			}
			if err := json.Unmarshal(resp.Data, &bookings); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(bookings) == 0 {
				fmt.Println("No bookings found.")
				return nil
			}

			fmt.Printf("%-6s  %-6s  %-8s  %-12s  %-12s  %10s  %s\n", "ID", "USER", "VEHICLE", "START", "END", "TOTAL", "STATUS")
			for _, b := range bookings {
				fmt.Printf("%-6d  %-6d  %-8d  %-12.12s  %-12.12s  %10.2f  %s\n",
					b.ID, b.UserID, b.VehicleID, b.StartDate, b.EndDate, b.TotalPrice, b.Status)
			}

			if resp.Pagination != nil && resp.Pagination.HasMore {
				fmt.Printf("\n(%d of %d shown)\n", len(bookings), resp.Pagination.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	return cmd
}

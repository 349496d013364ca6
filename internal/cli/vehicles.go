package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newVehiclesCmd() *cobra.Command {
	var limit, offset int
	var search string

	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List fleet vehicles",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/vehicles/?limit=%d&offset=%d", limit, offset)
			if search != "" {
				path += "&search=" + search
			}
			resp, err := client.Get(path)
			if err != nil {
				return fmt.Errorf("list vehicles: %w", err)
			}

			var vehicles []struct {
				ID           int64   `json:"id"`
				Make         string  `json:"make"`
				Model        string  `json:"model"`
				Year         int     `json:"year"`
				LicensePlate string  `json:"licensePlate"`
				DailyRate    float64 `json:"dailyRate"`
				Status       string  `json:"status"`
			}
			if err := json.Unmarshal(resp.Data, &vehicles); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(vehicles) == 0 {
				fmt.Println("No vehicles found.")
				return nil
			}

			fmt.Printf("%-6s  %-20s  %-6s  %-12s  %10s  %s\n", "ID", "VEHICLE", "YEAR", "PLATE", "RATE/DAY", "STATUS")
			for _, v := range vehicles {
				fmt.Printf("%-6d  %-20s  %-6d  %-12s  %10.2f  %s\n",
					v.ID, v.Make+" "+v.Model, v.Year, v.LicensePlate, v.DailyRate, v.Status)
			}

			if resp.Pagination != nil && resp.Pagination.HasMore {
				fmt.Printf("\n(%d of %d shown)\n", len(vehicles), resp.Pagination.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	cmd.Flags().StringVar(&search, "search", "", "Free-text filter")
	return cmd
}

package rentapi

import (
	"context"
	"encoding/json"
)

// GetDashboardStats fetches the aggregates backing the dashboard stat cards.
func (c *Client) GetDashboardStats(ctx context.Context, token string) (*DashboardStats, error) {
	data, err := c.get(ctx, "/api/admin/dashboard", token)
	if err != nil {
		return nil, err
	}

	var stats DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, &DecodeError{Op: "dashboard stats", Err: err}
	}
	return &stats, nil
}

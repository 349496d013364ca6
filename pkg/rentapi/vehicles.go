package rentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/me/fleetgate/pkg/model"
)

// ListVehicles returns a page of fleet vehicles and the total count.
func (c *Client) ListVehicles(ctx context.Context, token string, opts model.ListOptions) ([]Vehicle, int, error) {
	data, err := c.get(ctx, "/api/admin/vehicles"+listQuery(opts), token)
	if err != nil {
		return nil, 0, err
	}
	return decodeList[Vehicle]("list vehicles", data)
}

// GetVehicle fetches a single vehicle by ID.
func (c *Client) GetVehicle(ctx context.Context, token string, id int64) (*Vehicle, error) {
	data, err := c.get(ctx, fmt.Sprintf("/api/admin/vehicles/%d", id), token)
	if err != nil {
		return nil, err
	}
	return decodeVehicle("get vehicle", data)
}

// CreateVehicle registers a new vehicle in the fleet.
func (c *Client) CreateVehicle(ctx context.Context, token string, in VehicleInput) (*Vehicle, error) {
	data, err := c.doJSON(ctx, http.MethodPost, "/api/admin/vehicles", token, in)
	if err != nil {
		return nil, err
	}
	return decodeVehicle("create vehicle", data)
}

// UpdateVehicle replaces a vehicle's writable fields.
func (c *Client) UpdateVehicle(ctx context.Context, token string, id int64, in VehicleInput) (*Vehicle, error) {
	data, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/admin/vehicles/%d", id), token, in)
	if err != nil {
		return nil, err
	}
	return decodeVehicle("update vehicle", data)
}

// DeleteVehicle removes a vehicle from the fleet.
func (c *Client) DeleteVehicle(ctx context.Context, token string, id int64) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/vehicles/%d", id), token, nil)
	return err
}

// decodeVehicle validates the vehicle payload shape.
func decodeVehicle(op string, data []byte) (*Vehicle, error) {
	var v Vehicle
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	if v.ID == 0 {
		return nil, &DecodeError{Op: op, Field: "id"}
	}
	return &v, nil
}

package rentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/me/fleetgate/pkg/model"
)

// ListBookings returns a page of bookings and the total count.
func (c *Client) ListBookings(ctx context.Context, token string, opts model.ListOptions) ([]Booking, int, error) {
	data, err := c.get(ctx, "/api/admin/bookings"+listQuery(opts), token)
	if err != nil {
		return nil, 0, err
	}
	return decodeList[Booking]("list bookings", data)
}

// GetBooking fetches a single booking by ID.
func (c *Client) GetBooking(ctx context.Context, token string, id int64) (*Booking, error) {
	data, err := c.get(ctx, fmt.Sprintf("/api/admin/bookings/%d", id), token)
	if err != nil {
		return nil, err
	}
	return decodeBooking("get booking", data)
}

// UpdateBookingStatus transitions a booking to a new status.
// Status validity is enforced upstream; the gateway passes it through.
func (c *Client) UpdateBookingStatus(ctx context.Context, token string, id int64, status string) (*Booking, error) {
	body := map[string]string{"status": status}
	data, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/admin/bookings/%d/status", id), token, body)
	if err != nil {
		return nil, err
	}
	return decodeBooking("update booking status", data)
}

// decodeBooking validates the booking payload shape.
func decodeBooking(op string, data []byte) (*Booking, error) {
	var b Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	if b.ID == 0 {
		return nil, &DecodeError{Op: op, Field: "id"}
	}
	return &b, nil
}

package rentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/me/fleetgate/pkg/model"
)

// GetUser fetches the full profile for a user ID.
func (c *Client) GetUser(ctx context.Context, token string, userID int64) (*UserProfile, error) {
	data, err := c.get(ctx, fmt.Sprintf("/api/admin/users/%d", userID), token)
	if err != nil {
		return nil, err
	}
	return decodeUserProfile(data)
}

// ListUsers returns a page of platform users and the total count.
func (c *Client) ListUsers(ctx context.Context, token string, opts model.ListOptions) ([]UserProfile, int, error) {
	data, err := c.get(ctx, "/api/admin/users"+listQuery(opts), token)
	if err != nil {
		return nil, 0, err
	}
	return decodeList[UserProfile]("list users", data)
}

// UpdateUserRole changes a user's role.
func (c *Client) UpdateUserRole(ctx context.Context, token string, userID int64, role string) (*UserProfile, error) {
	body := map[string]string{"role": role}
	data, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/role", userID), token, body)
	if err != nil {
		return nil, err
	}
	return decodeUserProfile(data)
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, token string, userID int64) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), token, nil)
	return err
}

// decodeUserProfile validates the profile payload shape.
func decodeUserProfile(data []byte) (*UserProfile, error) {
	const op = "get user"

	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	switch {
	case p.ID == 0:
		return nil, &DecodeError{Op: op, Field: "id"}
	case p.Email == "":
		return nil, &DecodeError{Op: op, Field: "email"}
	case p.Role == "":
		return nil, &DecodeError{Op: op, Field: "role"}
	}
	return &p, nil
}

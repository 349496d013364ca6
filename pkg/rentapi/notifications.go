package rentapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/me/fleetgate/pkg/model"
)

// ListNotifications returns a page of notifications and the total count.
func (c *Client) ListNotifications(ctx context.Context, token string, opts model.ListOptions) ([]Notification, int, error) {
	data, err := c.get(ctx, "/api/admin/notifications"+listQuery(opts), token)
	if err != nil {
		return nil, 0, err
	}
	return decodeList[Notification]("list notifications", data)
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, token string, id int64) error {
	_, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/admin/notifications/%d/read", id), token, nil)
	return err
}

// BroadcastNotification sends a notification to every platform user.
func (c *Client) BroadcastNotification(ctx context.Context, token, title, body string) error {
	payload := map[string]string{"title": title, "body": body}
	_, err := c.doJSON(ctx, http.MethodPost, "/api/admin/notifications/broadcast", token, payload)
	return err
}

package api

import (
	"context"
	"net/http"
	"net/url"

	"sayitloud/domain/entities"
	"sayitloud/infrastructure/transport"
)

// MarkReadResult is returned when a single notification is marked read.
type MarkReadResult struct {
	Message      string                 `json:"message"`
	Notification *entities.Notification `json:"notification"`
}

// Notifications fetches all notifications for the authenticated identity.
// GET /notifications
func (c *Client) Notifications(ctx context.Context) ([]entities.Notification, error) {
	return do[[]entities.Notification](ctx, c, http.MethodGet, "/notifications", nil, transport.EncodingJSON)
}

// MarkNotificationRead marks one notification read.
// PUT /notifications/:id/read
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (*MarkReadResult, error) {
	if err := requireID("notification id", notificationID); err != nil {
		return nil, err
	}
	path := "/notifications/" + url.PathEscape(notificationID) + "/read"
	return do[*MarkReadResult](ctx, c, http.MethodPut, path, nil, transport.EncodingJSON)
}

// MarkAllNotificationsRead marks every notification read.
// PUT /notifications/read-all
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (MessageResult, error) {
	return do[MessageResult](ctx, c, http.MethodPut, "/notifications/read-all", nil, transport.EncodingJSON)
}

package entities

import "time"

// NotificationType enumerates the events the server notifies about.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// PostRef is the lightweight post reference attached to like/comment
// notifications.
type PostRef struct {
	ID      string `json:"_id"`
	Content string `json:"content"`
}

// Notification is created by the remote service, never by the client; the
// client only ever toggles the read flag.
type Notification struct {
	ID        string           `json:"_id"`
	Recipient string           `json:"recipient"`
	Type      NotificationType `json:"type"`
	Initiator UserSummary      `json:"initiator"`
	Post      *PostRef         `json:"post,omitempty"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// CountUnread returns the number of unread notifications in the slice.
func CountUnread(notifications []Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

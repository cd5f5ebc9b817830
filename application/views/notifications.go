package views

import (
	"context"

	"sayitloud/application/optimistic"
	"sayitloud/application/store"
	"sayitloud/domain/entities"
	pkgerrors "sayitloud/pkg/errors"
)

// NotificationsView lists notifications with optimistic read toggles.
type NotificationsView struct {
	base
}

// NewNotificationsView creates the notifications view.
func NewNotificationsView(deps Deps) *NotificationsView {
	return &NotificationsView{base: newBase(deps)}
}

// Load performs the single full-collection fetch for this view.
func (v *NotificationsView) Load(ctx context.Context) error {
	notifications, err := v.deps.API.Notifications(ctx)
	v.settle()
	if err != nil {
		return err
	}
	if v.isClosed() {
		return nil
	}
	v.deps.Store.SetNotifications(notifications)
	return nil
}

// Notifications returns all notifications in fetch order.
func (v *NotificationsView) Notifications() []entities.Notification {
	return v.deps.Store.Notifications()
}

// UnreadCount returns the number of unread notifications.
func (v *NotificationsView) UnreadCount() int {
	return v.deps.Store.UnreadCount()
}

// MarkRead optimistically marks one notification read. Marking an
// already-read notification is idempotent and never pushes the unread
// count below zero.
func (v *NotificationsView) MarkRead(ctx context.Context, notificationID string) (optimistic.Outcome, error) {
	if err := v.ready(); err != nil {
		return optimistic.OutcomeSkipped, err
	}

	var snap store.ReadSnapshot
	applied := false

	return v.deps.Runner.Run(ctx,
		optimistic.Key{EntityID: notificationID, Action: "read"},
		optimistic.Mutation{
			Apply: func() {
				snap, applied = v.deps.Store.MarkRead(notificationID)
			},
			Call: func(ctx context.Context) error {
				if !applied {
					return pkgerrors.NewNotFoundError("notification")
				}
				_, err := v.deps.API.MarkNotificationRead(ctx, notificationID)
				return err
			},
			Revert: func() {
				if applied {
					v.deps.Store.RestoreRead(snap)
				}
			},
		},
	)
}

// MarkAllRead optimistically zeroes the unread count. There is no rollback
// path: once issued, the local state stays read even if the call fails.
func (v *NotificationsView) MarkAllRead(ctx context.Context) (optimistic.Outcome, error) {
	if err := v.ready(); err != nil {
		return optimistic.OutcomeSkipped, err
	}

	return v.deps.Runner.Run(ctx,
		optimistic.Key{EntityID: "notifications", Action: "read-all"},
		optimistic.Mutation{
			Apply: func() {
				v.deps.Store.MarkAllRead()
			},
			Call: func(ctx context.Context) error {
				_, err := v.deps.API.MarkAllNotificationsRead(ctx)
				return err
			},
		},
	)
}

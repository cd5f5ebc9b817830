package store

import (
	"sayitloud/domain/entities"
)

// SetNotifications replaces the notification collection with a fresh fetch.
func (s *Store) SetNotifications(notifications []entities.Notification) {
	s.mu.Lock()
	s.notifications = make(map[string]*entities.Notification, len(notifications))
	s.notificationOrder = make([]string, 0, len(notifications))
	for _, n := range notifications {
		item := n
		s.notifications[item.ID] = &item
		s.notificationOrder = append(s.notificationOrder, item.ID)
	}
	s.mu.Unlock()

	s.notify()
}

// Notifications returns copies of all notifications in fetch order.
func (s *Store) Notifications() []entities.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Notification, 0, len(s.notificationOrder))
	for _, id := range s.notificationOrder {
		if n, ok := s.notifications[id]; ok {
			out = append(out, *n)
		}
	}
	return out
}

// UnreadCount returns the number of unread notifications. It is derived
// from the read flags, so it can never go below zero.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// ReadSnapshot is the pre-mutation read flag of one notification.
type ReadSnapshot struct {
	NotificationID string
	WasRead        bool
}

// MarkRead sets the read flag and returns the revert snapshot. Marking an
// already-read notification again is an idempotent no-op transition.
func (s *Store) MarkRead(notificationID string) (ReadSnapshot, bool) {
	s.mu.Lock()
	n, ok := s.notifications[notificationID]
	if !ok {
		s.mu.Unlock()
		return ReadSnapshot{}, false
	}
	snap := ReadSnapshot{NotificationID: notificationID, WasRead: n.Read}
	n.Read = true
	s.mu.Unlock()

	s.notify()
	return snap, true
}

// RestoreRead reverts a mark-read to its snapshot.
func (s *Store) RestoreRead(snap ReadSnapshot) {
	s.mu.Lock()
	n, ok := s.notifications[snap.NotificationID]
	if !ok {
		s.mu.Unlock()
		return
	}
	n.Read = snap.WasRead
	s.mu.Unlock()

	s.notify()
}

// MarkAllRead sets every read flag, leaving the local unread count at zero
// regardless of prior state.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	for _, n := range s.notifications {
		n.Read = true
	}
	s.mu.Unlock()

	s.notify()
}

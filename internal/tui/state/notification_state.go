package state

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/board"
)

// maxNotifications bounds how many banners are kept on screen
const maxNotifications = 3

// Notification is a banner with the time it was raised
type Notification struct {
	board.Notification
	At time.Time
}

// NotificationState manages notification display state.
// The newest notifications are kept; older ones fall off.
type NotificationState struct {
	notifications []Notification
	ttl           time.Duration
}

// NewNotificationState keeps each notification for ttl
func NewNotificationState(ttl time.Duration) *NotificationState {
	return &NotificationState{ttl: ttl}
}

// Add records n raised at now
func (s *NotificationState) Add(n board.Notification, now time.Time) {
	s.notifications = append(s.notifications, Notification{Notification: n, At: now})
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}
}

// Expire drops notifications older than the ttl
func (s *NotificationState) Expire(now time.Time) {
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if now.Sub(n.At) < s.ttl {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.notifications = nil
}

// All returns all current notifications, oldest first.
func (s *NotificationState) All() []Notification {
	return s.notifications
}

// HasAny returns true if there are any notifications.
func (s *NotificationState) HasAny() bool {
	return len(s.notifications) > 0
}

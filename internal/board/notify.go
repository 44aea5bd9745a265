package board

import "log/slog"

// Severity classifies a notification for display
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a message for the user
type Notification struct {
	Severity Severity
	Message  string
}

// Notifier receives user-facing messages from the controller
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notification)

// Notify calls f(n)
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

type logNotifier struct {
	logger *slog.Logger
}

func (l logNotifier) Notify(n Notification) {
	switch n.Severity {
	case SeverityError:
		l.logger.Error(n.Message)
	case SeverityWarning:
		l.logger.Warn(n.Message)
	default:
		l.logger.Info(n.Message)
	}
}

// ChannelNotifier buffers notifications for a UI loop to pick up.
// When the buffer is full new notifications are dropped.
type ChannelNotifier struct {
	ch chan Notification
}

// NewChannelNotifier creates a notifier with the given buffer size
func NewChannelNotifier(size int) *ChannelNotifier {
	if size <= 0 {
		size = 16
	}
	return &ChannelNotifier{ch: make(chan Notification, size)}
}

// Notify enqueues n without blocking
func (c *ChannelNotifier) Notify(n Notification) {
	select {
	case c.ch <- n:
	default:
		slog.Debug("notification dropped", "message", n.Message)
	}
}

// C returns the receive side
func (c *ChannelNotifier) C() <-chan Notification {
	return c.ch
}

package engine

import (
	"log/slog"

	domain "github.com/arkamaya/projectflow/pkg/projectflow/domain"
)

// Notifier is implemented by the caller's delivery transport (email, push).
// The engine only produces directives; it never sends anything itself.
type Notifier interface {
	Notify(division string, message string) error
}

// Dispatch renders a notification directive for the given project and hands
// it to the notifier. A nil directive or one without a division is a no-op.
func Dispatch(notifier Notifier, n *domain.Notification, projectName string) error {
	if n == nil || n.Division == nil {
		return nil
	}
	return notifier.Notify(*n.Division, n.Render(projectName))
}

// LogNotifier writes notifications to the log. It stands in for a real
// transport during bootstrap and in tests.
type LogNotifier struct{}

func (LogNotifier) Notify(division string, message string) error {
	slog.Info("Notification", "division", division, "message", message)
	return nil
}

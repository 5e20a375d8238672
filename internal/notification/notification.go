package notification

import (
	"context"
	"log/slog"
)

const (
	// KindAccountCreated indicates a newly opened account.
	KindAccountCreated = "account_created"
	// KindAccountClosed indicates a permanently removed account.
	KindAccountClosed = "account_closed"
	// KindWithdrawal indicates funds leaving an account.
	KindWithdrawal = "withdrawal"
)

// Message describes an account event payload.
type Message struct {
	Kind     string
	Username string
	Body     string
}

// Notifier delivers account events to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes events to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "username", message.Username, "body", message.Body)
	return nil
}

// Package notify is the narrow interface to the chat/notification layer.
// Delivery failures are logged by callers, never fatal.
package notify

import (
	"context"
	"log/slog"
)

// Notifier sends messages to a chat channel
type Notifier interface {
	SendMessage(ctx context.Context, channelID, content string) error
}

// Noop is a Notifier that drops every message, for deployments without a
// chat integration
type Noop struct{}

// Ensure Noop implements the interface
var _ Notifier = (*Noop)(nil)

// NewNoop creates a no-op notifier
func NewNoop() *Noop {
	return &Noop{}
}

// SendMessage discards the message
func (n *Noop) SendMessage(ctx context.Context, channelID, content string) error {
	return nil
}

// LoggingNotifier writes messages to the application log instead of a
// chat service, useful for local development
type LoggingNotifier struct {
	logger *slog.Logger
}

// Ensure LoggingNotifier implements the interface
var _ Notifier = (*LoggingNotifier)(nil)

// NewLogging creates a notifier that logs messages
func NewLogging(logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{logger: logger}
}

// SendMessage logs the message at info level
func (n *LoggingNotifier) SendMessage(ctx context.Context, channelID, content string) error {
	n.logger.Info("notification",
		slog.String("channel", channelID),
		slog.String("content", content),
	)
	return nil
}

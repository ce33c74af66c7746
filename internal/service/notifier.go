package service

import (
	"context"
	"log/slog"
)

// Notifier delivers a notification outside the database (e-mail in
// production). Delivery transport is an external collaborator; the
// in-app message row is always written regardless of the notifier.
type Notifier interface {
	Send(ctx context.Context, email, title, content string) error
}

// LogNotifier records deliveries in the log only. It stands in when no
// mail collaborator is configured.
type LogNotifier struct {
	Log *slog.Logger
}

func (n *LogNotifier) Send(_ context.Context, email, title, _ string) error {
	n.Log.Info("notification delivery skipped, no mail transport configured",
		slog.String("email", email), slog.String("title", title))

	return nil
}

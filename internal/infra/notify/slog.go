// Package notify adapts the user-notification surface. The service has no UI
// of its own, so notifications land in the structured log where the embedding
// frontend picks them up.
package notify

import (
	"context"
	"log/slog"

	cartuc "example.com/cart-sync/internal/usecase/cart"
)

type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(ctx context.Context, msg cartuc.Notification) {
	n.logger.WarnContext(ctx, "user notification",
		"id", msg.ID,
		"category", string(msg.Category),
		"message", msg.Message,
	)
}

package notifier

import (
	"context"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/notification"
)

// LogNotifier announces events through the structured log. It stands in for
// real delivery channels; callers treat it like any other notifier.
type LogNotifier struct {
	logger coreport.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(logger coreport.Logger) notification.Notifier {
	return &LogNotifier{logger: logger}
}

// UserOnboarded announces a newly created user
func (n *LogNotifier) UserOnboarded(_ context.Context, user *entity.User) error {
	n.logger.Info("User onboarded", map[string]any{
		"user_id":      user.ID,
		"display_name": user.DisplayName,
		"channel":      string(user.Channel),
	})
	return nil
}

// OrderCreated announces a freshly created order
func (n *LogNotifier) OrderCreated(_ context.Context, user *entity.User, order *entity.Order) error {
	n.logger.Info("Order created", map[string]any{
		"user_id":    user.ID,
		"order_code": order.Code,
		"total":      order.Total.String(),
		"status":     string(order.Status),
		"items":      len(order.Items),
	})
	return nil
}

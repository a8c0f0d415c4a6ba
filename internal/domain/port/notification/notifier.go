package notification

import (
	"context"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
)

// Notifier is the outbound collaborator for email/notification rendering.
// Delivery failures are never correctness-critical: the purchase orchestrator
// logs them and moves on.
type Notifier interface {
	// UserOnboarded announces a newly created user
	UserOnboarded(ctx context.Context, user *entity.User) error

	// OrderCreated announces a freshly created order
	OrderCreated(ctx context.Context, user *entity.User, order *entity.Order) error
}

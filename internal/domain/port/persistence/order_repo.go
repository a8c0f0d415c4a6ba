package persistence

import (
	"context"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
)

// OrderRepository defines persistence for orders and their transition audit trail
type OrderRepository interface {
	// Create saves a new order with its line items and payment descriptor
	Create(ctx context.Context, order *entity.Order) error

	// GetByCode retrieves an order by its human-readable code
	//
	// Possible errors:
	// - ErrOrderNotFound: If no order with the given code exists
	GetByCode(ctx context.Context, code string) (*entity.Order, error)

	// ListByUser returns a user's orders, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Order, error)

	// UpdateStatus persists an order's new status and appends the transition
	// event to the audit trail
	//
	// Possible errors:
	// - ErrOrderNotFound: If the order doesn't exist
	UpdateStatus(ctx context.Context, order *entity.Order, event *entity.OrderEvent) error
}

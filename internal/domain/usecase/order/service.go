package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/persistence"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/balance"
)

// CreateInput carries everything needed to create an order for a resolved user
type CreateInput struct {
	Items           []entity.LineItem
	ShippingAddress entity.ShippingAddress
	Payment         entity.Payment
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Tax             decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
}

// Service owns the order state machine and the balance movements attached to
// it: a debit when an order is confirmed, a refund credit when a confirmed or
// processing order is cancelled.
type Service struct {
	uow          persistence.UnitOfWork
	ledger       *balance.Ledger
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new order service
func NewService(uow persistence.UnitOfWork, ledger *balance.Ledger, timeProvider coreport.TimeProvider, logger coreport.Logger) *Service {
	return &Service{
		uow:          uow,
		ledger:       ledger,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create persists a new order. An order with a verified payment starts
// confirmed and debits the user's balance in the same database transaction;
// an unverified payment starts the order pending with no balance movement.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*entity.Order, error) {
	ord, err := entity.NewOrder(userID, in.Items, in.ShippingAddress, in.Payment,
		in.Subtotal, in.Shipping, in.Tax, in.Discount, in.Total, s.timeProvider)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin order transaction: %w", err)
	}

	if err := s.uow.Orders(txCtx).Create(txCtx, ord); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if ord.Status == entity.OrderConfirmed {
		if _, err := s.ledger.Debit(txCtx, userID, ord.Total, ord.DebitReason()); err != nil {
			_ = s.uow.Rollback(txCtx)
			return nil, err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	s.logger.Info("Order created", map[string]any{
		"order_code": ord.Code,
		"user_id":    userID,
		"status":     string(ord.Status),
		"total":      ord.Total.String(),
	})
	return ord, nil
}

// GetByCode retrieves an order by its human-readable code
func (s *Service) GetByCode(ctx context.Context, code string) (*entity.Order, error) {
	return s.uow.Orders(ctx).GetByCode(ctx, code)
}

// ListByUser returns a user's orders, newest first
func (s *Service) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Order, error) {
	return s.uow.Orders(ctx).ListByUser(ctx, userID, limit)
}

// AdvanceStatus moves an order along the state machine. Cancellation goes
// through Cancel, which also handles the refund, and confirmation goes
// through Confirm, which debits the order total.
func (s *Service) AdvanceStatus(ctx context.Context, code string, next entity.OrderStatus) (*entity.Order, error) {
	if next == entity.OrderCancelled {
		return s.Cancel(ctx, code)
	}
	if next == entity.OrderConfirmed {
		return s.Confirm(ctx, code)
	}

	ord, err := s.uow.Orders(ctx).GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	before := ord.Status
	event, err := ord.TransitionTo(next, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.uow.Orders(ctx).UpdateStatus(ctx, ord, event); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info("Order status changed", map[string]any{
		"order_code": ord.Code,
		"from":       string(before),
		"to":         string(ord.Status),
	})
	return ord, nil
}

// Confirm moves a pending order to confirmed and debits the order total from
// the user's balance in the same database transaction. A confirmed order
// always has its money; there is no confirmation path that skips the debit.
func (s *Service) Confirm(ctx context.Context, code string) (*entity.Order, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin confirm transaction: %w", err)
	}

	ord, err := s.uow.Orders(txCtx).GetByCode(txCtx, code)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	event, err := ord.TransitionTo(entity.OrderConfirmed, s.timeProvider)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if _, err := s.ledger.Debit(txCtx, ord.UserID, ord.Total, ord.DebitReason()); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Orders(txCtx).UpdateStatus(txCtx, ord, event); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit confirm transaction: %w", err)
	}

	s.logger.Info("Order confirmed", map[string]any{
		"order_code": ord.Code,
		"user_id":    ord.UserID,
		"total":      ord.Total.String(),
	})
	return ord, nil
}

// Cancel cancels an order. Cancelling a confirmed or processing order credits
// the original total back to the user before the status flips; cancelling a
// pending order moves no money. Orders that have shipped can no longer be
// cancelled and the attempt is rejected.
func (s *Service) Cancel(ctx context.Context, code string) (*entity.Order, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin cancel transaction: %w", err)
	}

	ord, err := s.uow.Orders(txCtx).GetByCode(txCtx, code)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	before := ord.Status
	refund := ord.RequiresRefundOnCancel()

	event, err := ord.TransitionTo(entity.OrderCancelled, s.timeProvider)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if refund {
		if _, err := s.ledger.Credit(txCtx, ord.UserID, ord.Total, ord.RefundReason()); err != nil {
			_ = s.uow.Rollback(txCtx)
			return nil, fmt.Errorf("failed to refund order %s: %w", ord.Code, err)
		}
	}

	if err := s.uow.Orders(txCtx).UpdateStatus(txCtx, ord, event); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit cancel transaction: %w", err)
	}

	s.logger.Info("Order cancelled", map[string]any{
		"order_code": ord.Code,
		"from":       string(before),
		"refunded":   refund,
		"total":      ord.Total.String(),
	})
	return ord, nil
}

// ParseStatus validates a wire status value
func ParseStatus(s string) (entity.OrderStatus, error) {
	if !entity.ValidOrderStatus(s) {
		return "", fmt.Errorf("%w: unknown order status %q", errs.ErrValidation, s)
	}
	return entity.OrderStatus(s), nil
}

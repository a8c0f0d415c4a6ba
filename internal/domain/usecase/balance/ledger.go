package balance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/persistence"
)

// Ledger exposes the atomic credit/debit contract over per-user balances.
// It is the only path through which balances move; nothing else in the
// system performs ad hoc read-then-write balance mutations.
//
// When the context carries a unit-of-work transaction, the mutation joins it;
// otherwise it runs in its own.
type Ledger struct {
	uow    persistence.UnitOfWork
	logger coreport.Logger
}

// NewLedger creates a new balance ledger
func NewLedger(uow persistence.UnitOfWork, logger coreport.Logger) *Ledger {
	return &Ledger{
		uow:    uow,
		logger: logger,
	}
}

// Credit adds amount to the user's balance and journals the mutation under
// the given reason tag. Credits carry no precondition and commute with other
// credits and debits.
func (l *Ledger) Credit(ctx context.Context, userID string, amount decimal.Decimal, reason string) (decimal.Decimal, error) {
	if err := validateMovement(amount, reason); err != nil {
		return decimal.Zero, err
	}

	newBalance, err := l.uow.Users(ctx).AdjustBalance(ctx, userID, amount, reason)
	if err != nil {
		return decimal.Zero, fmt.Errorf("credit failed: %w", err)
	}

	l.logger.Info("Balance credited", map[string]any{
		"user_id":     userID,
		"amount":      amount.String(),
		"reason":      reason,
		"new_balance": newBalance.String(),
	})
	return newBalance, nil
}

// Debit subtracts amount from the user's balance if and only if the
// precondition balance >= amount still holds at commit time. The repository
// holds a row lock for the read-modify-write, so two concurrent debits can
// never jointly overdraw the account.
func (l *Ledger) Debit(ctx context.Context, userID string, amount decimal.Decimal, reason string) (decimal.Decimal, error) {
	if err := validateMovement(amount, reason); err != nil {
		return decimal.Zero, err
	}

	newBalance, err := l.uow.Users(ctx).AdjustBalance(ctx, userID, amount.Neg(), reason)
	if err != nil {
		if errs.IsInsufficientBalanceError(err) {
			l.logger.Warn("Debit rejected for insufficient balance", map[string]any{
				"user_id": userID,
				"amount":  amount.String(),
				"reason":  reason,
			})
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("debit failed: %w", err)
	}

	l.logger.Info("Balance debited", map[string]any{
		"user_id":     userID,
		"amount":      amount.String(),
		"reason":      reason,
		"new_balance": newBalance.String(),
	})
	return newBalance, nil
}

// Balance returns the user's current spendable balance
func (l *Ledger) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	user, err := l.uow.Users(ctx).GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance(), nil
}

// validateMovement rejects non-positive amounts and untagged mutations.
// Every journal row needs a reason so replays can be audited.
func validateMovement(amount decimal.Decimal, reason string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: movement amount must be positive, got %s", errs.ErrInvalidAmount, amount.String())
	}
	if reason == "" {
		return fmt.Errorf("%w: movement reason is required", errs.ErrValidation)
	}
	return nil
}

package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ErrValidation, CodeValidation},
		{"invalid request", ErrInvalidRequest, CodeValidation},
		{"invalid account id", ErrInvalidAccountID, CodeInvalidAccountID},
		{"invalid transaction id", ErrInvalidTransactionID, CodeInvalidTransactionID},
		{"invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"negative amount", ErrNegativeAmount, CodeInvalidAmount},
		{"duplicate deposit", ErrDuplicateDeposit, CodeDuplicateDeposit},
		{"insufficient balance", ErrInsufficientBalance, CodeInsufficientBalance},
		{"identity conflict", ErrIdentityConflict, CodeIdentityConflict},
		{"invalid transition", ErrInvalidTransition, CodeInvalidTransition},
		{"amount mismatch", ErrAmountMismatch, CodeAmountMismatch},
		{"below minimum", ErrBelowMinimum, CodeBelowMinimum},
		{"stale transaction", ErrStaleTransaction, CodeStaleTransaction},
		{"transaction failed", ErrTransactionFailed, CodeTransactionFailed},
		{"no matching transfer", ErrNoMatchingTransfer, CodeNoMatchingTransfer},
		{"user not found", ErrUserNotFound, CodeUserNotFound},
		{"transaction not found", ErrTransactionNotFound, CodeTransactionNotFound},
		{"account not found", ErrAccountNotFound, CodeAccountNotFound},
		{"order not found", ErrOrderNotFound, CodeOrderNotFound},
		{"deposit not found", ErrDepositNotFound, CodeDepositNotFound},
		{"oracle unavailable", ErrOracleUnavailable, CodeOracleUnavailable},
		{"wrapped error keeps its code", fmt.Errorf("context: %w", ErrDuplicateDeposit), CodeDuplicateDeposit},
		{"unknown error", errors.New("something else"), CodeInternalServer},
		{"internal server", ErrInternalServer, CodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError("user-1", "10", "4.50")

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "user-1")
	assert.Equal(t, CodeInsufficientBalance, ErrorCode(err))

	var detailed *InsufficientBalanceError
	require.True(t, errors.As(err, &detailed))
	assert.Equal(t, "10", detailed.Amount)
	assert.Equal(t, "4.50", detailed.CurrBalance)
}

func TestVerificationError(t *testing.T) {
	inner := fmt.Errorf("%w: result code INVALID_SIGNATURE", ErrTransactionFailed)
	err := NewVerificationError("0.0.555-1000-1", "result", inner)

	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.Contains(t, err.Error(), "0.0.555-1000-1")
	assert.Contains(t, err.Error(), "result")
	assert.Equal(t, CodeTransactionFailed, ErrorCode(err))
}

func TestIdentityConflictError(t *testing.T) {
	err := NewIdentityConflictError("0.0.555", "chat-99")

	assert.ErrorIs(t, err, ErrIdentityConflict)
	assert.True(t, IsIdentityConflictError(err))
	assert.Equal(t, CodeIdentityConflict, ErrorCode(err))
}

func TestInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError("SHQ-20250829-AAAAAA", "delivered", "cancelled")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.True(t, IsInvalidTransitionError(err))
	assert.Contains(t, err.Error(), "delivered")
	assert.Contains(t, err.Error(), "cancelled")
}

func TestErrorPredicates(t *testing.T) {
	t.Run("not found family", func(t *testing.T) {
		for _, err := range []error{ErrNotFound, ErrUserNotFound, ErrTransactionNotFound, ErrAccountNotFound, ErrOrderNotFound, ErrDepositNotFound} {
			assert.True(t, IsNotFoundError(err), err.Error())
		}
		assert.False(t, IsNotFoundError(ErrDuplicateDeposit))
	})

	t.Run("validation family", func(t *testing.T) {
		for _, err := range []error{ErrValidation, ErrInvalidRequest, ErrInvalidAccountID, ErrInvalidTransactionID, ErrInvalidAmount, ErrNegativeAmount} {
			assert.True(t, IsValidationError(err), err.Error())
		}
		assert.False(t, IsValidationError(ErrOracleUnavailable))
	})

	t.Run("oracle unavailable", func(t *testing.T) {
		assert.True(t, IsOracleUnavailableError(fmt.Errorf("fetch: %w", ErrOracleUnavailable)))
		assert.False(t, IsOracleUnavailableError(ErrTransactionNotFound))
	})

	t.Run("duplicate deposit", func(t *testing.T) {
		assert.True(t, IsDuplicateDepositError(fmt.Errorf("reserve: %w", ErrDuplicateDeposit)))
		assert.False(t, IsDuplicateDepositError(ErrConstraintViolation))
	})
}

package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation           = 4001
	CodeInvalidAmount        = 4002
	CodeInvalidAccountID     = 4003
	CodeInvalidTransactionID = 4004
	CodeDuplicateDeposit     = 4005
	CodeInsufficientBalance  = 4006
	CodeIdentityConflict     = 4007
	CodeInvalidTransition    = 4008
	CodeAmountMismatch       = 4009
	CodeBelowMinimum         = 4010
	CodeStaleTransaction     = 4011
	CodeTransactionFailed    = 4012
	CodeNoMatchingTransfer   = 4013
	CodeConstraintViolation  = 4014
	CodeUserNotFound         = 4040
	CodeTransactionNotFound  = 4041
	CodeAccountNotFound      = 4042
	CodeOrderNotFound        = 4043
	CodeDepositNotFound      = 4044

	// 5xxx - Server errors
	CodeInternalServer    = 5000
	CodeOracleUnavailable = 5030
)

// Base error types
var (
	// ErrValidation is returned when the request shape or a field is malformed
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAccountID is returned when an account id does not match the shard.realm.number pattern
	ErrInvalidAccountID = errors.New("invalid account id format")

	// ErrInvalidTransactionID is returned when an external transaction id cannot be parsed
	ErrInvalidTransactionID = errors.New("invalid transaction id format")

	// ErrInvalidAmount is returned when an amount is malformed or non-positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount is returned when an amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrDuplicateDeposit is returned when an external transaction id was already credited or reserved
	ErrDuplicateDeposit = errors.New("deposit with this external transaction id already exists")

	// ErrTransactionNotFound is returned when the oracle has no record of the transaction
	ErrTransactionNotFound = errors.New("transaction not found on ledger")

	// ErrAccountNotFound is returned when the oracle has no record of the account
	ErrAccountNotFound = errors.New("account not found on ledger")

	// ErrTransactionFailed is returned when the on-ledger transaction did not succeed
	ErrTransactionFailed = errors.New("transaction failed on ledger")

	// ErrNoMatchingTransfer is returned when the transaction carries no transfer of the
	// expected token to the treasury account
	ErrNoMatchingTransfer = errors.New("no matching token transfer to treasury")

	// ErrBelowMinimum is returned when the deposited amount is below the configured minimum
	ErrBelowMinimum = errors.New("amount below minimum deposit")

	// ErrAmountMismatch is returned when the deposited amount differs from the claimed amount
	ErrAmountMismatch = errors.New("amount does not match claim")

	// ErrStaleTransaction is returned when the transaction is older than the recency window
	ErrStaleTransaction = errors.New("transaction outside recency window")

	// ErrOracleUnavailable is returned when the ledger oracle times out or answers 5xx.
	// Callers may retry with backoff; every other verification error is deterministic.
	ErrOracleUnavailable = errors.New("ledger oracle unavailable")

	// ErrInsufficientBalance is returned when a debit would push the balance below zero
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrIdentityConflict is returned when supplied identifiers resolve to different users,
	// or a backfill would overwrite a populated identifier with a conflicting value
	ErrIdentityConflict = errors.New("identity conflict")

	// ErrInvalidTransition is returned on an illegal order status change
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrOrderNotFound is returned when the requested order doesn't exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrDepositNotFound is returned when the requested deposit doesn't exist
	ErrDepositNotFound = errors.New("deposit not found")

	// ErrDuplicateUser is returned when creating a user whose identifier is already taken
	ErrDuplicateUser = errors.New("user with this identifier already exists")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAccountID):
		return CodeInvalidAccountID
	case errors.Is(err, ErrInvalidTransactionID):
		return CodeInvalidTransactionID
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidRequest):
		return CodeValidation
	case errors.Is(err, ErrDuplicateDeposit):
		return CodeDuplicateDeposit
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrIdentityConflict):
		return CodeIdentityConflict
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrAmountMismatch):
		return CodeAmountMismatch
	case errors.Is(err, ErrBelowMinimum):
		return CodeBelowMinimum
	case errors.Is(err, ErrStaleTransaction):
		return CodeStaleTransaction
	case errors.Is(err, ErrTransactionFailed):
		return CodeTransactionFailed
	case errors.Is(err, ErrNoMatchingTransfer):
		return CodeNoMatchingTransfer
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrOrderNotFound):
		return CodeOrderNotFound
	case errors.Is(err, ErrDepositNotFound):
		return CodeDepositNotFound
	case errors.Is(err, ErrOracleUnavailable):
		return CodeOracleUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID      string
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %s: required %s, available %s",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// VerificationError wraps a deposit verification failure with the claim context
type VerificationError struct {
	ExternalTxID string
	Step         string
	Err          error
}

// Error implements the error interface for VerificationError
func (e *VerificationError) Error() string {
	return fmt.Sprintf("deposit verification failed for %s at %s: %v", e.ExternalTxID, e.Step, e.Err)
}

// Unwrap returns the underlying error
func (e *VerificationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *VerificationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "verification_error",
		"external_tx_id": e.ExternalTxID,
		"step":           e.Step,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewVerificationError creates a detailed verification error
func NewVerificationError(externalTxID, step string, err error) error {
	return &VerificationError{
		ExternalTxID: externalTxID,
		Step:         step,
		Err:          err,
	}
}

// IdentityConflictError reports which identifier clashed during resolution
type IdentityConflictError struct {
	Identifier string
	Conflict   string
}

// Error implements the error interface
func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("identity conflict between %s and %s", e.Identifier, e.Conflict)
}

// Is checks if the target error is an ErrIdentityConflict
func (e *IdentityConflictError) Is(target error) bool {
	return target == ErrIdentityConflict
}

// LogFields returns a map of fields for structured logging
func (e *IdentityConflictError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "identity_conflict",
		"identifier": e.Identifier,
		"conflict":   e.Conflict,
		"error_code": CodeIdentityConflict,
	}
}

// NewIdentityConflictError creates a new detailed identity conflict error
func NewIdentityConflictError(identifier, conflict string) error {
	return &IdentityConflictError{Identifier: identifier, Conflict: conflict}
}

// InvalidTransitionError reports an illegal order status change
type InvalidTransitionError struct {
	OrderCode string
	From      string
	To        string
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %s cannot transition from %s to %s", e.OrderCode, e.From, e.To)
}

// Is checks if the target error is an ErrInvalidTransition
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// LogFields returns a map of fields for structured logging
func (e *InvalidTransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "invalid_transition",
		"order_code": e.OrderCode,
		"from":       e.From,
		"to":         e.To,
		"error_code": CodeInvalidTransition,
	}
}

// NewInvalidTransitionError creates a new detailed invalid transition error
func NewInvalidTransitionError(orderCode, from, to string) error {
	return &InvalidTransitionError{OrderCode: orderCode, From: from, To: to}
}

// IsDuplicateDepositError checks if the error is a duplicate deposit error
func IsDuplicateDepositError(err error) bool {
	return errors.Is(err, ErrDuplicateDeposit)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsIdentityConflictError checks if the error is an identity conflict
func IsIdentityConflictError(err error) bool {
	return errors.Is(err, ErrIdentityConflict)
}

// IsInvalidTransitionError checks if the error is an illegal order status change
func IsInvalidTransitionError(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsOracleUnavailableError checks if the error is a transient oracle fault.
// This is the only verification error worth retrying.
func IsOracleUnavailableError(err error) bool {
	return errors.Is(err, ErrOracleUnavailable)
}

// IsValidationError checks if the error is caused by malformed caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidAccountID) ||
		errors.Is(err, ErrInvalidTransactionID) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrDepositNotFound)
}

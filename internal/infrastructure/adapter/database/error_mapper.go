package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domainErr "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	// EntityTypeUser represents the user entity
	EntityTypeUser EntityType = "user"
	// EntityTypeDeposit represents the deposit entity
	EntityTypeDeposit EntityType = "deposit"
	// EntityTypeOrder represents the order entity
	EntityTypeOrder EntityType = "order"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrNotFound
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	// Duplicate key errors. The deposits unique index is the dedup
	// guarantee, so this mapping is load bearing for idempotency.
	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		if strings.Contains(errMsg, "deposit") || strings.Contains(errMsg, "external_tx") {
			return domainErr.ErrDuplicateDeposit
		}
		if strings.Contains(errMsg, "user") {
			return domainErr.ErrDuplicateUser
		}
		return domainErr.ErrConstraintViolation

	// Constraint violations
	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return domainErr.ErrConstraintViolation

	// Transaction and locking errors
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "lock timeout"):
		return fmt.Errorf("%w: %s lost a lock conflict", domainErr.ErrDatabaseConnection, operation)

	// Connection issues
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset"):
		return domainErr.ErrDatabaseConnection

	// Timeout errors
	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrDatabaseConnection, operation)

	default:
		return domainErr.ErrInternalServer
	}
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeUser:
			return domainErr.ErrUserNotFound
		case EntityTypeDeposit:
			return domainErr.ErrDepositNotFound
		case EntityTypeOrder:
			return domainErr.ErrOrderNotFound
		default:
			return domainErr.ErrNotFound
		}
	}

	return m.MapError(err, string(entityType))
}

package persistence

import (
	"context"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
)

// DepositRepository defines persistence for deposit records. The external
// transaction id carries a durable unique constraint, which is what makes the
// dedup reservation linearizable across service instances.
type DepositRepository interface {
	// Reserve atomically claims the canonical external transaction id by
	// inserting a reserved deposit row. Insert-or-fail on uniqueness.
	//
	// Possible errors:
	// - ErrDuplicateDeposit: If the id is already reserved or confirmed
	// - ErrDatabaseConnection: If database connection fails
	Reserve(ctx context.Context, externalTxID string) (*entity.Deposit, error)

	// Release deletes a reservation so the same external id can be retried
	// later. Only reserved rows are deleted; confirmed deposits are immutable.
	Release(ctx context.Context, depositID string) error

	// Confirm persists the verified transfer details onto the reserved row
	//
	// Possible errors:
	// - ErrDepositNotFound: If the reservation no longer exists
	Confirm(ctx context.Context, deposit *entity.Deposit) error

	// GetByExternalID retrieves a deposit by canonical external transaction id
	//
	// Possible errors:
	// - ErrDepositNotFound: If no deposit with the given id exists
	GetByExternalID(ctx context.Context, externalTxID string) (*entity.Deposit, error)

	// ListByUser returns a user's confirmed deposits, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Deposit, error)
}

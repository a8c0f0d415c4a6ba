package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating operations across multiple
// repositories inside one database transaction. The deposit confirm+credit
// pair and the order create+debit pair each commit or roll back as a unit.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Users returns a user repository bound to the context's transaction,
	// or an unbound one when the context carries no transaction
	Users(ctx context.Context) UserRepository

	// Deposits returns a deposit repository bound to the context's transaction
	Deposits(ctx context.Context) DepositRepository

	// Orders returns an order repository bound to the context's transaction
	Orders(ctx context.Context) OrderRepository
}

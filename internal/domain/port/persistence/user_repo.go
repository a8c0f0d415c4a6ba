package persistence

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by internal id
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByWalletAddress retrieves a user by wallet address
	GetByWalletAddress(ctx context.Context, address string) (*entity.User, error)

	// GetByChatID retrieves a user by chat handle
	GetByChatID(ctx context.Context, chatID string) (*entity.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If one of the identifiers is already taken
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// UpdateIdentifiers persists backfilled identifiers and profile fields
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrDuplicateUser: If a backfilled identifier is already taken by another user
	UpdateIdentifiers(ctx context.Context, user *entity.User) error

	// AdjustBalance applies a signed balance change atomically and journals it.
	// The user row is locked for the duration of the mutation so the
	// precondition balance+delta >= 0 still holds at commit time; two
	// concurrent debits can never jointly overdraw the account.
	// Returns the new balance.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrInsufficientBalance: If the change would push the balance below zero
	// - ErrDatabaseConnection: If database connection fails
	AdjustBalance(ctx context.Context, userID string, delta decimal.Decimal, reason string) (decimal.Decimal, error)
}

package oracle

import (
	"context"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
)

// Oracle is the read-only external indexer reporting ledger truth. It can be
// slow, stale, or temporarily unavailable; adapters never retry or cache.
// Retry policy and freshness requirements belong to the caller.
type Oracle interface {
	// FetchTransaction looks up a transaction by external id. Both accepted
	// id spellings are normalized to the indexer's canonical form before the
	// query goes out.
	//
	// Possible errors:
	// - ErrInvalidTransactionID: If the id cannot be parsed
	// - ErrTransactionNotFound: If the indexer has no record of it
	// - ErrOracleUnavailable: On timeout or a 5xx answer
	FetchTransaction(ctx context.Context, externalTxID string) (*entity.ExternalTransaction, error)

	// FetchAccountBalance looks up an account's native and token balances
	//
	// Possible errors:
	// - ErrInvalidAccountID: If the id fails the shard.realm.number pattern
	// - ErrAccountNotFound: If the indexer has no record of the account
	// - ErrOracleUnavailable: On timeout or a 5xx answer
	FetchAccountBalance(ctx context.Context, accountID string) (*entity.AccountBalance, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionResultSuccess is the oracle result code for a committed transaction
const TransactionResultSuccess = "SUCCESS"

// TokenTransfer is one leg of an external ledger transaction as reported by
// the oracle. Amount is in raw token units (signed: negative = sender leg).
type TokenTransfer struct {
	Account string
	TokenID string
	Amount  int64
	IsToken bool
}

// ExternalTransaction is the oracle's view of a ledger transaction. It is
// ephemeral and re-fetched on every verification, never persisted.
type ExternalTransaction struct {
	ID          TransactionID
	Result      string
	Transfers   []TokenTransfer
	ConsensusAt time.Time
}

// Succeeded reports whether the transaction committed on the ledger
func (t *ExternalTransaction) Succeeded() bool {
	return t.Result == TransactionResultSuccess
}

// TransferTo finds the positive transfer of the given token into the given
// account. Returns nil when the transaction carries no such leg.
func (t *ExternalTransaction) TransferTo(account, tokenID string) *TokenTransfer {
	for i := range t.Transfers {
		tr := &t.Transfers[i]
		if tr.IsToken && tr.Account == account && tr.TokenID == tokenID && tr.Amount > 0 {
			return tr
		}
	}
	return nil
}

// Sender returns the account on the negative leg of the given token transfer,
// or empty when the oracle reported none.
func (t *ExternalTransaction) Sender(tokenID string) string {
	for i := range t.Transfers {
		tr := &t.Transfers[i]
		if tr.IsToken && tr.TokenID == tokenID && tr.Amount < 0 {
			return tr.Account
		}
	}
	return ""
}

// AccountBalance is the oracle's view of an account's holdings
type AccountBalance struct {
	AccountID     string
	NativeBalance decimal.Decimal
	TokenBalances map[string]decimal.Decimal
}

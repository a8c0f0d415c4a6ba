package deposit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy holds the verification rules a claimed deposit must satisfy.
// Everything here comes from configuration; the verifier itself is stateless.
type Policy struct {
	// TreasuryAccountID is the custodial destination address that must
	// receive the transfer
	TreasuryAccountID string

	// TokenID is the only token accepted for deposits
	TokenID string

	// TokenDecimals scales raw on-ledger units to human amounts
	TokenDecimals int32

	// MinDeposit is the smallest human-scale amount credited
	MinDeposit decimal.Decimal

	// RecencyWindow bounds how old a transaction's consensus timestamp may be
	RecencyWindow time.Duration

	// OracleRetryAttempts is the number of fetch attempts for transient
	// oracle faults. Deterministic failures are never retried.
	OracleRetryAttempts int

	// OracleRetryBackoff is the linear backoff step between attempts
	OracleRetryBackoff time.Duration
}

// DefaultPolicy returns the verification policy defaults
func DefaultPolicy() Policy {
	return Policy{
		TokenDecimals:       6,
		MinDeposit:          decimal.NewFromInt(1),
		RecencyWindow:       24 * time.Hour,
		OracleRetryAttempts: 2,
		OracleRetryBackoff:  500 * time.Millisecond,
	}
}

package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
)

// AmountTolerance is the maximum absolute difference tolerated when comparing
// monetary amounts that arrive from different sources (claimed vs observed,
// order arithmetic vs declared total).
var AmountTolerance = decimal.RequireFromString("0.01")

// ParseAmount validates and parses a string amount into a decimal.
// Empty and negative values are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, errs.ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errs.ErrInvalidAmount
	}
	if amount.IsNegative() {
		return decimal.Zero, errs.ErrNegativeAmount
	}
	return amount, nil
}

// AmountFromRaw converts raw on-ledger token units into a human-scale amount
// using the token's decimal count. 5,000,000 raw units of a 6-decimal token
// become 5.0.
func AmountFromRaw(raw int64, decimals int32) decimal.Decimal {
	return decimal.New(raw, -decimals)
}

// AmountsMatch reports whether two amounts are equal within AmountTolerance.
func AmountsMatch(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(AmountTolerance)
}

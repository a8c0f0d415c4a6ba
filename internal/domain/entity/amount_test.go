package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	t.Run("valid amount", func(t *testing.T) {
		amount, err := ParseAmount("12.50")
		require.NoError(t, err)
		assert.True(t, amount.Equal(decimal.RequireFromString("12.50")))
	})

	t.Run("trims whitespace", func(t *testing.T) {
		amount, err := ParseAmount(" 3 ")
		require.NoError(t, err)
		assert.True(t, amount.Equal(decimal.NewFromInt(3)))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseAmount("")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseAmount("12.5.0")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := ParseAmount("-1")
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestAmountFromRaw(t *testing.T) {
	tests := []struct {
		name     string
		raw      int64
		decimals int32
		want     string
	}{
		{"six decimal token", 5000000, 6, "5"},
		{"fractional result", 1234567, 6, "1.234567"},
		{"zero decimals", 42, 0, "42"},
		{"eight decimals", 100000000, 8, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountFromRaw(tt.raw, tt.decimals)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.String(), tt.want)
		})
	}
}

func TestAmountsMatch(t *testing.T) {
	a := decimal.RequireFromString("10.00")

	assert.True(t, AmountsMatch(a, decimal.RequireFromString("10.00")))
	assert.True(t, AmountsMatch(a, decimal.RequireFromString("10.01")))
	assert.True(t, AmountsMatch(a, decimal.RequireFromString("9.99")))
	assert.False(t, AmountsMatch(a, decimal.RequireFromString("10.02")))
	assert.False(t, AmountsMatch(a, decimal.RequireFromString("9.98")))
}

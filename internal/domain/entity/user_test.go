package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
)

func TestNewUser(t *testing.T) {
	fixed := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("seeded with supplied identifiers", func(t *testing.T) {
		tp := fixedTimeProvider(t, fixed)
		user, err := NewUser(Identifiers{WalletAddress: "0.0.555", Email: "a@b.co"}, ChannelWeb, tp)
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "0.0.555", user.WalletAddress)
		assert.Equal(t, "a@b.co", user.Email)
		assert.Equal(t, "user-0.0.555", user.DisplayName)
		assert.True(t, user.Balance().IsZero())
		assert.Equal(t, ChannelWeb, user.Channel)
		assert.Equal(t, fixed, user.CreatedAt)
	})

	t.Run("requires at least one identifier", func(t *testing.T) {
		tp := fixedTimeProvider(t, fixed)
		_, err := NewUser(Identifiers{}, ChannelWeb, tp)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestDeriveDisplayName(t *testing.T) {
	tests := []struct {
		name string
		ids  Identifiers
		want string
	}{
		{"wallet wins", Identifiers{WalletAddress: "0.0.555", ChatID: "chat", Email: "a@b.co"}, "user-0.0.555"},
		{"long wallet truncated to eight chars", Identifiers{WalletAddress: "0.0.123456789"}, "user-0.0.1234"},
		{"chat next", Identifiers{ChatID: "chat-99", Email: "a@b.co"}, "chat-99"},
		{"email local part", Identifiers{Email: "alice@example.com"}, "alice"},
		{"email without at sign", Identifiers{Email: "alice"}, "alice"},
		{"nothing", Identifiers{}, "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveDisplayName(tt.ids))
		})
	}
}

func TestUserBackfill(t *testing.T) {
	fixed := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("adds missing identifiers", func(t *testing.T) {
		tp := fixedTimeProvider(t, fixed)
		user, err := NewUser(Identifiers{WalletAddress: "0.0.555"}, ChannelWeb, tp)
		require.NoError(t, err)

		changed, err := user.Backfill(Identifiers{ChatID: "chat-1", Email: "a@b.co"}, tp)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "0.0.555", user.WalletAddress)
		assert.Equal(t, "chat-1", user.ChatID)
		assert.Equal(t, "a@b.co", user.Email)
	})

	t.Run("never overwrites a populated field", func(t *testing.T) {
		tp := fixedTimeProvider(t, fixed)
		user, err := NewUser(Identifiers{Email: "a@b.co"}, ChannelWeb, tp)
		require.NoError(t, err)

		_, err = user.Backfill(Identifiers{Email: "other@b.co"}, tp)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrIdentityConflict)
		assert.Equal(t, "a@b.co", user.Email)
	})

	t.Run("same values change nothing", func(t *testing.T) {
		tp := fixedTimeProvider(t, fixed)
		user, err := NewUser(Identifiers{WalletAddress: "0.0.555"}, ChannelWeb, tp)
		require.NoError(t, err)

		changed, err := user.Backfill(Identifiers{WalletAddress: "0.0.555"}, tp)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestUserCanDebit(t *testing.T) {
	fixed := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	tp := fixedTimeProvider(t, fixed)

	user, err := NewUser(Identifiers{WalletAddress: "0.0.555"}, ChannelWeb, tp)
	require.NoError(t, err)
	user.SetBalance(decimal.RequireFromString("10"), tp)

	assert.True(t, user.CanDebit(decimal.RequireFromString("10")))
	assert.True(t, user.CanDebit(decimal.RequireFromString("9.99")))
	assert.False(t, user.CanDebit(decimal.RequireFromString("10.01")))
}

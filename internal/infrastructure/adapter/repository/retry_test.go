package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	coremocks "github.com/ManishHQ/shoq-ai-sub000/mocks/port/core"
)

func newTestLogger(t *testing.T) *coremocks.MockLogger {
	logger := coremocks.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

func quickRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		RetryInterval: time.Millisecond,
		MaxInterval:   5 * time.Millisecond,
		JitterFactor:  0,
	}
}

func TestRetryOnTransientError(t *testing.T) {
	ctx := context.Background()

	t.Run("recovers after transient failures", func(t *testing.T) {
		attempts := 0
		err := RetryOnTransientError(ctx, quickRetryConfig(), func() error {
			attempts++
			if attempts < 3 {
				return errors.New("read tcp: connection reset by peer")
			}
			return nil
		}, newTestLogger(t))

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("does not retry a duplicate key violation", func(t *testing.T) {
		attempts := 0
		dup := errors.New("duplicate key value violates unique constraint \"idx_deposits_external_tx_id\"")
		err := RetryOnTransientError(ctx, quickRetryConfig(), func() error {
			attempts++
			return dup
		}, newTestLogger(t))

		assert.ErrorIs(t, err, dup)
		assert.Equal(t, 1, attempts)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		attempts := 0
		err := RetryOnTransientError(ctx, quickRetryConfig(), func() error {
			attempts++
			return errors.New("deadlock detected")
		}, newTestLogger(t))

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		attempts := 0
		err := RetryOnTransientError(cancelled, quickRetryConfig(), func() error {
			attempts++
			return errors.New("connection refused")
		}, newTestLogger(t))

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadlock", errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), true},
		{"serialization", errors.New("could not serialize access due to concurrent update"), true},
		{"connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"lock timeout", errors.New("canceling statement due to lock timeout"), true},
		{"unique violation", errors.New("duplicate key value violates unique constraint"), false},
		{"not found", errors.New("record not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransientError(tt.err))
		})
	}
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	config := RetryConfig{
		RetryInterval: 100 * time.Millisecond,
		MaxInterval:   2 * time.Second,
		JitterFactor:  0,
	}

	assert.Equal(t, 100*time.Millisecond, calculateBackoffWithJitter(0, config))
	assert.Equal(t, 200*time.Millisecond, calculateBackoffWithJitter(1, config))
	assert.Equal(t, 400*time.Millisecond, calculateBackoffWithJitter(2, config))

	// Exponential growth clamps at the configured ceiling.
	assert.Equal(t, 2*time.Second, calculateBackoffWithJitter(10, config))
}

package oracle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derr "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/logger"
)

const transactionPayload = `{
	"transactions": [
		{
			"transaction_id": "0.0.555-1000-1",
			"result": "SUCCESS",
			"consensus_timestamp": "1000.000000001",
			"transfers": [
				{"account": "0.0.555", "amount": -100000},
				{"account": "0.0.98", "amount": 100000}
			],
			"token_transfers": [
				{"token_id": "0.0.2002", "account": "0.0.555", "amount": -5000000},
				{"token_id": "0.0.2002", "account": "0.0.1001", "amount": 5000000}
			]
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	}, logger.NewNoopLogger(), nil)
	return client.(*Client)
}

func TestClient_FetchTransaction(t *testing.T) {
	t.Run("should fetch and map a token transaction", func(t *testing.T) {
		// Arrange
		var requestedPath string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(transactionPayload))
		})

		// Act
		tx, err := client.FetchTransaction(context.Background(), "0.0.555-1000-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/transactions/0.0.555-1000-1", requestedPath)
		assert.True(t, tx.Succeeded())
		assert.Equal(t, time.Unix(1000, 1).UTC(), tx.ConsensusAt)
		assert.Len(t, tx.Transfers, 4)

		leg := tx.TransferTo("0.0.1001", "0.0.2002")
		require.NotNil(t, leg)
		assert.Equal(t, int64(5000000), leg.Amount)
		assert.Equal(t, "0.0.555", tx.Sender("0.0.2002"))
	})

	t.Run("should normalize SDK style id before querying", func(t *testing.T) {
		// Arrange
		var requestedPath string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(transactionPayload))
		})

		// Act
		_, err := client.FetchTransaction(context.Background(), "0.0.555@1000.1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/transactions/0.0.555-1000-1", requestedPath)
	})

	t.Run("should return invalid id error without calling the server", func(t *testing.T) {
		// Arrange
		called := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		// Act
		_, err := client.FetchTransaction(context.Background(), "not-a-transaction")

		// Assert
		assert.ErrorIs(t, err, derr.ErrInvalidTransactionID)
		assert.False(t, called)
	})

	t.Run("should return not found on 404", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		// Act
		_, err := client.FetchTransaction(context.Background(), "0.0.555-1000-1")

		// Assert
		assert.ErrorIs(t, err, derr.ErrTransactionNotFound)
	})

	t.Run("should return not found on empty transaction list", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"transactions": []}`))
		})

		// Act
		_, err := client.FetchTransaction(context.Background(), "0.0.555-1000-1")

		// Assert
		assert.ErrorIs(t, err, derr.ErrTransactionNotFound)
	})

	t.Run("should report unavailable on server error", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		// Act
		_, err := client.FetchTransaction(context.Background(), "0.0.555-1000-1")

		// Assert
		assert.ErrorIs(t, err, derr.ErrOracleUnavailable)
	})

	t.Run("should report unavailable when the server is unreachable", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close() // Connection refused from here on

		client := NewClient(Config{
			BaseURL: server.URL,
			Timeout: 500 * time.Millisecond,
		}, logger.NewNoopLogger(), nil).(*Client)

		// Act
		_, err := client.FetchTransaction(context.Background(), "0.0.555-1000-1")

		// Assert
		assert.ErrorIs(t, err, derr.ErrOracleUnavailable)
	})
}

func TestClient_FetchAccountBalance(t *testing.T) {
	t.Run("should fetch native and token balances", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/accounts/0.0.1001", r.URL.Path)
			_, _ = w.Write([]byte(`{
				"account": "0.0.1001",
				"balance": {
					"balance": 150000000,
					"tokens": [
						{"token_id": "0.0.2002", "balance": 7500000}
					]
				}
			}`))
		})

		// Act
		balance, err := client.FetchAccountBalance(context.Background(), "0.0.1001")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "0.0.1001", balance.AccountID)
		assert.True(t, balance.NativeBalance.Equal(decimal.NewFromInt(150000000)))
		assert.True(t, balance.TokenBalances["0.0.2002"].Equal(decimal.NewFromInt(7500000)))
	})

	t.Run("should reject malformed account id", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

		// Act
		_, err := client.FetchAccountBalance(context.Background(), "0.0")

		// Assert
		assert.ErrorIs(t, err, derr.ErrInvalidAccountID)
	})

	t.Run("should return account not found on 404", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		// Act
		_, err := client.FetchAccountBalance(context.Background(), "0.0.1001")

		// Assert
		assert.ErrorIs(t, err, derr.ErrAccountNotFound)
	})
}

func TestParseConsensusTimestamp(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected time.Time
		wantErr  bool
	}{
		{"full precision", "1000.000000001", time.Unix(1000, 1).UTC(), false},
		{"short fraction", "1000.5", time.Unix(1000, 500000000).UTC(), false},
		{"no fraction", "1000", time.Unix(1000, 0).UTC(), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "abc.def", time.Time{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseConsensusTimestamp(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

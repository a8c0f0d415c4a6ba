package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	derr "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	oracleport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/oracle"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
)

const (
	transactionsEndpoint = "/api/v1/transactions"
	accountsEndpoint     = "/api/v1/accounts"
)

// Client provides typed access to a mirror node REST API.
// It implements the Oracle port with a single attempt per call, retry
// scheduling belongs to the caller.
type Client struct {
	baseURL string
	http    *http.Client
	logger  core.Logger
	metrics *metrics.Metrics
}

// Config holds mirror node client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new mirror node client.
func NewClient(cfg Config, logger core.Logger, m *metrics.Metrics) oracleport.Oracle {
	base := strings.TrimRight(cfg.BaseURL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: m,
	}
}

// transactionsResponse mirrors the REST transactions payload.
type transactionsResponse struct {
	Transactions []transactionRecord `json:"transactions"`
}

type transactionRecord struct {
	TransactionID      string           `json:"transaction_id"`
	Result             string           `json:"result"`
	ConsensusTimestamp string           `json:"consensus_timestamp"`
	Transfers          []transferRecord `json:"transfers"`
	TokenTransfers     []tokenTransfer  `json:"token_transfers"`
}

type transferRecord struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

type tokenTransfer struct {
	TokenID string `json:"token_id"`
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

// accountResponse mirrors the REST account payload.
type accountResponse struct {
	Account string `json:"account"`
	Balance struct {
		Balance int64 `json:"balance"`
		Tokens  []struct {
			TokenID string `json:"token_id"`
			Balance int64  `json:"balance"`
		} `json:"tokens"`
	} `json:"balance"`
}

// FetchTransaction retrieves a finalized transaction by its identifier.
// Possible errors:
// - ErrInvalidTransactionID: if the identifier cannot be parsed
// - ErrTransactionNotFound: if the mirror node has no such transaction
// - ErrOracleUnavailable: on network failure, timeout or 5xx responses
func (c *Client) FetchTransaction(ctx context.Context, txID string) (*entity.ExternalTransaction, error) {
	parsed, err := entity.ParseTransactionID(txID)
	if err != nil {
		return nil, err
	}

	endpoint := transactionsEndpoint + "/" + parsed.Canonical()
	var payload transactionsResponse
	if err := c.get(ctx, endpoint, transactionsEndpoint, &payload); err != nil {
		if derr.IsNotFoundError(err) {
			return nil, derr.ErrTransactionNotFound
		}
		return nil, err
	}
	if len(payload.Transactions) == 0 {
		return nil, derr.ErrTransactionNotFound
	}

	// The mirror node may return multiple records for the same identifier
	// (duplicates, child transactions). The first entry is the primary one.
	record := payload.Transactions[0]
	consensusAt, err := parseConsensusTimestamp(record.ConsensusTimestamp)
	if err != nil {
		c.logger.Warn("unparseable consensus timestamp", map[string]any{
			"transactionId": txID,
			"timestamp":     record.ConsensusTimestamp,
		})
		return nil, derr.ErrOracleUnavailable
	}

	tx := &entity.ExternalTransaction{
		ID:          parsed,
		Result:      record.Result,
		ConsensusAt: consensusAt,
	}
	for _, t := range record.Transfers {
		tx.Transfers = append(tx.Transfers, entity.TokenTransfer{
			Account: t.Account,
			Amount:  t.Amount,
		})
	}
	for _, t := range record.TokenTransfers {
		tx.Transfers = append(tx.Transfers, entity.TokenTransfer{
			Account: t.Account,
			TokenID: t.TokenID,
			Amount:  t.Amount,
			IsToken: true,
		})
	}
	return tx, nil
}

// FetchAccountBalance retrieves the current balances of an account.
// Possible errors:
// - ErrInvalidAccountID: if the identifier is malformed
// - ErrAccountNotFound: if the mirror node has no such account
// - ErrOracleUnavailable: on network failure, timeout or 5xx responses
func (c *Client) FetchAccountBalance(ctx context.Context, accountID string) (*entity.AccountBalance, error) {
	if err := entity.ValidateAccountID(accountID); err != nil {
		return nil, err
	}

	endpoint := accountsEndpoint + "/" + accountID
	var payload accountResponse
	if err := c.get(ctx, endpoint, accountsEndpoint, &payload); err != nil {
		if derr.IsNotFoundError(err) {
			return nil, derr.ErrAccountNotFound
		}
		return nil, err
	}

	// Balances stay in raw ledger units, scaling by token decimals is the
	// caller's concern.
	balance := &entity.AccountBalance{
		AccountID:     accountID,
		NativeBalance: decimal.NewFromInt(payload.Balance.Balance),
		TokenBalances: make(map[string]decimal.Decimal, len(payload.Balance.Tokens)),
	}
	for _, t := range payload.Balance.Tokens {
		balance.TokenBalances[t.TokenID] = decimal.NewFromInt(t.Balance)
	}
	return balance, nil
}

// get performs a single GET request against the mirror node and decodes
// the JSON response into dest. metricEndpoint is the label used for
// metrics so that path parameters do not explode cardinality.
func (c *Client) get(ctx context.Context, endpoint, metricEndpoint string, dest any) error {
	reqURL := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.OracleRequests.WithLabelValues(metricEndpoint, "error").Inc()
		}
		c.logger.Warn("mirror node request failed", map[string]any{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return derr.ErrOracleUnavailable
	}
	defer func() {
		_ = res.Body.Close()
	}()

	duration := time.Since(start).Seconds()
	statusLabel := strconv.Itoa(res.StatusCode)
	if c.metrics != nil {
		c.metrics.OracleRequests.WithLabelValues(metricEndpoint, statusLabel).Inc()
		c.metrics.OracleLatency.WithLabelValues(metricEndpoint, statusLabel).Observe(duration)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return derr.ErrOracleUnavailable
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return derr.ErrNotFound
	case res.StatusCode >= 500:
		c.logger.Warn("mirror node server error", map[string]any{
			"endpoint": endpoint,
			"status":   res.StatusCode,
		})
		return derr.ErrOracleUnavailable
	case res.StatusCode >= 400:
		return fmt.Errorf("%w: mirror node status %d", derr.ErrValidation, res.StatusCode)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode mirror node response: %w", err)
	}
	return nil
}

// parseConsensusTimestamp converts a "seconds.nanoseconds" string to time.Time.
func parseConsensusTimestamp(raw string) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ".", 2)
	if parts[0] == "" {
		return time.Time{}, fmt.Errorf("empty consensus timestamp")
	}
	seconds, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid consensus seconds %q: %w", raw, err)
	}
	var nanos int64
	if len(parts) == 2 && parts[1] != "" {
		// Nanoseconds are zero padded on the wire, right pad short values
		frac := parts[1]
		if len(frac) > 9 {
			frac = frac[:9]
		}
		for len(frac) < 9 {
			frac += "0"
		}
		nanos, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid consensus nanos %q: %w", raw, err)
		}
	}
	return time.Unix(seconds, nanos).UTC(), nil
}

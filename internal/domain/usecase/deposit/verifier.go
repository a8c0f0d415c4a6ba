package deposit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	oracleport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/oracle"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/persistence"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/balance"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/identity"
)

// Claim is an externally-reported deposit awaiting verification
type Claim struct {
	ExternalTxID   string
	Identifiers    entity.Identifiers
	Channel        entity.Channel
	ExpectedAmount *decimal.Decimal
}

// Verifier validates deposit claims against the ledger oracle and credits the
// balance ledger exactly once per external transaction id. Each policy gate is
// hard: the first failure wins and, once the dedup reservation is taken, any
// failure releases it so a legitimate retry with the same id stays possible.
type Verifier struct {
	oracle       oracleport.Oracle
	uow          persistence.UnitOfWork
	resolver     *identity.Resolver
	ledger       *balance.Ledger
	policy       Policy
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewVerifier creates a new deposit verifier
func NewVerifier(
	oracle oracleport.Oracle,
	uow persistence.UnitOfWork,
	resolver *identity.Resolver,
	ledger *balance.Ledger,
	policy Policy,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Verifier {
	return &Verifier{
		oracle:       oracle,
		uow:          uow,
		resolver:     resolver,
		ledger:       ledger,
		policy:       policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Verify runs the full gate sequence for a deposit claim:
// id format, dedup reservation, oracle fetch, result code, matching treasury
// transfer, amount policy, recency, identity resolution, then the confirm and
// credit committed as one database transaction.
func (v *Verifier) Verify(ctx context.Context, claim Claim) (*entity.Deposit, error) {
	txID, err := entity.ParseTransactionID(claim.ExternalTxID)
	if err != nil {
		return nil, errs.NewVerificationError(claim.ExternalTxID, "parse", err)
	}
	canonical := txID.Canonical()

	// Claim the id before any slow work. The unique constraint behind
	// Reserve is the sole mutual-exclusion point for double-credit races.
	reservation, err := v.uow.Deposits(ctx).Reserve(ctx, canonical)
	if err != nil {
		if errs.IsDuplicateDepositError(err) {
			v.logger.Info("Duplicate deposit claim rejected", map[string]any{
				"external_tx_id": canonical,
			})
		}
		return nil, errs.NewVerificationError(canonical, "reserve", err)
	}

	deposit, err := v.verifyReserved(ctx, claim, txID, reservation)
	if err != nil {
		v.release(ctx, reservation)
		return nil, err
	}
	return deposit, nil
}

// verifyReserved runs every gate after the dedup reservation. The caller
// releases the reservation on any error.
func (v *Verifier) verifyReserved(
	ctx context.Context,
	claim Claim,
	txID entity.TransactionID,
	reservation *entity.Deposit,
) (*entity.Deposit, error) {
	canonical := txID.Canonical()

	record, err := v.fetchWithRetry(ctx, canonical)
	if err != nil {
		return nil, errs.NewVerificationError(canonical, "fetch", err)
	}

	if !record.Succeeded() {
		return nil, errs.NewVerificationError(canonical, "result",
			fmt.Errorf("%w: result code %s", errs.ErrTransactionFailed, record.Result))
	}

	transfer := record.TransferTo(v.policy.TreasuryAccountID, v.policy.TokenID)
	if transfer == nil {
		return nil, errs.NewVerificationError(canonical, "transfer", errs.ErrNoMatchingTransfer)
	}

	amount := entity.AmountFromRaw(transfer.Amount, v.policy.TokenDecimals)
	if amount.LessThan(v.policy.MinDeposit) {
		return nil, errs.NewVerificationError(canonical, "amount",
			fmt.Errorf("%w: got %s, minimum %s", errs.ErrBelowMinimum, amount.String(), v.policy.MinDeposit.String()))
	}
	if claim.ExpectedAmount != nil && !entity.AmountsMatch(amount, *claim.ExpectedAmount) {
		return nil, errs.NewVerificationError(canonical, "amount",
			fmt.Errorf("%w: observed %s, claimed %s", errs.ErrAmountMismatch, amount.String(), claim.ExpectedAmount.String()))
	}

	age := v.timeProvider.Now().Sub(record.ConsensusAt)
	if age > v.policy.RecencyWindow || age < 0 {
		return nil, errs.NewVerificationError(canonical, "recency",
			fmt.Errorf("%w: consensus at %s", errs.ErrStaleTransaction, record.ConsensusAt.Format("2006-01-02T15:04:05Z07:00")))
	}

	user, _, err := v.resolver.Resolve(ctx, claim.Identifiers, &identity.Profile{Channel: claim.Channel})
	if err != nil {
		return nil, errs.NewVerificationError(canonical, "identity", err)
	}

	// Confirm the deposit and credit the balance as one unit. A crash
	// between the two writes leaves only a reserved row behind, never a
	// confirmed-but-uncredited deposit.
	reservation.Confirm(user.ID, amount, v.policy.TokenID, record.Sender(v.policy.TokenID), record.ConsensusAt, v.timeProvider.Now())

	txCtx, err := v.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin credit transaction: %w", err)
	}

	if err := v.uow.Deposits(txCtx).Confirm(txCtx, reservation); err != nil {
		_ = v.uow.Rollback(txCtx)
		return nil, errs.NewVerificationError(canonical, "persist", err)
	}
	if _, err := v.ledger.Credit(txCtx, user.ID, amount, reservation.CreditReason()); err != nil {
		_ = v.uow.Rollback(txCtx)
		return nil, errs.NewVerificationError(canonical, "credit", err)
	}
	if err := v.uow.Commit(txCtx); err != nil {
		return nil, errs.NewVerificationError(canonical, "commit", err)
	}

	v.logger.Info("Deposit verified and credited", map[string]any{
		"external_tx_id": canonical,
		"user_id":        user.ID,
		"amount":         amount.String(),
		"token_id":       v.policy.TokenID,
	})
	return reservation, nil
}

// fetchWithRetry centralizes the oracle retry policy: bounded attempts with
// linear backoff, and only for transient unavailability. Deterministic
// outcomes (not found, failed result) return immediately.
func (v *Verifier) fetchWithRetry(ctx context.Context, canonical string) (*entity.ExternalTransaction, error) {
	attempts := v.policy.OracleRetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		record, err := v.oracle.FetchTransaction(ctx, canonical)
		if err == nil {
			return record, nil
		}
		lastErr = err

		if !errs.IsOracleUnavailableError(err) {
			return nil, err
		}
		if attempt == attempts {
			break
		}

		backoff := coreport.Duration(time.Duration(attempt) * v.policy.OracleRetryBackoff)
		v.logger.Warn("Oracle unavailable, retrying fetch", map[string]any{
			"external_tx_id": canonical,
			"attempt":        attempt,
			"of":             attempts,
			"backoff":        backoff.Std().String(),
		})
		v.timeProvider.Sleep(backoff)
	}
	return nil, lastErr
}

// release rolls back a dedup reservation so the external id can be retried.
// Release failures are logged, not propagated: the caller's error matters
// more, and a stranded reservation surfaces in the reconciliation sweep.
func (v *Verifier) release(ctx context.Context, reservation *entity.Deposit) {
	if err := v.uow.Deposits(ctx).Release(ctx, reservation.ID); err != nil {
		v.logger.Error("Failed to release deposit reservation", map[string]any{
			"deposit_id":     reservation.ID,
			"external_tx_id": reservation.ExternalTxID,
			"error":          err.Error(),
		})
	}
}

package deposit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/balance"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/identity"
	coremocks "github.com/ManishHQ/shoq-ai-sub000/mocks/port/core"
	oraclemocks "github.com/ManishHQ/shoq-ai-sub000/mocks/port/oracle"
	persistencemocks "github.com/ManishHQ/shoq-ai-sub000/mocks/port/persistence"
)

const (
	testTreasury  = "0.0.9000"
	testToken     = "0.0.7777"
	testCanonical = "0.0.555-1000-1"
)

type verifierFixture struct {
	verifier *Verifier
	oracle   *oraclemocks.MockOracle
	uow      *persistencemocks.MockUnitOfWork
	deposits *persistencemocks.MockDepositRepository
	users    *persistencemocks.MockUserRepository
	tp       *coremocks.MockTimeProvider
	now      time.Time
}

func newVerifierFixture(t *testing.T) *verifierFixture {
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

	logger := coremocks.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	tp := coremocks.NewMockTimeProvider(t)
	tp.EXPECT().Now().Return(now).Maybe()

	mockOracle := oraclemocks.NewMockOracle(t)
	mockUow := persistencemocks.NewMockUnitOfWork(t)
	mockDeposits := persistencemocks.NewMockDepositRepository(t)
	mockUsers := persistencemocks.NewMockUserRepository(t)

	mockUow.EXPECT().Deposits(mock.Anything).Return(mockDeposits).Maybe()
	mockUow.EXPECT().Users(mock.Anything).Return(mockUsers).Maybe()

	policy := Policy{
		TreasuryAccountID:   testTreasury,
		TokenID:             testToken,
		TokenDecimals:       6,
		MinDeposit:          decimal.NewFromInt(1),
		RecencyWindow:       24 * time.Hour,
		OracleRetryAttempts: 3,
		OracleRetryBackoff:  100 * time.Millisecond,
	}

	resolver := identity.NewResolver(mockUsers, tp, logger)
	ledger := balance.NewLedger(mockUow, logger)

	return &verifierFixture{
		verifier: NewVerifier(mockOracle, mockUow, resolver, ledger, policy, tp, logger),
		oracle:   mockOracle,
		uow:      mockUow,
		deposits: mockDeposits,
		users:    mockUsers,
		tp:       tp,
		now:      now,
	}
}

// successfulRecord builds an oracle record with a raw 5,000,000 unit transfer
// into the treasury, one minute old.
func (f *verifierFixture) successfulRecord(t *testing.T) *entity.ExternalTransaction {
	txID, err := entity.ParseTransactionID(testCanonical)
	require.NoError(t, err)
	return &entity.ExternalTransaction{
		ID:     txID,
		Result: entity.TransactionResultSuccess,
		Transfers: []entity.TokenTransfer{
			{Account: "0.0.555", TokenID: testToken, Amount: -5000000, IsToken: true},
			{Account: testTreasury, TokenID: testToken, Amount: 5000000, IsToken: true},
		},
		ConsensusAt: f.now.Add(-time.Minute),
	}
}

func (f *verifierFixture) existingUser(t *testing.T) *entity.User {
	user, err := entity.NewUser(entity.Identifiers{WalletAddress: "0.0.555"}, entity.ChannelWeb, f.tp)
	require.NoError(t, err)
	return user
}

func (f *verifierFixture) expectReservation() *entity.Deposit {
	reservation := entity.NewReservation(testCanonical, f.now)
	f.deposits.EXPECT().Reserve(mock.Anything, testCanonical).Return(reservation, nil).Once()
	return reservation
}

func (f *verifierFixture) expectRelease(reservation *entity.Deposit) {
	f.deposits.EXPECT().Release(mock.Anything, reservation.ID).Return(nil).Once()
}

func testClaim() Claim {
	return Claim{
		ExternalTxID: testCanonical,
		Identifiers:  entity.Identifiers{WalletAddress: "0.0.555"},
		Channel:      entity.ChannelWeb,
	}
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies and credits a valid claim", func(t *testing.T) {
		f := newVerifierFixture(t)
		user := f.existingUser(t)
		reservation := f.expectReservation()

		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
			Return(f.successfulRecord(t), nil).Once()
		f.users.EXPECT().GetByWalletAddress(mock.Anything, "0.0.555").Return(user, nil).Once()
		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.deposits.EXPECT().Confirm(mock.Anything, reservation).Return(nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, user.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
				return d.Equal(decimal.NewFromInt(5))
			}), "deposit:"+testCanonical).
			Return(decimal.NewFromInt(5), nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		deposit, err := f.verifier.Verify(ctx, testClaim())
		require.NoError(t, err)
		assert.Equal(t, entity.DepositConfirmed, deposit.Status)
		assert.Equal(t, user.ID, deposit.UserID)
		assert.True(t, deposit.Amount.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, "0.0.555", deposit.SenderAddress)
		assert.Equal(t, testToken, deposit.TokenID)
		require.NotNil(t, deposit.ConfirmedAt)
	})

	t.Run("accepts the at-form transaction id spelling", func(t *testing.T) {
		f := newVerifierFixture(t)
		user := f.existingUser(t)
		reservation := f.expectReservation()

		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
			Return(f.successfulRecord(t), nil).Once()
		f.users.EXPECT().GetByWalletAddress(mock.Anything, "0.0.555").Return(user, nil).Once()
		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.deposits.EXPECT().Confirm(mock.Anything, reservation).Return(nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, user.ID, mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(5), nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		claim := testClaim()
		claim.ExternalTxID = "0.0.555@1000.1"

		deposit, err := f.verifier.Verify(ctx, claim)
		require.NoError(t, err)
		assert.Equal(t, testCanonical, deposit.ExternalTxID)
	})

	t.Run("rejects a malformed transaction id before reserving", func(t *testing.T) {
		f := newVerifierFixture(t)

		claim := testClaim()
		claim.ExternalTxID = "not-a-transaction-id"

		_, err := f.verifier.Verify(ctx, claim)
		assert.ErrorIs(t, err, errs.ErrInvalidTransactionID)
	})

	t.Run("rejects a duplicate claim without releasing", func(t *testing.T) {
		f := newVerifierFixture(t)
		f.deposits.EXPECT().Reserve(mock.Anything, testCanonical).
			Return(nil, errs.ErrDuplicateDeposit).Once()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrDuplicateDeposit)
	})

	t.Run("releases the reservation when the transaction failed on ledger", func(t *testing.T) {
		f := newVerifierFixture(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		record := f.successfulRecord(t)
		record.Result = "INSUFFICIENT_PAYER_BALANCE"
		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).Return(record, nil).Once()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrTransactionFailed)
	})

	t.Run("rejects when no transfer reaches the treasury", func(t *testing.T) {
		f := newVerifierFixture(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		record := f.successfulRecord(t)
		record.Transfers = []entity.TokenTransfer{
			{Account: "0.0.111", TokenID: testToken, Amount: 5000000, IsToken: true},
		}
		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).Return(record, nil).Once()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrNoMatchingTransfer)
	})

	t.Run("rejects a transfer of the wrong token", func(t *testing.T) {
		f := newVerifierFixture(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		record := f.successfulRecord(t)
		record.Transfers = []entity.TokenTransfer{
			{Account: testTreasury, TokenID: "0.0.8888", Amount: 5000000, IsToken: true},
		}
		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).Return(record, nil).Once()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrNoMatchingTransfer)
	})

	t.Run("rejects an amount below the minimum", func(t *testing.T) {
		f := newVerifierFixture(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		record := f.successfulRecord(t)
		record.Transfers[1].Amount = 500000 // 0.5 after scaling
		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).Return(record, nil).Once()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrBelowMinimum)
	})

	t.Run("rejects when the observed amount misses the claimed one", func(t *testing.T) {
		f := newVerifierFixture(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
			Return(f.successfulRecord(t), nil).Once()

		expected := decimal.NewFromInt(7)
		claim := testClaim()
		claim.ExpectedAmount = &expected

		_, err := f.verifier.Verify(ctx, claim)
		assert.ErrorIs(t, err, errs.ErrAmountMismatch)
	})

	t.Run("tolerates sub-cent drift against the claimed amount", func(t *testing.T) {
		f := newVerifierFixture(t)
		user := f.existingUser(t)
		reservation := f.expectReservation()

		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
			Return(f.successfulRecord(t), nil).Once()
		f.users.EXPECT().GetByWalletAddress(mock.Anything, "0.0.555").Return(user, nil).Once()
		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.deposits.EXPECT().Confirm(mock.Anything, reservation).Return(nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, user.ID, mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(5), nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		expected := decimal.RequireFromString("5.009")
		claim := testClaim()
		claim.ExpectedAmount = &expected

		_, err := f.verifier.Verify(ctx, claim)
		assert.NoError(t, err)
	})

	t.Run("rejects a transaction older than the recency window", func(t *testing.T) {
		f := newVerifierFixture(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		record := f.successfulRecord(t)
		record.ConsensusAt = f.now.Add(-25 * time.Hour)
		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).Return(record, nil).Once()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrStaleTransaction)
	})

	t.Run("rejects a consensus timestamp from the future", func(t *testing.T) {
		f := newVerifierFixture(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		record := f.successfulRecord(t)
		record.ConsensusAt = f.now.Add(time.Hour)
		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).Return(record, nil).Once()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrStaleTransaction)
	})

	t.Run("rolls back and releases when the credit fails", func(t *testing.T) {
		f := newVerifierFixture(t)
		user := f.existingUser(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
			Return(f.successfulRecord(t), nil).Once()
		f.users.EXPECT().GetByWalletAddress(mock.Anything, "0.0.555").Return(user, nil).Once()
		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.deposits.EXPECT().Confirm(mock.Anything, reservation).Return(nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, user.ID, mock.Anything, mock.Anything).
			Return(decimal.Zero, errs.ErrTransactionFailed).Once()
		f.uow.EXPECT().Rollback(mock.Anything).Return(nil).Once()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrTransactionFailed)
	})
}

func TestVerifyOracleRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries transient oracle faults with linear backoff", func(t *testing.T) {
		f := newVerifierFixture(t)
		user := f.existingUser(t)
		reservation := f.expectReservation()

		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
			Return(nil, errs.ErrOracleUnavailable).Twice()
		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
			Return(f.successfulRecord(t), nil).Once()
		f.tp.EXPECT().Sleep(mock.Anything).Twice()

		f.users.EXPECT().GetByWalletAddress(mock.Anything, "0.0.555").Return(user, nil).Once()
		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.deposits.EXPECT().Confirm(mock.Anything, reservation).Return(nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, user.ID, mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(5), nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		deposit, err := f.verifier.Verify(ctx, testClaim())
		require.NoError(t, err)
		assert.Equal(t, entity.DepositConfirmed, deposit.Status)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		f := newVerifierFixture(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
			Return(nil, errs.ErrOracleUnavailable).Times(3)
		f.tp.EXPECT().Sleep(mock.Anything).Twice()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrOracleUnavailable)
	})

	t.Run("does not retry a deterministic miss", func(t *testing.T) {
		f := newVerifierFixture(t)
		reservation := f.expectReservation()
		f.expectRelease(reservation)

		f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
			Return(nil, errs.ErrTransactionNotFound).Once()

		_, err := f.verifier.Verify(ctx, testClaim())
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

// fakeDepositStore is a mutex-guarded in-memory DepositRepository whose
// Reserve enforces the same uniqueness as the database constraint, which
// makes it usable for concurrency tests.
type fakeDepositStore struct {
	mu       sync.Mutex
	reserved map[string]*entity.Deposit
	now      time.Time
}

func (f *fakeDepositStore) Reserve(ctx context.Context, externalTxID string) (*entity.Deposit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.reserved[externalTxID]; taken {
		return nil, errs.ErrDuplicateDeposit
	}
	reservation := entity.NewReservation(externalTxID, f.now)
	f.reserved[externalTxID] = reservation
	return reservation, nil
}

func (f *fakeDepositStore) Release(ctx context.Context, depositID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for txID, d := range f.reserved {
		if d.ID == depositID {
			delete(f.reserved, txID)
			return nil
		}
	}
	return errs.ErrDepositNotFound
}

func (f *fakeDepositStore) Confirm(ctx context.Context, deposit *entity.Deposit) error { return nil }

func (f *fakeDepositStore) GetByExternalID(ctx context.Context, externalTxID string) (*entity.Deposit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.reserved[externalTxID]; ok {
		return d, nil
	}
	return nil, errs.ErrDepositNotFound
}

func (f *fakeDepositStore) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Deposit, error) {
	return nil, nil
}

func TestVerifyParallelClaims(t *testing.T) {
	ctx := context.Background()
	f := newVerifierFixture(t)
	user := f.existingUser(t)

	// Swap the mock deposit repository for a fake whose Reserve is the
	// single mutual-exclusion point, exactly like the unique constraint.
	store := &fakeDepositStore{reserved: make(map[string]*entity.Deposit), now: f.now}
	f.uow.ExpectedCalls = nil
	f.uow.EXPECT().Deposits(mock.Anything).Return(store).Maybe()
	f.uow.EXPECT().Users(mock.Anything).Return(f.users).Maybe()
	f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Maybe()
	f.uow.EXPECT().Commit(mock.Anything).Return(nil).Maybe()

	f.oracle.EXPECT().FetchTransaction(mock.Anything, testCanonical).
		Return(f.successfulRecord(t), nil).Maybe()
	f.users.EXPECT().GetByWalletAddress(mock.Anything, "0.0.555").Return(user, nil).Maybe()
	f.users.EXPECT().
		AdjustBalance(mock.Anything, user.ID, mock.Anything, mock.Anything).
		Return(decimal.NewFromInt(5), nil).Maybe()

	const claimants = 8
	var wg sync.WaitGroup
	var credited, duplicates atomic.Int64
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.verifier.Verify(ctx, testClaim())
			switch {
			case err == nil:
				credited.Add(1)
			case errs.IsDuplicateDepositError(err):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected verification error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), credited.Load())
	assert.Equal(t, int64(claimants-1), duplicates.Load())
}

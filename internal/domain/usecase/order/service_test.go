package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/balance"
	coremocks "github.com/ManishHQ/shoq-ai-sub000/mocks/port/core"
	persistencemocks "github.com/ManishHQ/shoq-ai-sub000/mocks/port/persistence"
)

type serviceFixture struct {
	service *Service
	uow     *persistencemocks.MockUnitOfWork
	orders  *persistencemocks.MockOrderRepository
	users   *persistencemocks.MockUserRepository
	now     time.Time
}

func newServiceFixture(t *testing.T) *serviceFixture {
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

	logger := coremocks.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	tp := coremocks.NewMockTimeProvider(t)
	tp.EXPECT().Now().Return(now).Maybe()

	mockUow := persistencemocks.NewMockUnitOfWork(t)
	mockOrders := persistencemocks.NewMockOrderRepository(t)
	mockUsers := persistencemocks.NewMockUserRepository(t)
	mockUow.EXPECT().Orders(mock.Anything).Return(mockOrders).Maybe()
	mockUow.EXPECT().Users(mock.Anything).Return(mockUsers).Maybe()

	ledger := balance.NewLedger(mockUow, logger)

	return &serviceFixture{
		service: NewService(mockUow, ledger, tp, logger),
		uow:     mockUow,
		orders:  mockOrders,
		users:   mockUsers,
		now:     now,
	}
}

func testCreateInput(verified bool) CreateInput {
	return CreateInput{
		Items: []entity.LineItem{
			{ProductRef: "sku-1", Name: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(20)},
		},
		ShippingAddress: entity.ShippingAddress{Line1: "1 Main St", City: "Kathmandu", Country: "NP"},
		Payment: entity.Payment{
			Method:   entity.PaymentBalance,
			Amount:   decimal.NewFromInt(45),
			Currency: "USD",
			Verified: verified,
		},
		Subtotal: decimal.NewFromInt(40),
		Shipping: decimal.NewFromInt(5),
		Tax:      decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.NewFromInt(45),
	}
}

func (f *serviceFixture) storedOrder(t *testing.T, status entity.OrderStatus) *entity.Order {
	tp := coremocks.NewMockTimeProvider(t)
	tp.EXPECT().Now().Return(f.now).Maybe()

	in := testCreateInput(false)
	ord, err := entity.NewOrder("user-1", in.Items, in.ShippingAddress, in.Payment,
		in.Subtotal, in.Shipping, in.Tax, in.Discount, in.Total, tp)
	require.NoError(t, err)
	ord.Status = status
	return ord
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("pending order moves no money", func(t *testing.T) {
		f := newServiceFixture(t)
		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		ord, err := f.service.Create(ctx, "user-1", testCreateInput(false))
		require.NoError(t, err)
		assert.Equal(t, entity.OrderPending, ord.Status)
		assert.Regexp(t, `^SHQ-\d{8}-[A-Z0-9]{6}$`, ord.Code)
	})

	t.Run("verified payment confirms and debits in one transaction", func(t *testing.T) {
		f := newServiceFixture(t)
		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().Create(mock.Anything, mock.MatchedBy(func(ord *entity.Order) bool {
			return ord.Status == entity.OrderConfirmed
		})).Return(nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", decimal.NewFromInt(-45), mock.MatchedBy(func(reason string) bool {
				return len(reason) > 6 && reason[:6] == "order:"
			})).
			Return(decimal.NewFromInt(55), nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		ord, err := f.service.Create(ctx, "user-1", testCreateInput(true))
		require.NoError(t, err)
		assert.Equal(t, entity.OrderConfirmed, ord.Status)
	})

	t.Run("insufficient balance rolls the order back", func(t *testing.T) {
		f := newServiceFixture(t)
		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", mock.Anything, mock.Anything).
			Return(decimal.Zero, errs.NewInsufficientBalanceError("user-1", "45", "10")).Once()
		f.uow.EXPECT().Rollback(mock.Anything).Return(nil).Once()

		_, err := f.service.Create(ctx, "user-1", testCreateInput(true))
		assert.True(t, errs.IsInsufficientBalanceError(err))
	})

	t.Run("broken pricing arithmetic never reaches the database", func(t *testing.T) {
		f := newServiceFixture(t)

		in := testCreateInput(false)
		in.Total = decimal.NewFromInt(99)

		_, err := f.service.Create(ctx, "user-1", in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestServiceAdvanceStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("advances along the state machine", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderConfirmed)

		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.orders.EXPECT().UpdateStatus(mock.Anything, ord, mock.MatchedBy(func(event *entity.OrderEvent) bool {
			return event.FromStatus == entity.OrderConfirmed && event.ToStatus == entity.OrderProcessing
		})).Return(nil).Once()

		updated, err := f.service.AdvanceStatus(ctx, ord.Code, entity.OrderProcessing)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderProcessing, updated.Status)
	})

	t.Run("rejects an illegal transition", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderDelivered)

		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()

		_, err := f.service.AdvanceStatus(ctx, ord.Code, entity.OrderProcessing)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("routes confirmation through Confirm", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderPending)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", decimal.NewFromInt(-45), "order:"+ord.Code).
			Return(decimal.NewFromInt(55), nil).Once()
		f.orders.EXPECT().UpdateStatus(mock.Anything, ord, mock.Anything).Return(nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		updated, err := f.service.AdvanceStatus(ctx, ord.Code, entity.OrderConfirmed)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderConfirmed, updated.Status)
	})

	t.Run("routes cancellation through Cancel", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderPending)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.orders.EXPECT().UpdateStatus(mock.Anything, ord, mock.Anything).Return(nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		updated, err := f.service.AdvanceStatus(ctx, ord.Code, entity.OrderCancelled)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCancelled, updated.Status)
	})

	t.Run("unknown order propagates not found", func(t *testing.T) {
		f := newServiceFixture(t)
		f.orders.EXPECT().GetByCode(mock.Anything, "SHQ-20250829-MISSIN").Return(nil, errs.ErrOrderNotFound).Once()

		_, err := f.service.AdvanceStatus(ctx, "SHQ-20250829-MISSIN", entity.OrderProcessing)
		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
	})
}

func TestServiceConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("insufficient balance leaves the order unconfirmed", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderPending)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", mock.Anything, mock.Anything).
			Return(decimal.Zero, errs.NewInsufficientBalanceError("user-1", "45", "0")).Once()
		f.uow.EXPECT().Rollback(mock.Anything).Return(nil).Once()

		_, err := f.service.Confirm(ctx, ord.Code)
		assert.True(t, errs.IsInsufficientBalanceError(err))
	})

	t.Run("confirming then cancelling nets to zero", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderPending)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Twice()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Twice()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", decimal.NewFromInt(-45), "order:"+ord.Code).
			Return(decimal.NewFromInt(5), nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", decimal.NewFromInt(45), "refund:"+ord.Code).
			Return(decimal.NewFromInt(50), nil).Once()
		f.orders.EXPECT().UpdateStatus(mock.Anything, ord, mock.Anything).Return(nil).Twice()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Twice()

		_, err := f.service.AdvanceStatus(ctx, ord.Code, entity.OrderConfirmed)
		require.NoError(t, err)

		cancelled, err := f.service.Cancel(ctx, ord.Code)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCancelled, cancelled.Status)
	})

	t.Run("only pending orders can be confirmed", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderShipped)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.uow.EXPECT().Rollback(mock.Anything).Return(nil).Once()

		_, err := f.service.Confirm(ctx, ord.Code)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("status write failure rolls the debit back", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderPending)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(5), nil).Once()
		f.orders.EXPECT().UpdateStatus(mock.Anything, ord, mock.Anything).Return(errs.ErrDatabaseConnection).Once()
		f.uow.EXPECT().Rollback(mock.Anything).Return(nil).Once()

		_, err := f.service.Confirm(ctx, ord.Code)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestServiceCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelling a confirmed order refunds the total", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderConfirmed)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", decimal.NewFromInt(45), "refund:"+ord.Code).
			Return(decimal.NewFromInt(100), nil).Once()
		f.orders.EXPECT().UpdateStatus(mock.Anything, ord, mock.Anything).Return(nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		cancelled, err := f.service.Cancel(ctx, ord.Code)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCancelled, cancelled.Status)
	})

	t.Run("cancelling a processing order refunds the total", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderProcessing)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", decimal.NewFromInt(45), "refund:"+ord.Code).
			Return(decimal.NewFromInt(100), nil).Once()
		f.orders.EXPECT().UpdateStatus(mock.Anything, ord, mock.Anything).Return(nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		_, err := f.service.Cancel(ctx, ord.Code)
		assert.NoError(t, err)
	})

	t.Run("cancelling a pending order moves no money", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderPending)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.orders.EXPECT().UpdateStatus(mock.Anything, ord, mock.Anything).Return(nil).Once()
		f.uow.EXPECT().Commit(mock.Anything).Return(nil).Once()

		cancelled, err := f.service.Cancel(ctx, ord.Code)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCancelled, cancelled.Status)
	})

	t.Run("shipped orders can no longer be cancelled", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderShipped)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.uow.EXPECT().Rollback(mock.Anything).Return(nil).Once()

		_, err := f.service.Cancel(ctx, ord.Code)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("losing the status race rolls the refund back", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderConfirmed)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", decimal.NewFromInt(45), "refund:"+ord.Code).
			Return(decimal.NewFromInt(100), nil).Once()
		f.orders.EXPECT().UpdateStatus(mock.Anything, ord, mock.Anything).
			Return(errs.NewInvalidTransitionError(ord.Code, "confirmed", "cancelled")).Once()
		f.uow.EXPECT().Rollback(mock.Anything).Return(nil).Once()

		_, err := f.service.Cancel(ctx, ord.Code)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("refund failure rolls everything back", func(t *testing.T) {
		f := newServiceFixture(t)
		ord := f.storedOrder(t, entity.OrderConfirmed)

		f.uow.EXPECT().Begin(mock.Anything).Return(ctx, nil).Once()
		f.orders.EXPECT().GetByCode(mock.Anything, ord.Code).Return(ord, nil).Once()
		f.users.EXPECT().
			AdjustBalance(mock.Anything, "user-1", mock.Anything, mock.Anything).
			Return(decimal.Zero, errs.ErrDatabaseConnection).Once()
		f.uow.EXPECT().Rollback(mock.Anything).Return(nil).Once()

		_, err := f.service.Cancel(ctx, ord.Code)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatus(valid), status)
	}

	_, err := ParseStatus("refunded")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coremocks "github.com/ManishHQ/shoq-ai-sub000/mocks/port/core"
)

func fixedTimeProvider(t *testing.T, fixed time.Time) *coremocks.MockTimeProvider {
	tp := coremocks.NewMockTimeProvider(t)
	tp.EXPECT().Now().Return(fixed).Maybe()
	return tp
}

func validOrderInput() ([]LineItem, ShippingAddress, Payment) {
	items := []LineItem{
		{ProductRef: "sku-1", Name: "Widget", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50")},
	}
	address := ShippingAddress{Line1: "1 Main St", City: "Nairobi", Country: "KE"}
	payment := Payment{Method: PaymentBalance}
	return items, address, payment
}

func TestNewOrder(t *testing.T) {
	fixed := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	subtotal := decimal.RequireFromString("9.00")
	shipping := decimal.RequireFromString("2.00")
	tax := decimal.RequireFromString("1.00")
	discount := decimal.RequireFromString("2.00")
	total := decimal.RequireFromString("10.00")

	t.Run("unverified payment starts pending", func(t *testing.T) {
		items, address, payment := validOrderInput()
		tp := fixedTimeProvider(t, fixed)

		ord, err := NewOrder("user-1", items, address, payment, subtotal, shipping, tax, discount, total, tp)
		require.NoError(t, err)
		assert.Equal(t, OrderPending, ord.Status)
		assert.Equal(t, "user-1", ord.UserID)
		assert.Equal(t, fixed, ord.CreatedAt)
		assert.True(t, strings.HasPrefix(ord.Code, "SHQ-20250829-"), "code %s", ord.Code)
	})

	t.Run("verified payment starts confirmed", func(t *testing.T) {
		items, address, payment := validOrderInput()
		payment.Verified = true
		tp := fixedTimeProvider(t, fixed)

		ord, err := NewOrder("user-1", items, address, payment, subtotal, shipping, tax, discount, total, tp)
		require.NoError(t, err)
		assert.Equal(t, OrderConfirmed, ord.Status)
	})

	t.Run("broken pricing arithmetic rejected", func(t *testing.T) {
		items, address, payment := validOrderInput()
		tp := fixedTimeProvider(t, fixed)

		_, err := NewOrder("user-1", items, address, payment,
			subtotal, shipping, tax, discount, decimal.RequireFromString("99.00"), tp)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("no items rejected", func(t *testing.T) {
		_, address, payment := validOrderInput()
		tp := fixedTimeProvider(t, fixed)

		_, err := NewOrder("user-1", nil, address, payment, subtotal, shipping, tax, discount, total, tp)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("missing address rejected", func(t *testing.T) {
		items, _, payment := validOrderInput()
		tp := fixedTimeProvider(t, fixed)

		_, err := NewOrder("user-1", items, ShippingAddress{}, payment, subtotal, shipping, tax, discount, total, tp)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderShipped, false},
		{OrderConfirmed, OrderProcessing, true},
		{OrderConfirmed, OrderCancelled, true},
		{OrderConfirmed, OrderDelivered, false},
		{OrderProcessing, OrderShipped, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
	}

	for _, tt := range tests {
		name := string(tt.from) + " to " + string(tt.to)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderTransitionTo(t *testing.T) {
	fixed := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("permitted transition records event", func(t *testing.T) {
		tp := fixedTimeProvider(t, fixed)
		ord := &Order{ID: "o-1", Code: "SHQ-20250829-AAAAAA", Status: OrderConfirmed}

		event, err := ord.TransitionTo(OrderProcessing, tp)
		require.NoError(t, err)
		assert.Equal(t, OrderProcessing, ord.Status)
		assert.Equal(t, OrderConfirmed, event.FromStatus)
		assert.Equal(t, OrderProcessing, event.ToStatus)
		assert.Equal(t, fixed, event.CreatedAt)
		assert.Equal(t, fixed, ord.UpdatedAt)
	})

	t.Run("forbidden transition rejected", func(t *testing.T) {
		tp := coremocks.NewMockTimeProvider(t)
		ord := &Order{ID: "o-1", Code: "SHQ-20250829-AAAAAA", Status: OrderDelivered}

		_, err := ord.TransitionTo(OrderCancelled, tp)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, OrderDelivered, ord.Status)
	})
}

func TestRequiresRefundOnCancel(t *testing.T) {
	assert.False(t, (&Order{Status: OrderPending}).RequiresRefundOnCancel())
	assert.True(t, (&Order{Status: OrderConfirmed}).RequiresRefundOnCancel())
	assert.True(t, (&Order{Status: OrderProcessing}).RequiresRefundOnCancel())
	assert.False(t, (&Order{Status: OrderShipped}).RequiresRefundOnCancel())
}

func TestOrderReasonTags(t *testing.T) {
	ord := &Order{Code: "SHQ-20250829-AAAAAA"}
	assert.Equal(t, "order:SHQ-20250829-AAAAAA", ord.DebitReason())
	assert.Equal(t, "refund:SHQ-20250829-AAAAAA", ord.RefundReason())
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled"} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("returned"))
	assert.False(t, ValidOrderStatus(""))
}

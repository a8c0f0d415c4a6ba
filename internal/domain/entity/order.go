package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
)

// OrderStatus defines possible status values for an order. The values are a
// stable wire contract consumed by UI and notification collaborators.
type OrderStatus string

// Order statuses
const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// orderTransitions is the order status state machine. Cancellation stops
// being permitted once the order has shipped.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// ValidOrderStatus reports whether s is one of the known wire values
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving to next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentMethod identifies how an order is paid
type PaymentMethod string

// Payment methods
const (
	PaymentToken   PaymentMethod = "token"
	PaymentBalance PaymentMethod = "balance"
)

// LineItem is a single product line on an order
type LineItem struct {
	ProductRef string
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// ShippingAddress is the delivery destination for an order
type ShippingAddress struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Empty reports whether no usable address was supplied
func (a ShippingAddress) Empty() bool {
	return strings.TrimSpace(a.Line1) == "" || strings.TrimSpace(a.City) == ""
}

// Payment is the payment descriptor attached to an order
type Payment struct {
	Method       PaymentMethod
	ExternalTxID string
	Amount       decimal.Decimal
	Currency     string
	Verified     bool
}

// Order represents a purchase. Money on the order never moves directly; the
// balance ledger is debited on confirmation and credited back on cancellation.
type Order struct {
	ID              string
	Code            string
	UserID          string
	Items           []LineItem
	ShippingAddress ShippingAddress
	Payment         Payment
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Tax             decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderEvent records one status transition for the audit trail
type OrderEvent struct {
	OrderID    string
	FromStatus OrderStatus
	ToStatus   OrderStatus
	CreatedAt  time.Time
}

// NewOrder creates an order after validating its pricing arithmetic. An order
// with an already-verified payment starts confirmed, otherwise pending.
func NewOrder(
	userID string,
	items []LineItem,
	address ShippingAddress,
	payment Payment,
	subtotal, shipping, tax, discount, total decimal.Decimal,
	timeProvider coreport.TimeProvider,
) (*Order, error) {
	if userID == "" {
		return nil, errs.ErrValidation
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", errs.ErrValidation)
	}
	for _, item := range items {
		if item.ProductRef == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: invalid line item %q", errs.ErrValidation, item.ProductRef)
		}
	}
	if address.Empty() {
		return nil, fmt.Errorf("%w: shipping address is required", errs.ErrValidation)
	}

	computed := subtotal.Add(shipping).Add(tax).Sub(discount)
	if !AmountsMatch(computed, total) {
		return nil, fmt.Errorf("%w: total %s does not equal subtotal+shipping+tax-discount %s",
			errs.ErrValidation, total.String(), computed.String())
	}

	status := OrderPending
	if payment.Verified {
		status = OrderConfirmed
	}

	now := timeProvider.Now()
	return &Order{
		ID:              uuid.NewString(),
		Code:            newOrderCode(now),
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		Payment:         payment,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Tax:             tax,
		Discount:        discount,
		Total:           total,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// newOrderCode builds a human-readable order code, e.g. SHQ-20250829-1A2B3C
func newOrderCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("SHQ-%s-%s", now.Format("20060102"), suffix)
}

// TransitionTo moves the order to the next status if the state machine
// permits it, returning the event for the audit trail.
func (o *Order) TransitionTo(next OrderStatus, timeProvider coreport.TimeProvider) (*OrderEvent, error) {
	if !o.Status.CanTransitionTo(next) {
		return nil, errs.NewInvalidTransitionError(o.Code, string(o.Status), string(next))
	}

	event := &OrderEvent{
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   next,
		CreatedAt:  timeProvider.Now(),
	}
	o.Status = next
	o.UpdatedAt = event.CreatedAt
	return event, nil
}

// RequiresRefundOnCancel reports whether cancelling from the current status
// must credit the order total back to the user. Pending orders never debited.
func (o *Order) RequiresRefundOnCancel() bool {
	return o.Status == OrderConfirmed || o.Status == OrderProcessing
}

// DebitReason returns the journal reason tag for this order's balance debit
func (o *Order) DebitReason() string {
	return "order:" + o.Code
}

// RefundReason returns the journal reason tag for a cancellation refund
func (o *Order) RefundReason() string {
	return "refund:" + o.Code
}

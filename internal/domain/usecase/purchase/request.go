package purchase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
)

// RequestItem is one purchased product line at the boundary
type RequestItem struct {
	ProductRef string
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// RequestPayment is the payment descriptor at the boundary
type RequestPayment struct {
	Method       string
	ExternalTxID string
	Amount       decimal.Decimal
	Currency     string
}

// Request is a purchase request as it arrives from any channel. Identifier
// fields are interchangeable: whichever the channel knows is enough.
type Request struct {
	Items           []RequestItem
	ShippingAddress entity.ShippingAddress
	Payment         RequestPayment
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Tax             decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	WalletAddress   string
	ChatID          string
	Email           string
	Channel         entity.Channel
}

// Identifiers collects the supplied identity fields
func (r Request) Identifiers() entity.Identifiers {
	return entity.Identifiers{
		WalletAddress: r.WalletAddress,
		ChatID:        r.ChatID,
		Email:         r.Email,
	}
}

// Validate rejects malformed requests before any side effect: empty items,
// missing address, broken pricing arithmetic, or a payment claim whose amount
// does not cover the total.
func (r Request) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: purchase has no items", errs.ErrValidation)
	}
	for _, item := range r.Items {
		if item.ProductRef == "" {
			return fmt.Errorf("%w: item missing product reference", errs.ErrValidation)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %q has non-positive quantity", errs.ErrValidation, item.ProductRef)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %q has negative unit price", errs.ErrValidation, item.ProductRef)
		}
	}
	if r.ShippingAddress.Empty() {
		return fmt.Errorf("%w: shipping address is required", errs.ErrValidation)
	}
	if r.Identifiers().Empty() {
		return fmt.Errorf("%w: at least one of walletAddress, chatId, email is required", errs.ErrValidation)
	}

	if r.Subtotal.IsNegative() || r.Shipping.IsNegative() || r.Tax.IsNegative() || r.Discount.IsNegative() || r.Total.IsNegative() {
		return fmt.Errorf("%w: negative pricing field", errs.ErrValidation)
	}
	computed := r.Subtotal.Add(r.Shipping).Add(r.Tax).Sub(r.Discount)
	if !entity.AmountsMatch(computed, r.Total) {
		return fmt.Errorf("%w: total %s does not equal subtotal+shipping+tax-discount %s",
			errs.ErrValidation, r.Total.String(), computed.String())
	}

	if !r.Payment.Amount.IsZero() && !entity.AmountsMatch(r.Payment.Amount, r.Total) {
		return fmt.Errorf("%w: claimed payment amount %s does not match total %s",
			errs.ErrValidation, r.Payment.Amount.String(), r.Total.String())
	}
	return nil
}

func (r Request) lineItems() []entity.LineItem {
	items := make([]entity.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entity.LineItem{
			ProductRef: it.ProductRef,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}
	return items
}

func (r Request) address() entity.ShippingAddress {
	return r.ShippingAddress
}

func (r Request) payment() entity.Payment {
	method := entity.PaymentMethod(r.Payment.Method)
	if method == "" {
		method = entity.PaymentBalance
	}
	return entity.Payment{
		Method:       method,
		ExternalTxID: r.Payment.ExternalTxID,
		Amount:       r.Payment.Amount,
		Currency:     r.Payment.Currency,
	}
}

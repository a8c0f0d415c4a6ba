package purchase

import (
	"context"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/notification"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/deposit"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/identity"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/order"
)

// Orchestrator is the top-level purchase use case: validate the request,
// resolve identity, verify the payment claim when one is attached, create the
// order, and fan out notifications.
type Orchestrator struct {
	resolver *identity.Resolver
	verifier *deposit.Verifier
	orders   *order.Service
	notifier notification.Notifier
	logger   coreport.Logger
}

// NewOrchestrator creates a new purchase orchestrator
func NewOrchestrator(
	resolver *identity.Resolver,
	verifier *deposit.Verifier,
	orders *order.Service,
	notifier notification.Notifier,
	logger coreport.Logger,
) *Orchestrator {
	return &Orchestrator{
		resolver: resolver,
		verifier: verifier,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// Purchase executes a purchase request end to end. Verification failures
// propagate verbatim; notification failures are logged and never roll back
// the order.
func (o *Orchestrator) Purchase(ctx context.Context, req Request) (*entity.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, created, err := o.resolver.Resolve(ctx, req.Identifiers(), &identity.Profile{Channel: req.Channel})
	if err != nil {
		return nil, err
	}

	payment := req.payment()
	if req.Payment.ExternalTxID != "" {
		total := req.Total
		if _, err := o.verifier.Verify(ctx, deposit.Claim{
			ExternalTxID:   req.Payment.ExternalTxID,
			Identifiers:    req.Identifiers(),
			Channel:        req.Channel,
			ExpectedAmount: &total,
		}); err != nil {
			return nil, err
		}
		payment.Verified = true
	}

	ord, err := o.orders.Create(ctx, user.ID, order.CreateInput{
		Items:           req.lineItems(),
		ShippingAddress: req.address(),
		Payment:         payment,
		Subtotal:        req.Subtotal,
		Shipping:        req.Shipping,
		Tax:             req.Tax,
		Discount:        req.Discount,
		Total:           req.Total,
	})
	if err != nil {
		return nil, err
	}

	o.notify(ctx, user, ord, created)
	return ord, nil
}

// notify emits the onboarding and order-created events. Failures here are
// the single place in the system where errors are deliberately swallowed.
func (o *Orchestrator) notify(ctx context.Context, user *entity.User, ord *entity.Order, onboarded bool) {
	if onboarded {
		if err := o.notifier.UserOnboarded(ctx, user); err != nil {
			o.logger.Warn("Failed to send onboarding notification", map[string]any{
				"user_id": user.ID,
				"error":   err.Error(),
			})
		}
	}
	if err := o.notifier.OrderCreated(ctx, user, ord); err != nil {
		o.logger.Warn("Failed to send order notification", map[string]any{
			"user_id":    user.ID,
			"order_code": ord.Code,
			"error":      err.Error(),
		})
	}
}

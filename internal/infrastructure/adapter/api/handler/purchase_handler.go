package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/purchase"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/api/dto"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	orchestrator *purchase.Orchestrator
	logger       coreport.Logger
	metrics      *metrics.Metrics
}

// NewPurchaseHandler creates a new purchase handler instance
func NewPurchaseHandler(orchestrator *purchase.Orchestrator, logger coreport.Logger, m *metrics.Metrics) *PurchaseHandler {
	return &PurchaseHandler{
		orchestrator: orchestrator,
		logger:       logger,
		metrics:      m,
	}
}

// Create handles the POST /api/v1/purchases endpoint
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid purchase request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	domainReq, err := toPurchaseRequest(req)
	if err != nil {
		respondError(c, h.logger, h.metrics, "purchase", err)
		return
	}

	ord, err := h.orchestrator.Purchase(c.Request.Context(), domainReq)
	if err != nil {
		respondError(c, h.logger, h.metrics, "purchase", err)
		return
	}

	if h.metrics != nil {
		h.metrics.OrdersCreated.WithLabelValues(string(ord.Payment.Method), string(ord.Status)).Inc()
	}
	c.JSON(http.StatusCreated, orderToResponse(ord))
}

// toPurchaseRequest converts the wire shape into the domain request,
// rejecting unparseable amounts before the use case sees them
func toPurchaseRequest(req dto.PurchaseRequest) (purchase.Request, error) {
	items := make([]purchase.RequestItem, 0, len(req.Items))
	for _, it := range req.Items {
		unitPrice, err := parseAmount(it.UnitPrice, "unitPrice")
		if err != nil {
			return purchase.Request{}, err
		}
		items = append(items, purchase.RequestItem{
			ProductRef: it.ProductRef,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  unitPrice,
		})
	}

	subtotal, err := parseAmount(req.Subtotal, "subtotal")
	if err != nil {
		return purchase.Request{}, err
	}
	shipping, err := parseAmount(req.Shipping, "shipping")
	if err != nil {
		return purchase.Request{}, err
	}
	tax, err := parseAmount(req.Tax, "tax")
	if err != nil {
		return purchase.Request{}, err
	}
	discount, err := parseAmount(req.Discount, "discount")
	if err != nil {
		return purchase.Request{}, err
	}
	total, err := parseAmount(req.Total, "total")
	if err != nil {
		return purchase.Request{}, err
	}
	paymentAmount, err := parseAmount(req.Payment.Amount, "payment.amount")
	if err != nil {
		return purchase.Request{}, err
	}

	return purchase.Request{
		Items: items,
		ShippingAddress: entity.ShippingAddress{
			Line1:      req.ShippingAddress.Line1,
			Line2:      req.ShippingAddress.Line2,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		Payment: purchase.RequestPayment{
			Method:       req.Payment.Method,
			ExternalTxID: req.Payment.ExternalTxID,
			Amount:       paymentAmount,
			Currency:     req.Payment.Currency,
		},
		Subtotal:      subtotal,
		Shipping:      shipping,
		Tax:           tax,
		Discount:      discount,
		Total:         total,
		WalletAddress: req.WalletAddress,
		ChatID:        req.ChatID,
		Email:         req.Email,
		Channel:       toChannel(req.Channel),
	}, nil
}

// parseAmount parses a decimal wire string; the empty string means zero
func parseAmount(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s is not a valid amount", errs.ErrInvalidAmount, field)
	}
	return amount, nil
}

// toChannel maps the wire channel value, defaulting to web
func toChannel(s string) entity.Channel {
	switch entity.Channel(s) {
	case entity.ChannelChat:
		return entity.ChannelChat
	case entity.ChannelBot:
		return entity.ChannelBot
	default:
		return entity.ChannelWeb
	}
}

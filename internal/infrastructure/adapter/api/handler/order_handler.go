package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/order"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/api/dto"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orders  *order.Service
	logger  coreport.Logger
	metrics *metrics.Metrics
}

// NewOrderHandler creates a new order handler instance
func NewOrderHandler(orders *order.Service, logger coreport.Logger, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		logger:  logger,
		metrics: m,
	}
}

// GetByCode handles the GET /api/v1/orders/:code endpoint
func (h *OrderHandler) GetByCode(c *gin.Context) {
	ord, err := h.orders.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.logger, h.metrics, "order", err)
		return
	}

	c.JSON(http.StatusOK, orderToResponse(ord))
}

// UpdateStatus handles the POST /api/v1/orders/:code/status endpoint
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid order status request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respondError(c, h.logger, h.metrics, "order", err)
		return
	}

	ord, err := h.orders.AdvanceStatus(c.Request.Context(), c.Param("code"), status)
	if err != nil {
		respondError(c, h.logger, h.metrics, "order", err)
		return
	}

	c.JSON(http.StatusOK, orderToResponse(ord))
}

// Cancel handles the POST /api/v1/orders/:code/cancel endpoint
func (h *OrderHandler) Cancel(c *gin.Context) {
	ord, err := h.orders.Cancel(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, h.logger, h.metrics, "order", err)
		return
	}

	c.JSON(http.StatusOK, orderToResponse(ord))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/deposit"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/api/dto"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
)

// DepositHandler handles deposit-related HTTP requests
type DepositHandler struct {
	verifier *deposit.Verifier
	logger   coreport.Logger
	metrics  *metrics.Metrics
}

// NewDepositHandler creates a new deposit handler instance
func NewDepositHandler(verifier *deposit.Verifier, logger coreport.Logger, m *metrics.Metrics) *DepositHandler {
	return &DepositHandler{
		verifier: verifier,
		logger:   logger,
		metrics:  m,
	}
}

// Verify handles the POST /api/v1/deposits/verify endpoint
func (h *DepositHandler) Verify(c *gin.Context) {
	var req dto.DepositVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid deposit verification request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	claim := deposit.Claim{
		ExternalTxID: req.ExternalTxID,
		Identifiers: entity.Identifiers{
			WalletAddress: req.WalletAddress,
			ChatID:        req.ChatID,
			Email:         req.Email,
		},
		Channel: toChannel(req.Channel),
	}

	if req.ExpectedAmount != "" {
		expected, err := decimal.NewFromString(req.ExpectedAmount)
		if err != nil {
			respondError(c, h.logger, h.metrics, "deposit", errs.ErrInvalidAmount)
			return
		}
		claim.ExpectedAmount = &expected
	}

	dep, err := h.verifier.Verify(c.Request.Context(), claim)
	if err != nil {
		h.countOutcome(err)
		respondError(c, h.logger, h.metrics, "deposit", err)
		return
	}

	h.countOutcome(nil)
	c.JSON(http.StatusCreated, depositToResponse(dep))
}

// countOutcome records the verification verdict for the deposits counter
func (h *DepositHandler) countOutcome(err error) {
	if h.metrics == nil {
		return
	}
	outcome := "verified"
	switch {
	case errors.Is(err, errs.ErrDuplicateDeposit):
		outcome = "duplicate"
	case err != nil:
		outcome = "rejected"
	}
	h.metrics.DepositsVerified.WithLabelValues(outcome).Inc()
}

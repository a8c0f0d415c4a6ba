package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/api/dto"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
)

// httpStatus maps domain errors to HTTP status codes. Anything unmapped is a
// server fault and must not leak its message to the client.
func httpStatus(err error) int {
	switch {
	case errs.IsValidationError(err),
		errors.Is(err, errs.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errs.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrDuplicateDeposit),
		errors.Is(err, errs.ErrIdentityConflict),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTransactionFailed),
		errors.Is(err, errs.ErrNoMatchingTransfer),
		errors.Is(err, errs.ErrAmountMismatch),
		errors.Is(err, errs.ErrBelowMinimum),
		errors.Is(err, errs.ErrStaleTransaction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrOracleUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error body for a domain error and
// counts it against the owning component
func respondError(c *gin.Context, logger coreport.Logger, m *metrics.Metrics, component string, err error) {
	status := httpStatus(err)
	if m != nil {
		m.Errors.WithLabelValues(component).Inc()
	}
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Unhandled error in API request", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
		message = "Internal server error"
	} else if status == http.StatusServiceUnavailable {
		message = "Ledger oracle unavailable, try again shortly"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	})
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func orderToResponse(ord *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(ord.Items))
	for _, it := range ord.Items {
		items = append(items, dto.OrderItemResponse{
			ProductRef: it.ProductRef,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.String(),
		})
	}

	var paymentAmount string
	if !ord.Payment.Amount.IsZero() {
		paymentAmount = ord.Payment.Amount.String()
	}

	return dto.OrderResponse{
		ID:     ord.ID,
		Code:   ord.Code,
		UserID: ord.UserID,
		Items:  items,
		ShippingAddress: dto.ShippingAddressResponse{
			Line1:      ord.ShippingAddress.Line1,
			Line2:      ord.ShippingAddress.Line2,
			City:       ord.ShippingAddress.City,
			State:      ord.ShippingAddress.State,
			PostalCode: ord.ShippingAddress.PostalCode,
			Country:    ord.ShippingAddress.Country,
		},
		Payment: dto.PaymentResponse{
			Method:       string(ord.Payment.Method),
			ExternalTxID: ord.Payment.ExternalTxID,
			Amount:       paymentAmount,
			Currency:     ord.Payment.Currency,
			Verified:     ord.Payment.Verified,
		},
		Subtotal:  ord.Subtotal.String(),
		Shipping:  ord.Shipping.String(),
		Tax:       ord.Tax.String(),
		Discount:  ord.Discount.String(),
		Total:     ord.Total.String(),
		Status:    string(ord.Status),
		CreatedAt: formatTime(ord.CreatedAt),
		UpdatedAt: formatTime(ord.UpdatedAt),
	}
}

func depositToResponse(dep *entity.Deposit) dto.DepositResponse {
	resp := dto.DepositResponse{
		ID:            dep.ID,
		UserID:        dep.UserID,
		ExternalTxID:  dep.ExternalTxID,
		Amount:        dep.Amount.String(),
		TokenID:       dep.TokenID,
		SenderAddress: dep.SenderAddress,
		ConsensusAt:   formatTime(dep.ConsensusAt),
		Status:        string(dep.Status),
	}
	if dep.ConfirmedAt != nil {
		resp.ConfirmedAt = formatTime(*dep.ConfirmedAt)
	}
	return resp
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/entity"
	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/persistence"
	"github.com/ManishHQ/shoq-ai-sub000/internal/domain/usecase/order"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/api/dto"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users   persistence.UserRepository
	orders  *order.Service
	logger  coreport.Logger
	metrics *metrics.Metrics
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(users persistence.UserRepository, orders *order.Service, logger coreport.Logger, m *metrics.Metrics) *UserHandler {
	return &UserHandler{
		users:   users,
		orders:  orders,
		logger:  logger,
		metrics: m,
	}
}

// GetBalance handles the GET /api/v1/users/balance endpoint. The user is
// looked up by whichever identifier the caller supplies; lookup never
// creates a user.
func (h *UserHandler) GetBalance(c *gin.Context) {
	user, err := h.lookup(c)
	if err != nil {
		respondError(c, h.logger, h.metrics, "user", err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:        user.ID,
		WalletAddress: user.WalletAddress,
		ChatID:        user.ChatID,
		Email:         user.Email,
		Balance:       user.Balance().String(),
		Verified:      user.Verified,
	})
}

// ListOrders handles the GET /api/v1/users/:id/orders endpoint
func (h *UserHandler) ListOrders(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrInvalidRequest),
			Message: "Missing user id",
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrInvalidRequest),
				Message: "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, h.metrics, "user", err)
		return
	}

	responses := make([]dto.OrderResponse, 0, len(orders))
	for _, ord := range orders {
		responses = append(responses, orderToResponse(ord))
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders: responses,
		Count:  len(responses),
	})
}

// lookup resolves the query identifiers to an existing user
func (h *UserHandler) lookup(c *gin.Context) (*entity.User, error) {
	ctx := c.Request.Context()
	switch {
	case c.Query("walletAddress") != "":
		return h.users.GetByWalletAddress(ctx, c.Query("walletAddress"))
	case c.Query("chatId") != "":
		return h.users.GetByChatID(ctx, c.Query("chatId"))
	case c.Query("email") != "":
		return h.users.GetByEmail(ctx, c.Query("email"))
	default:
		return nil, errs.ErrInvalidRequest
	}
}

package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreport "github.com/ManishHQ/shoq-ai-sub000/internal/domain/port/core"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/api/handler"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/api/middleware"
	"github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/adapter/metrics"
)

// Pinger reports whether the backing database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	purchaseHandler *handler.PurchaseHandler,
	depositHandler *handler.DepositHandler,
	userHandler *handler.UserHandler,
	orderHandler *handler.OrderHandler,
	db Pinger,
) {
	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/purchases", purchaseHandler.Create)

		v1.POST("/deposits/verify", depositHandler.Verify)

		v1.GET("/users/balance", userHandler.GetBalance)
		v1.GET("/users/:id/orders", userHandler.ListOrders)

		v1.GET("/orders/:code", orderHandler.GetByCode)
		v1.POST("/orders/:code/status", orderHandler.UpdateStatus)
		v1.POST("/orders/:code/cancel", orderHandler.Cancel)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, m *metrics.Metrics) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CORS())
}

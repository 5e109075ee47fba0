package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/api/handlers"
	"github.com/jtheoden/papuenvios-sub001/internal/api/middleware"
	"github.com/jtheoden/papuenvios-sub001/internal/config"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
	"github.com/jtheoden/papuenvios-sub001/internal/workflow"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, ctrl *workflow.Controller, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Proof images are served from the local store
	router.Static(cfg.Uploads.BaseURL, cfg.Uploads.Dir)

	// API v1 routes
	v1 := router.Group("/v1")
	{
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(repos, logger))
		{
			admin.GET("/dashboard", handlers.HandleDashboard(repos, logger))

			admin.GET("/orders", handlers.HandleListOrders(repos, logger))
			admin.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))
			admin.GET("/orders/:id/activity", handlers.HandleOrderActivity(repos, logger))
			admin.POST("/orders/:id/validate-payment", handlers.HandleOrderAction(ctrl, repos, logger, workflow.ActionValidatePayment))
			admin.POST("/orders/:id/reject-payment", handlers.HandleOrderAction(ctrl, repos, logger, workflow.ActionRejectPayment))
			admin.POST("/orders/:id/start-processing", handlers.HandleOrderAction(ctrl, repos, logger, workflow.ActionStartProcessing))
			admin.POST("/orders/:id/dispatch", handlers.HandleOrderAction(ctrl, repos, logger, workflow.ActionDispatch))
			admin.POST("/orders/:id/delivery-proof", handlers.HandleOrderDeliveryProof(ctrl, repos, logger))
			admin.POST("/orders/:id/complete", handlers.HandleOrderAction(ctrl, repos, logger, workflow.ActionComplete))
			admin.POST("/orders/:id/cancel", handlers.HandleOrderAction(ctrl, repos, logger, workflow.ActionCancel))

			admin.GET("/remittances", handlers.HandleListRemittances(repos, logger))
			admin.GET("/remittances/:id", handlers.HandleGetRemittance(repos, logger))
			admin.GET("/remittances/:id/activity", handlers.HandleRemittanceActivity(repos, logger))
			admin.POST("/remittances/:id/validate-payment", handlers.HandleRemittanceAction(ctrl, repos, logger, workflow.ActionValidatePayment))
			admin.POST("/remittances/:id/reject-payment", handlers.HandleRemittanceAction(ctrl, repos, logger, workflow.ActionRejectPayment))
			admin.POST("/remittances/:id/start-processing", handlers.HandleRemittanceAction(ctrl, repos, logger, workflow.ActionStartProcessing))
			admin.POST("/remittances/:id/confirm-delivery", handlers.HandleRemittanceConfirmDelivery(ctrl, repos, logger))
			admin.POST("/remittances/:id/complete", handlers.HandleRemittanceAction(ctrl, repos, logger, workflow.ActionComplete))
			admin.POST("/remittances/:id/cancel", handlers.HandleRemittanceAction(ctrl, repos, logger, workflow.ActionCancel))

			admin.GET("/offers", handlers.HandleListOffers(repos, logger))
			admin.POST("/offers", handlers.HandleCreateOffer(repos, logger))
			admin.PUT("/offers/:id", handlers.HandleUpdateOffer(repos, logger))
			admin.DELETE("/offers/:id", handlers.HandleDeleteOffer(repos, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
	"github.com/jtheoden/papuenvios-sub001/internal/service"
)

// HandleDashboard handles GET /v1/admin/dashboard
func HandleDashboard(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		dashboard := service.NewDashboardService(repos, logger)

		stats, err := dashboard.Overview(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":                bucketResponses(stats.Orders),
			"remittances":           bucketResponses(stats.Remittances),
			"order_revenue":         stats.OrderRevenue,
			"remittance_volume":     stats.RemittanceVolume,
			"open_order_count":      stats.OpenOrderCount,
			"open_remittance_count": stats.OpenRemittanceCount,
		})
	}
}

func bucketResponses(buckets []*domain.StatusBucket) []gin.H {
	out := make([]gin.H, len(buckets))
	for i, b := range buckets {
		out[i] = gin.H{
			"status": b.Status,
			"count":  b.Count,
			"total":  b.Total,
		}
	}
	return out
}

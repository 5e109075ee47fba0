package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/api/middleware"
	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
	"github.com/jtheoden/papuenvios-sub001/internal/workflow"
)

// ReasonRequest carries the free-text reason for cancel/reject actions.
// The workflow validates it so an empty reason yields the typed
// missing-reason error rather than a binding failure.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// DispatchRequest carries tracking info for the dispatch action
type DispatchRequest struct {
	TrackingInfo string `json:"tracking_info"`
}

// resolveOrderID accepts a UUID or an order number in the path
func resolveOrderID(c *gin.Context, repos *repository.Repositories) (uuid.UUID, error) {
	idParam := c.Param("id")
	if id, err := uuid.Parse(idParam); err == nil {
		return id, nil
	}
	order, err := repos.Order.GetByNumber(c.Request.Context(), idParam)
	if err != nil {
		return uuid.Nil, err
	}
	return order.ID, nil
}

// HandleListOrders handles GET /v1/admin/orders
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parsePagination(c)

		var status *domain.OrderStatus
		if statusStr := c.Query("status"); statusStr != "" {
			s := domain.OrderStatus(statusStr)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			status = &s
		}

		orders, err := repos.Order.List(c.Request.Context(), status, limit, offset)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orderResponses(orders),
			"limit":  limit,
			"offset": offset,
		})
	}
}

// HandleGetOrder handles GET /v1/admin/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolveOrderID(c, repos)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		order, err := repos.Order.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, orderResponse(order))
	}
}

// HandleOrderActivity handles GET /v1/admin/orders/:id/activity
func HandleOrderActivity(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolveOrderID(c, repos)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		entries, err := repos.ActivityLog.ListByEntity(c.Request.Context(), "order", id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"activity": activityResponses(entries)})
	}
}

// HandleOrderAction handles the reason-or-tracking workflow actions:
// POST /v1/admin/orders/:id/{validate-payment,reject-payment,start-processing,dispatch,complete,cancel}
func HandleOrderAction(ctrl *workflow.Controller, repos *repository.Repositories, logger *zap.Logger, action workflow.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, err := resolveOrderID(c, repos)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		var payload workflow.Payload
		switch action {
		case workflow.ActionCancel, workflow.ActionRejectPayment:
			var req ReasonRequest
			if err := c.ShouldBindJSON(&req); err == nil {
				payload.Reason = req.Reason
			}
		case workflow.ActionDispatch:
			var req DispatchRequest
			if err := c.ShouldBindJSON(&req); err == nil {
				payload.TrackingInfo = req.TrackingInfo
			}
		}

		order, err := ctrl.OrderAction(c.Request.Context(), actor, id, action, payload)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, orderResponse(order))
	}
}

// HandleOrderDeliveryProof handles POST /v1/admin/orders/:id/delivery-proof.
// Uploading a valid proof performs the dispatched → delivered transition.
func HandleOrderDeliveryProof(ctrl *workflow.Controller, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, err := resolveOrderID(c, repos)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		proof, cleanup, err := proofFileFromForm(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "proof image file is required", "details": err.Error()})
			return
		}
		defer cleanup()

		order, err := ctrl.OrderAction(c.Request.Context(), actor, id, workflow.ActionMarkDelivered, workflow.Payload{ProofFile: proof})
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, orderResponse(order))
	}
}

// proofFileFromForm extracts the multipart "file" field without reading it
// into memory; type/size validation happens in the workflow before upload.
func proofFileFromForm(c *gin.Context) (*workflow.ProofFile, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	proof := &workflow.ProofFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     f,
	}
	return proof, func() { f.Close() }, nil
}

func orderResponse(order *domain.Order) gin.H {
	return gin.H{
		"id":                  order.ID.String(),
		"order_number":        order.OrderNumber,
		"status":              order.Status,
		"payment_status":      order.PaymentStatus,
		"customer_name":       order.CustomerName,
		"customer_phone":      order.CustomerPhone,
		"subtotal":            order.Subtotal,
		"shipping_cost":       order.ShippingCost,
		"discount_amount":     order.DiscountAmount,
		"total_amount":        order.TotalAmount,
		"currency_code":       order.CurrencyCode,
		"offer_code":          order.OfferCode,
		"tracking_info":       order.TrackingInfo,
		"delivery_proof_url":  order.DeliveryProofURL,
		"cancellation_reason": order.CancellationReason,
		"rejection_reason":    order.RejectionReason,
		"created_at":          order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		"updated_at":          order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func orderResponses(orders []*domain.Order) []gin.H {
	out := make([]gin.H, len(orders))
	for i, order := range orders {
		out[i] = orderResponse(order)
	}
	return out
}

func activityResponses(entries []*domain.ActivityEntry) []gin.H {
	out := make([]gin.H, len(entries))
	for i, entry := range entries {
		out[i] = gin.H{
			"id":          entry.ID.String(),
			"action":      entry.Action,
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID.String(),
			"actor_id":    entry.ActorID.String(),
			"metadata":    entry.Metadata,
			"created_at":  entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return out
}

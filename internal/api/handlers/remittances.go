package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/api/middleware"
	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
	"github.com/jtheoden/papuenvios-sub001/internal/workflow"
)

// resolveRemittanceID accepts a UUID or a remittance number in the path
func resolveRemittanceID(c *gin.Context, repos *repository.Repositories) (uuid.UUID, error) {
	idParam := c.Param("id")
	if id, err := uuid.Parse(idParam); err == nil {
		return id, nil
	}
	remittance, err := repos.Remittance.GetByNumber(c.Request.Context(), idParam)
	if err != nil {
		return uuid.Nil, err
	}
	return remittance.ID, nil
}

// HandleListRemittances handles GET /v1/admin/remittances
func HandleListRemittances(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parsePagination(c)

		var status *domain.RemittanceStatus
		if statusStr := c.Query("status"); statusStr != "" {
			s := domain.RemittanceStatus(statusStr)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			status = &s
		}

		remittances, err := repos.Remittance.List(c.Request.Context(), status, limit, offset)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"remittances": remittanceResponses(remittances),
			"limit":       limit,
			"offset":      offset,
		})
	}
}

// HandleGetRemittance handles GET /v1/admin/remittances/:id
func HandleGetRemittance(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolveRemittanceID(c, repos)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		remittance, err := repos.Remittance.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, remittanceResponse(remittance))
	}
}

// HandleRemittanceActivity handles GET /v1/admin/remittances/:id/activity
func HandleRemittanceActivity(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolveRemittanceID(c, repos)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		entries, err := repos.ActivityLog.ListByEntity(c.Request.Context(), "remittance", id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"activity": activityResponses(entries)})
	}
}

// HandleRemittanceAction handles the JSON-body workflow actions:
// POST /v1/admin/remittances/:id/{validate-payment,reject-payment,start-processing,complete,cancel}
func HandleRemittanceAction(ctrl *workflow.Controller, repos *repository.Repositories, logger *zap.Logger, action workflow.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, err := resolveRemittanceID(c, repos)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		var payload workflow.Payload
		if action == workflow.ActionCancel || action == workflow.ActionRejectPayment {
			var req ReasonRequest
			if err := c.ShouldBindJSON(&req); err == nil {
				payload.Reason = req.Reason
			}
		}

		remittance, err := ctrl.RemittanceAction(c.Request.Context(), actor, id, action, payload)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, remittanceResponse(remittance))
	}
}

// HandleRemittanceConfirmDelivery handles POST /v1/admin/remittances/:id/confirm-delivery.
// The proof image may be attached as multipart "file" or already stored on
// the remittance; without either the workflow rejects the confirmation.
func HandleRemittanceConfirmDelivery(ctrl *workflow.Controller, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		id, err := resolveRemittanceID(c, repos)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		var payload workflow.Payload
		if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			proof, cleanup, err := proofFileFromForm(c)
			if err == nil {
				defer cleanup()
				payload.ProofFile = proof
			}
		}

		remittance, err := ctrl.RemittanceAction(c.Request.Context(), actor, id, workflow.ActionConfirmDelivery, payload)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, remittanceResponse(remittance))
	}
}

func remittanceResponse(remittance *domain.Remittance) gin.H {
	return gin.H{
		"id":                    remittance.ID.String(),
		"remittance_number":     remittance.RemittanceNumber,
		"status":                remittance.Status,
		"delivery_method":       remittance.DeliveryMethod,
		"amount_sent":           remittance.AmountSent,
		"currency_sent":         remittance.CurrencySent,
		"amount_to_deliver":     remittance.AmountToDeliver,
		"delivery_currency":     remittance.DeliveryCurrency,
		"commission_total":      remittance.CommissionTotal,
		"discount_amount":       remittance.DiscountAmount,
		"recipient_name":        remittance.RecipientName,
		"recipient_phone":       remittance.RecipientPhone,
		"delivery_province":     remittance.DeliveryProvince,
		"delivery_municipality": remittance.DeliveryMunicipality,
		"delivery_address":      remittance.DeliveryAddress,
		"payment_proof_url":     remittance.PaymentProofURL,
		"delivery_proof_url":    remittance.DeliveryProofURL,
		"rejection_reason":      remittance.RejectionReason,
		"cancellation_reason":   remittance.CancellationReason,
		"created_at":            remittance.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		"updated_at":            remittance.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func remittanceResponses(remittances []*domain.Remittance) []gin.H {
	out := make([]gin.H, len(remittances))
	for i, remittance := range remittances {
		out[i] = remittanceResponse(remittance)
	}
	return out
}

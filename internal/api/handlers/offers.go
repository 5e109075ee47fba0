package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository"
)

// OfferRequest represents the create/update body for an offer
type OfferRequest struct {
	Code           string          `json:"code" binding:"required"`
	DiscountType   string          `json:"discount_type" binding:"required"`
	DiscountValue  decimal.Decimal `json:"discount_value" binding:"required"`
	MaxUses        *int            `json:"max_uses,omitempty"`
	MaxUsesPerUser *int            `json:"max_uses_per_user,omitempty"`
	StartsAt       time.Time       `json:"starts_at" binding:"required"`
	EndsAt         time.Time       `json:"ends_at" binding:"required"`
	IsActive       bool            `json:"is_active"`
}

func (r *OfferRequest) validate() (domain.DiscountType, string, bool) {
	discountType := domain.DiscountType(r.DiscountType)
	if !discountType.IsValid() {
		return "", "discount_type must be percentage or fixed", false
	}
	if r.DiscountValue.LessThanOrEqual(decimal.Zero) {
		return "", "discount_value must be positive", false
	}
	if !r.EndsAt.After(r.StartsAt) {
		return "", "ends_at must be after starts_at", false
	}
	return discountType, "", true
}

// HandleCreateOffer handles POST /v1/admin/offers
func HandleCreateOffer(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OfferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		discountType, msg, ok := req.validate()
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
			return
		}

		offer := &domain.Offer{
			Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
			DiscountType:   discountType,
			DiscountValue:  req.DiscountValue,
			MaxUses:        req.MaxUses,
			MaxUsesPerUser: req.MaxUsesPerUser,
			StartsAt:       req.StartsAt,
			EndsAt:         req.EndsAt,
			IsActive:       req.IsActive,
		}

		if err := repos.Offer.Create(c.Request.Context(), offer); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, offerResponse(offer))
	}
}

// HandleListOffers handles GET /v1/admin/offers
func HandleListOffers(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		offers, err := repos.Offer.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		out := make([]gin.H, len(offers))
		for i, offer := range offers {
			out[i] = offerResponse(offer)
		}

		c.JSON(http.StatusOK, gin.H{"offers": out})
	}
}

// HandleUpdateOffer handles PUT /v1/admin/offers/:id
func HandleUpdateOffer(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer id"})
			return
		}

		var req OfferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		discountType, msg, ok := req.validate()
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
			return
		}

		offer, err := repos.Offer.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		offer.Code = strings.ToUpper(strings.TrimSpace(req.Code))
		offer.DiscountType = discountType
		offer.DiscountValue = req.DiscountValue
		offer.MaxUses = req.MaxUses
		offer.MaxUsesPerUser = req.MaxUsesPerUser
		offer.StartsAt = req.StartsAt
		offer.EndsAt = req.EndsAt
		offer.IsActive = req.IsActive

		if err := repos.Offer.Update(c.Request.Context(), offer); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, offerResponse(offer))
	}
}

// HandleDeleteOffer handles DELETE /v1/admin/offers/:id
func HandleDeleteOffer(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer id"})
			return
		}

		if err := repos.Offer.Delete(c.Request.Context(), id); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": id.String()})
	}
}

func offerResponse(offer *domain.Offer) gin.H {
	return gin.H{
		"id":                offer.ID.String(),
		"code":              offer.Code,
		"discount_type":     offer.DiscountType,
		"discount_value":    offer.DiscountValue,
		"max_uses":          offer.MaxUses,
		"max_uses_per_user": offer.MaxUsesPerUser,
		"used_count":        offer.UsedCount,
		"starts_at":         offer.StartsAt.Format("2006-01-02T15:04:05Z07:00"),
		"ends_at":           offer.EndsAt.Format("2006-01-02T15:04:05Z07:00"),
		"is_active":         offer.IsActive,
	}
}

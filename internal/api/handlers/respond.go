package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/jtheoden/papuenvios-sub001/pkg/errors"
)

// respondError maps a workflow/repository error to an HTTP response. This
// is the single place errors become user-visible messages.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		notFound          *apperrors.ErrNotFound
		unauthorized      *apperrors.ErrUnauthorized
		conflict          *apperrors.ErrConflict
		validation        *apperrors.ErrValidation
		invalidTransition *apperrors.ErrInvalidTransition
		concurrent        *apperrors.ErrConcurrentModification
		missingReason     *apperrors.ErrMissingReason
		missingProof      *apperrors.ErrMissingProof
		invalidFileType   *apperrors.ErrInvalidFileType
		fileTooLarge      *apperrors.ErrFileTooLarge
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &invalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "invalid_transition"})
	case errors.As(err, &concurrent):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "concurrent_modification"})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &missingReason):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "missing_reason"})
	case errors.As(err, &missingProof):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "missing_proof"})
	case errors.As(err, &invalidFileType):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "invalid_file_type"})
	case errors.As(err, &fileTooLarge):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "file_too_large"})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "fields": validation.Fields})
	default:
		logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && v >= 1 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

package handler

import (
	"errors"
	"net/http"

	"record-reconciliation-backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err error) {
	var rematch *apperrors.RematchError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &rematch):
		// The record mutation and audit events were stored; only the
		// verdict is stale. The caller must be able to tell.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        rematch.Error(),
			"auditWritten": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// actor returns the caller identity set by the auth layer, nil when
// absent (a nil actor marks a system-originated change).
func actor(c *gin.Context) *string {
	v := c.GetHeader("X-Actor")
	if v == "" {
		return nil
	}
	return &v
}

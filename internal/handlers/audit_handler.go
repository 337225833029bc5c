package handler

import (
	"net/http"

	"record-reconciliation-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditHandler struct {
	audits    *repository.AuditRepository
	feedLimit int
}

func NewAuditHandler(audits *repository.AuditRepository, feedLimit int) *AuditHandler {
	return &AuditHandler{audits: audits, feedLimit: feedLimit}
}

// ByRecord returns a record's change history, newest first.
func (h *AuditHandler) ByRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("recordId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record ID"})
		return
	}

	events, err := h.audits.ListByRecord(recordID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// Recent returns the global feed of latest changes, capped.
func (h *AuditHandler) Recent(c *gin.Context) {
	events, err := h.audits.ListRecent(h.feedLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": events})
}

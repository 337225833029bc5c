package handler

import (
	"net/http"
	"strconv"

	"record-reconciliation-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReconciliationHandler struct {
	service *reconciliation.Service
}

func NewReconciliationHandler(s *reconciliation.Service) *ReconciliationHandler {
	return &ReconciliationHandler{service: s}
}

// ListResults returns a job's verdicts, paginated.
func (h *ReconciliationHandler) ListResults(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	resultPage, err := h.service.ListResults(jobID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resultPage)
}

func (h *ReconciliationHandler) JobStats(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}

	stats, err := h.service.JobStats(jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CorrectRecord applies a manual edit to a record and re-matches it.
func (h *ReconciliationHandler) CorrectRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record ID"})
		return
	}

	var payload struct {
		Amount          *float64 `json:"amount"`
		ReferenceNumber *string  `json:"referenceNumber"`
		Notes           *string  `json:"notes"`
		Status          *string  `json:"status"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.service.CorrectRecord(recordID, reconciliation.CorrectionInput{
		Amount:          payload.Amount,
		ReferenceNumber: payload.ReferenceNumber,
		Notes:           payload.Notes,
		Status:          payload.Status,
	}, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Record updated and re-matched",
		"result":  result,
	})
}

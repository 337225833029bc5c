package handler

import (
	"net/http"
	"time"

	"record-reconciliation-backend/internal/repository"
	"record-reconciliation-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *reconciliation.Service
}

func NewDashboardHandler(s *reconciliation.Service) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// Stats returns verdict counts and accuracy, optionally narrowed by
// date range, status and uploader.
func (h *DashboardHandler) Stats(c *gin.Context) {
	filter := repository.StatsFilter{
		Status:     c.Query("status"),
		UploadedBy: c.Query("uploadedBy"),
	}

	if raw := c.Query("startDate"); raw != "" {
		t, err := parseQueryDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		filter.Start = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseQueryDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		filter.End = &t
	}

	stats, err := h.service.DashboardStats(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func parseQueryDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"record-reconciliation-backend/internal/repository"
	"record-reconciliation-backend/internal/services/ingest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadHandler struct {
	ingest *ingest.Service
	jobs   *repository.JobRepository
}

func NewUploadHandler(s *ingest.Service, jobs *repository.JobRepository) *UploadHandler {
	return &UploadHandler{ingest: s, jobs: jobs}
}

// Upload accepts a records file, opens a job and processes it in the
// background. The response carries only the job id; completion is
// observed by polling the job status.
func (h *UploadHandler) Upload(c *gin.Context) {
	who := actor(c)
	if who == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor header required"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	var mapping *ingest.ColumnMapping
	if raw := c.PostForm("mapping"); raw != "" {
		mapping = &ingest.ColumnMapping{}
		if err := json.Unmarshal([]byte(raw), mapping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping"})
			return
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}

	job, err := h.ingest.BeginJob(header.Filename, *who)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Println("upload accepted:", header.Filename, "job:", job.ID)
	go h.ingest.ProcessUpload(job.ID, data, mapping)

	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully. Processing started.",
		"jobId":   job.ID.String(),
	})
}

func (h *UploadHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job ID"})
		return
	}

	job, err := h.jobs.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *UploadHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"record-reconciliation-backend/internal/config"
	"record-reconciliation-backend/internal/models"
	"record-reconciliation-backend/internal/repository"
	"record-reconciliation-backend/internal/services/ingest"
	"record-reconciliation-backend/internal/services/matching"
	"record-reconciliation-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newUploadHandler(t *testing.T) (*UploadHandler, *repository.JobRepository, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Record{},
		&models.UploadJob{},
		&models.ReconciliationResult{},
		&models.AuditEvent{},
	))

	recordRepo := repository.NewRecordRepository(db)
	jobRepo := repository.NewJobRepository(db)
	engine := matching.NewEngine(recordRepo, config.DefaultMatchingRules())
	recon := reconciliation.NewService(
		recordRepo,
		repository.NewResultRepository(db),
		jobRepo,
		repository.NewAuditRepository(db),
		engine,
	)
	ingestSvc := ingest.NewService(recordRepo, jobRepo, recon, 1000)
	return NewUploadHandler(ingestSvc, jobRepo), jobRepo, db
}

func TestGetJobFound(t *testing.T) {
	h, jobs, _ := newUploadHandler(t)
	job := &models.UploadJob{
		ID:         uuid.New(),
		Filename:   "records.csv",
		UploadedBy: "alice",
		Status:     models.JobStatusProcessing,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, jobs.Create(job))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: job.ID.String()}}
	h.GetJob(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), job.ID.String())
}

func TestGetJobUnknownIDIs404(t *testing.T) {
	h, _, _ := newUploadHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	h.GetJob(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetJobStoreFailureIs500(t *testing.T) {
	h, _, db := newUploadHandler(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	h.GetJob(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

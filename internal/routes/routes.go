package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"record-reconciliation-backend/internal/config"
	handler "record-reconciliation-backend/internal/handlers"
	"record-reconciliation-backend/internal/repository"
	"record-reconciliation-backend/internal/services/ingest"
	"record-reconciliation-backend/internal/services/matching"
	"record-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	recordRepo := repository.NewRecordRepository(db)
	resultRepo := repository.NewResultRepository(db)
	jobRepo := repository.NewJobRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	engine := matching.NewEngine(recordRepo, cfg.Matching)
	reconService := reconciliation.NewService(recordRepo, resultRepo, jobRepo, auditRepo, engine)
	ingestService := ingest.NewService(recordRepo, jobRepo, reconService, cfg.ChunkSize)

	uploadHandler := handler.NewUploadHandler(ingestService, jobRepo)
	reconHandler := handler.NewReconciliationHandler(reconService)
	auditHandler := handler.NewAuditHandler(auditRepo, cfg.AuditFeedLimit)
	dashboardHandler := handler.NewDashboardHandler(reconService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Upload / job lifecycle routes
	upload := api.Group("/upload")
	upload.POST("", uploadHandler.Upload)
	upload.GET("", uploadHandler.ListJobs)
	upload.GET("/:id", uploadHandler.GetJob)

	// Reconciliation routes
	recon := api.Group("/reconciliation")
	recon.GET("/:jobId", reconHandler.ListResults)
	recon.GET("/:jobId/stats", reconHandler.JobStats)
	recon.PUT("/record/:id", reconHandler.CorrectRecord)

	// Audit routes
	audit := api.Group("/audit")
	audit.GET("", auditHandler.Recent)
	audit.GET("/:recordId", auditHandler.ByRecord)

	// Dashboard routes
	api.GET("/dashboard/stats", dashboardHandler.Stats)
}

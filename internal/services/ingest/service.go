package ingest

import (
	"fmt"
	"log"
	"math"
	"time"

	"record-reconciliation-backend/internal/apperrors"
	"record-reconciliation-backend/internal/models"
	"record-reconciliation-backend/internal/repository"
	"record-reconciliation-backend/internal/services/reconciliation"

	"github.com/google/uuid"
)

// idempotencyWindow is how long a completed upload blocks a re-upload
// of the same (filename, uploader) pair.
const idempotencyWindow = 24 * time.Hour

// RecordInput is one normalized row handed over by the parsing layer.
type RecordInput struct {
	TransactionID   string
	Amount          float64
	ReferenceNumber string
	Date            time.Time
}

type Service struct {
	records   *repository.RecordRepository
	jobs      *repository.JobRepository
	recon     *reconciliation.Service
	chunkSize int
}

func NewService(
	records *repository.RecordRepository,
	jobs *repository.JobRepository,
	recon *reconciliation.Service,
	chunkSize int,
) *Service {
	return &Service{records: records, jobs: jobs, recon: recon, chunkSize: chunkSize}
}

// BeginJob opens a new Processing job, or fails with ErrConflict when
// the same file from the same uploader already completed within the
// idempotency window. Nothing is written for rejected uploads.
func (s *Service) BeginJob(filename, uploadedBy string) (*models.UploadJob, error) {
	existing, err := s.jobs.FindCompletedSince(filename, uploadedBy, time.Now().Add(-idempotencyWindow))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("file %q was already uploaded and processed within the last 24 hours: %w",
			filename, apperrors.ErrConflict)
	}

	job := &models.UploadJob{
		ID:         uuid.New(),
		Filename:   filename,
		UploadedBy: uploadedBy,
		Status:     models.JobStatusProcessing,
		CreatedAt:  time.Now(),
	}
	if err := s.jobs.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

// ProcessUpload parses raw file bytes and ingests the rows. It is
// meant to run on its own goroutine after BeginJob returned: failures
// never reach the uploader directly, they land on the job status.
func (s *Service) ProcessUpload(jobID uuid.UUID, data []byte, mapping *ColumnMapping) {
	inputs, failed, err := ParseCSV(data, mapping)
	if err != nil {
		s.failJob(jobID, err)
		return
	}
	s.IngestRecords(jobID, inputs, failed)
}

// IngestRecords filters, stores and reconciles a batch of normalized
// rows. Rows without a transaction id or with a non-numeric amount
// are dropped and only counted. The insert is chunked; a mid-way
// failure leaves a partial record set and the job Failed.
func (s *Service) IngestRecords(jobID uuid.UUID, inputs []RecordInput, failed int) {
	records := make([]models.Record, 0, len(inputs))
	now := time.Now()
	for _, in := range inputs {
		if in.TransactionID == "" || math.IsNaN(in.Amount) {
			failed++
			continue
		}
		records = append(records, models.Record{
			ID:              uuid.New(),
			TransactionID:   in.TransactionID,
			Amount:          in.Amount,
			ReferenceNumber: in.ReferenceNumber,
			Date:            in.Date,
			JobID:           jobID,
			CreatedAt:       now,
		})
	}

	if err := s.records.CreateInBatches(records, s.chunkSize); err != nil {
		s.failJob(jobID, err)
		return
	}

	if err := s.recon.ReconcileJob(jobID); err != nil {
		// ReconcileJob already marked the job Failed
		return
	}

	if err := s.jobs.MarkCompleted(jobID, len(records), failed); err != nil {
		log.Printf("could not mark job %s completed: %v", jobID, err)
	}
}

func (s *Service) failJob(jobID uuid.UUID, cause error) {
	log.Printf("ingestion failed for job %s: %v", jobID, cause)
	if err := s.jobs.MarkFailed(jobID, cause.Error()); err != nil {
		log.Printf("could not mark job %s failed: %v", jobID, err)
	}
}

package repository

import (
	"errors"
	"fmt"
	"time"

	"record-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(job *models.UploadJob) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) GetByID(id uuid.UUID) (*models.UploadJob, error) {
	var job models.UploadJob
	if err := r.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) List() ([]models.UploadJob, error) {
	var jobs []models.UploadJob
	err := r.db.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

// FindCompletedSince returns a Completed job for the same
// (filename, uploadedBy) pair created after the cutoff, or (nil, nil).
// This backs the 24h duplicate-upload gate.
func (r *JobRepository) FindCompletedSince(filename, uploadedBy string, cutoff time.Time) (*models.UploadJob, error) {
	var job models.UploadJob
	err := r.db.
		Where("filename = ? AND uploaded_by = ? AND status = ? AND created_at > ?",
			filename, uploadedBy, models.JobStatusCompleted, cutoff).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkCompleted transitions Processing -> Completed. The WHERE clause
// guards the transition so it can only happen once.
func (r *JobRepository) MarkCompleted(id uuid.UUID, totalRecords, failedRecords int) error {
	now := time.Now()
	res := r.db.Model(&models.UploadJob{}).
		Where("id = ? AND status = ?", id, models.JobStatusProcessing).
		Updates(map[string]interface{}{
			"status":         models.JobStatusCompleted,
			"total_records":  totalRecords,
			"failed_records": failedRecords,
			"completed_at":   now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("job %s is not in Processing state", id)
	}
	return nil
}

// MarkFailed transitions Processing -> Failed, capturing the message.
func (r *JobRepository) MarkFailed(id uuid.UUID, message string) error {
	return r.db.Model(&models.UploadJob{}).
		Where("id = ? AND status = ?", id, models.JobStatusProcessing).
		Updates(map[string]interface{}{
			"status":        models.JobStatusFailed,
			"error_message": message,
		}).Error
}

// TotalRecords sums total_records over jobs matching the filter.
func (r *JobRepository) TotalRecords(f StatsFilter) (int64, error) {
	q := r.db.Model(&models.UploadJob{})
	if f.UploadedBy != "" {
		q = q.Where("uploaded_by = ?", f.UploadedBy)
	}
	if f.Start != nil {
		q = q.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("created_at <= ?", *f.End)
	}
	var total int64
	err := q.Select("COALESCE(SUM(total_records), 0)").Scan(&total).Error
	return total, err
}

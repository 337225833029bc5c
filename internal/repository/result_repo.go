package repository

import (
	"errors"
	"time"

	"record-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsFilter narrows aggregate reads. Zero values mean "no filter".
type StatsFilter struct {
	Start      *time.Time
	End        *time.Time
	Status     string
	UploadedBy string
}

type ResultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

var resultConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "record_id"}},
	DoUpdates: clause.AssignmentColumns([]string{"status", "matched_record_id", "notes", "updated_at"}),
}

// Upsert writes the verdict for a record, replacing any prior one.
// The unique index on record_id keeps verdicts 1:1 with records.
func (r *ResultRepository) Upsert(result *models.ReconciliationResult) error {
	return r.db.Clauses(resultConflict).Create(result).Error
}

// BulkUpsert writes one verdict per record in chunks.
func (r *ResultRepository) BulkUpsert(results []models.ReconciliationResult, chunkSize int) error {
	if len(results) == 0 {
		return nil
	}
	return r.db.Clauses(resultConflict).CreateInBatches(results, chunkSize).Error
}

func (r *ResultRepository) GetByRecord(recordID uuid.UUID) (*models.ReconciliationResult, error) {
	var result models.ReconciliationResult
	err := r.db.Preload("Record").First(&result, "record_id = ?", recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByJob pages through the verdicts of one job, record populated.
func (r *ResultRepository) ListByJob(jobID uuid.UUID, page, pageSize int) ([]models.ReconciliationResult, int64, error) {
	var total int64
	err := r.db.Model(&models.ReconciliationResult{}).
		Joins("JOIN records ON records.id = reconciliation_results.record_id").
		Where("records.job_id = ?", jobID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var results []models.ReconciliationResult
	err = r.db.
		Select("reconciliation_results.*").
		Joins("JOIN records ON records.id = reconciliation_results.record_id").
		Where("records.job_id = ?", jobID).
		Order("records.created_at, records.id").
		Limit(pageSize).
		Offset(pageSize * (page - 1)).
		Preload("Record").
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

type statusCount struct {
	Status string
	Count  int64
}

// CountsByJob groups the job's verdicts by status.
func (r *ResultRepository) CountsByJob(jobID uuid.UUID) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.Model(&models.ReconciliationResult{}).
		Joins("JOIN records ON records.id = reconciliation_results.record_id").
		Where("records.job_id = ?", jobID).
		Select("reconciliation_results.status AS status, COUNT(*) AS count").
		Group("reconciliation_results.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountsFiltered groups verdicts by status across all jobs matching
// the filter. Backs the dashboard aggregation.
func (r *ResultRepository) CountsFiltered(f StatsFilter) (map[string]int64, error) {
	jobs := r.db.Model(&models.UploadJob{}).Select("id")
	if f.UploadedBy != "" {
		jobs = jobs.Where("uploaded_by = ?", f.UploadedBy)
	}
	if f.Start != nil {
		jobs = jobs.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		jobs = jobs.Where("created_at <= ?", *f.End)
	}

	q := r.db.Model(&models.ReconciliationResult{}).
		Joins("JOIN records ON records.id = reconciliation_results.record_id").
		Where("records.job_id IN (?)", jobs)
	if f.Status != "" {
		q = q.Where("reconciliation_results.status = ?", f.Status)
	}

	var rows []statusCount
	err := q.
		Select("reconciliation_results.status AS status, COUNT(*) AS count").
		Group("reconciliation_results.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

package repository

import (
	"errors"

	"record-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// CreateInBatches inserts records in chunks to bound transaction size.
// Chunk boundaries are not atomic with each other.
func (r *RecordRepository) CreateInBatches(records []models.Record, chunkSize int) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.CreateInBatches(records, chunkSize).Error
}

func (r *RecordRepository) GetByID(id uuid.UUID) (*models.Record, error) {
	var rec models.Record
	if err := r.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) Save(rec *models.Record) error {
	return r.db.Save(rec).Error
}

func (r *RecordRepository) FindByJob(jobID uuid.UUID) ([]models.Record, error) {
	var recs []models.Record
	err := r.db.Where("job_id = ?", jobID).Order("created_at, id").Find(&recs).Error
	return recs, err
}

// Corpus lookups below return (nil, nil) when no record qualifies.
// Ties between multiple qualifying corpus records break on earliest
// (created_at, id) so classification is deterministic.

func (r *RecordRepository) FindExactMatch(transactionID string, amount float64, excludeJobID uuid.UUID) (*models.Record, error) {
	var rec models.Record
	err := r.db.
		Where("transaction_id = ? AND amount = ? AND job_id <> ?", transactionID, amount, excludeJobID).
		Order("created_at, id").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) FindByTransactionID(transactionID string, excludeJobID uuid.UUID) (*models.Record, error) {
	var rec models.Record
	err := r.db.
		Where("transaction_id = ? AND job_id <> ?", transactionID, excludeJobID).
		Order("created_at, id").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) FindByReferenceNumber(referenceNumber string, excludeJobID uuid.UUID) (*models.Record, error) {
	var rec models.Record
	err := r.db.
		Where("reference_number = ? AND job_id <> ?", referenceNumber, excludeJobID).
		Order("created_at, id").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

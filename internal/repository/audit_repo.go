package repository

import (
	"record-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append writes one event per changed field. Events are never updated
// or deleted afterwards.
func (r *AuditRepository) Append(events []models.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.Create(&events).Error
}

func (r *AuditRepository) ListByRecord(recordID uuid.UUID) ([]models.AuditEvent, error) {
	var events []models.AuditEvent
	err := r.db.
		Where("record_id = ?", recordID).
		Order("timestamp DESC").
		Find(&events).Error
	return events, err
}

func (r *AuditRepository) ListRecent(limit int) ([]models.AuditEvent, error) {
	var events []models.AuditEvent
	err := r.db.
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

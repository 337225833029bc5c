package models

import (
	"time"

	"github.com/google/uuid"
)

// Record is one normalized transaction line from an uploaded batch.
// Immutable after ingestion except for Amount and ReferenceNumber,
// which the correction flow may rewrite.
type Record struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID   string    `gorm:"index" json:"transactionId"`
	Amount          float64   `gorm:"index" json:"amount"`
	ReferenceNumber string    `gorm:"index" json:"referenceNumber"`
	Date            time.Time `json:"date"`
	JobID           uuid.UUID `gorm:"index" json:"jobId"`
	CreatedAt       time.Time `json:"createdAt"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusMatched          = "Matched"
	StatusPartiallyMatched = "PartiallyMatched"
	StatusDuplicate        = "Duplicate"
	StatusUnmatched        = "Unmatched"
)

// ReconciliationResult is the verdict for a single record, 1:1 by
// RecordID. Re-classification replaces the row rather than appending.
type ReconciliationResult struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecordID        uuid.UUID  `gorm:"uniqueIndex" json:"recordId"`
	Record          *Record    `gorm:"foreignKey:RecordID" json:"record,omitempty"`
	Status          string     `gorm:"index" json:"status"`
	MatchedRecordID *uuid.UUID `json:"matchedRecordId,omitempty"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

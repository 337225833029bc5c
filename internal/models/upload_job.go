package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusProcessing = "Processing"
	JobStatusCompleted  = "Completed"
	JobStatusFailed     = "Failed"
)

type UploadJob struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Filename      string     `gorm:"index" json:"filename"`
	UploadedBy    string     `gorm:"index" json:"uploadedBy"`
	Status        string     `gorm:"index" json:"status"`
	TotalRecords  int        `json:"totalRecords"`
	FailedRecords int        `json:"failedRecords"`
	ErrorMessage  string     `json:"errorMessage,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

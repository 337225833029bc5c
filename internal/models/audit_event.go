package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEvent records one field change on a record. Append-only: rows
// are never updated or deleted. A nil ChangedBy marks a system change.
type AuditEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RecordID  uuid.UUID      `gorm:"index" json:"recordId"`
	Field     string         `json:"field"`
	OldValue  datatypes.JSON `json:"oldValue"`
	NewValue  datatypes.JSON `json:"newValue"`
	ChangedBy *string        `json:"changedBy"`
	Timestamp time.Time      `gorm:"index" json:"timestamp"`
}

// FieldValue is the typed payload stored in OldValue/NewValue. Each
// correctable field has a known type, so values carry a discriminator
// instead of an untyped blob.
type FieldValue struct {
	Type  string      `json:"type"` // "number", "string" or "date"
	Value interface{} `json:"value"`
}

func NumberValue(v float64) datatypes.JSON {
	b, _ := json.Marshal(FieldValue{Type: "number", Value: v})
	return datatypes.JSON(b)
}

func StringValue(v string) datatypes.JSON {
	b, _ := json.Marshal(FieldValue{Type: "string", Value: v})
	return datatypes.JSON(b)
}

func DateValue(v time.Time) datatypes.JSON {
	b, _ := json.Marshal(FieldValue{Type: "date", Value: v.Format(time.RFC3339)})
	return datatypes.JSON(b)
}

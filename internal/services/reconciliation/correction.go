package reconciliation

import (
	"errors"
	"fmt"
	"time"

	"record-reconciliation-backend/internal/apperrors"
	"record-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CorrectionInput carries a manual edit. Nil fields were not supplied;
// a field counts as changed only when supplied and different from the
// stored value. Status forces the final verdict status, Notes the
// final notes, regardless of what re-matching computes.
type CorrectionInput struct {
	Amount          *float64
	ReferenceNumber *string
	Notes           *string
	Status          *string
}

// CorrectRecord applies a manual edit: mutate the record, append one
// audit event per changed field, re-classify, then replace the
// verdict. The ordering matters: the audit log reflects what was
// stored even if re-matching fails afterwards, in which case the
// error surfaces as *apperrors.RematchError rather than being
// swallowed. Corrections to the same record are serialized.
func (s *Service) CorrectRecord(recordID uuid.UUID, in CorrectionInput, actor *string) (*models.ReconciliationResult, error) {
	if in.Status != nil && !validStatus(*in.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", *in.Status, apperrors.ErrValidation)
	}

	mu := s.lockRecord(recordID)
	mu.Lock()
	defer mu.Unlock()

	rec, err := s.records.GetByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("record %s: %w", recordID, apperrors.ErrNotFound)
		}
		return nil, err
	}

	now := time.Now()
	var events []models.AuditEvent

	if in.Amount != nil && *in.Amount != rec.Amount {
		events = append(events, models.AuditEvent{
			ID:        uuid.New(),
			RecordID:  rec.ID,
			Field:     "amount",
			OldValue:  models.NumberValue(rec.Amount),
			NewValue:  models.NumberValue(*in.Amount),
			ChangedBy: actor,
			Timestamp: now,
		})
		rec.Amount = *in.Amount
	}
	if in.ReferenceNumber != nil && *in.ReferenceNumber != rec.ReferenceNumber {
		events = append(events, models.AuditEvent{
			ID:        uuid.New(),
			RecordID:  rec.ID,
			Field:     "referenceNumber",
			OldValue:  models.StringValue(rec.ReferenceNumber),
			NewValue:  models.StringValue(*in.ReferenceNumber),
			ChangedBy: actor,
			Timestamp: now,
		})
		rec.ReferenceNumber = *in.ReferenceNumber
	}

	if len(events) > 0 {
		if err := s.records.Save(rec); err != nil {
			return nil, err
		}
		if err := s.audits.Append(events); err != nil {
			return nil, err
		}
	}

	// From here on the mutation and audit trail are durable. Failures
	// below leave the verdict stale, never the correction lost.
	verdict, err := s.engine.Classify(rec, rec.JobID)
	if err != nil {
		return nil, &apperrors.RematchError{Err: err}
	}

	if in.Status != nil {
		verdict.Status = *in.Status
	}
	if in.Notes != nil {
		verdict.Notes = *in.Notes
	}

	result := models.ReconciliationResult{
		ID:              uuid.New(),
		RecordID:        rec.ID,
		Status:          verdict.Status,
		MatchedRecordID: verdict.MatchedRecordID,
		Notes:           verdict.Notes,
	}
	if err := s.results.Upsert(&result); err != nil {
		return nil, &apperrors.RematchError{Err: err}
	}

	stored, err := s.results.GetByRecord(rec.ID)
	if err != nil {
		return nil, &apperrors.RematchError{Err: err}
	}
	return stored, nil
}

func validStatus(status string) bool {
	switch status {
	case models.StatusMatched, models.StatusPartiallyMatched, models.StatusDuplicate, models.StatusUnmatched:
		return true
	}
	return false
}

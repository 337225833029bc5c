package repository

import (
	"path/filepath"
	"testing"
	"time"

	"record-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Record{},
		&models.UploadJob{},
		&models.ReconciliationResult{},
		&models.AuditEvent{},
	))
	return db
}

func TestAuditListByRecordNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditRepository(db)
	recordID := uuid.New()
	actor := "analyst1"

	base := time.Now().Add(-time.Hour)
	var events []models.AuditEvent
	for i := 0; i < 3; i++ {
		events = append(events, models.AuditEvent{
			ID:        uuid.New(),
			RecordID:  recordID,
			Field:     "amount",
			OldValue:  models.NumberValue(float64(i)),
			NewValue:  models.NumberValue(float64(i + 1)),
			ChangedBy: &actor,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}
	require.NoError(t, repo.Append(events))
	// unrelated record, must not show up
	require.NoError(t, repo.Append([]models.AuditEvent{{
		ID:        uuid.New(),
		RecordID:  uuid.New(),
		Field:     "referenceNumber",
		OldValue:  models.StringValue("A"),
		NewValue:  models.StringValue("B"),
		Timestamp: base,
	}}))

	got, err := repo.ListByRecord(recordID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		require.False(t, got[i].Timestamp.After(got[i-1].Timestamp))
	}
}

func TestAuditListRecentCapped(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditRepository(db)

	base := time.Now().Add(-time.Hour)
	var events []models.AuditEvent
	for i := 0; i < 10; i++ {
		events = append(events, models.AuditEvent{
			ID:        uuid.New(),
			RecordID:  uuid.New(),
			Field:     "amount",
			OldValue:  models.NumberValue(float64(i)),
			NewValue:  models.NumberValue(float64(i + 1)),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}
	require.NoError(t, repo.Append(events))

	got, err := repo.ListRecent(5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	// newest first, so the first entry is the latest write
	require.JSONEq(t, `{"type":"number","value":10}`, string(got[0].NewValue))
}

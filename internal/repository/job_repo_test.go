package repository

import (
	"testing"
	"time"

	"record-reconciliation-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProcessingJob(t *testing.T, db *gorm.DB, repo *JobRepository) *models.UploadJob {
	t.Helper()
	job := &models.UploadJob{
		ID:         uuid.New(),
		Filename:   "records.csv",
		UploadedBy: "alice",
		Status:     models.JobStatusProcessing,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(job))
	return job
}

func TestJobCompletesExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewJobRepository(db)
	job := seedProcessingJob(t, db, repo)

	require.NoError(t, repo.MarkCompleted(job.ID, 3, 1))

	// a second completion finds no Processing row to transition
	require.Error(t, repo.MarkCompleted(job.ID, 9, 9))

	// failing after completion is a no-op: terminal state sticks
	require.NoError(t, repo.MarkFailed(job.ID, "boom"))

	stored, err := repo.GetByID(job.ID)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusCompleted, stored.Status)
	require.Empty(t, stored.ErrorMessage)
	require.Equal(t, 3, stored.TotalRecords)
	require.Equal(t, 1, stored.FailedRecords)
}

func TestJobFailsExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewJobRepository(db)
	job := seedProcessingJob(t, db, repo)

	require.NoError(t, repo.MarkFailed(job.ID, "store unreachable"))

	// Failed is terminal: completion must not fire afterwards
	require.Error(t, repo.MarkCompleted(job.ID, 5, 0))

	stored, err := repo.GetByID(job.ID)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusFailed, stored.Status)
	require.Equal(t, "store unreachable", stored.ErrorMessage)
	require.Zero(t, stored.TotalRecords)
}

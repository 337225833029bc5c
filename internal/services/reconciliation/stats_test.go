package reconciliation

import (
	"fmt"
	"testing"
	"time"

	"record-reconciliation-backend/internal/models"
	"record-reconciliation-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCompletedJob(t *testing.T, svc *Service, db *gorm.DB, uploadedBy string, createdAt time.Time, records int) uuid.UUID {
	t.Helper()
	job := models.UploadJob{
		ID:         uuid.New(),
		Filename:   fmt.Sprintf("%s-%d.csv", uploadedBy, createdAt.Unix()),
		UploadedBy: uploadedBy,
		Status:     models.JobStatusProcessing,
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(&job).Error)
	require.NoError(t, svc.jobs.MarkCompleted(job.ID, records, 0))
	return job.ID
}

func TestListResultsPagination(t *testing.T) {
	svc, db := newTestService(t)
	jobID := uuid.New()
	for i := 0; i < 5; i++ {
		seedRecord(t, db, jobID, fmt.Sprintf("T%d", i), float64(i+1), fmt.Sprintf("R%d", i))
	}
	require.NoError(t, svc.ReconcileJob(jobID))

	page, err := svc.ListResults(jobID, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 3, page.Pages)
	require.EqualValues(t, 5, page.Total)
	require.Len(t, page.Results, 2)
	for _, res := range page.Results {
		require.NotNil(t, res.Record)
		require.Equal(t, jobID, res.Record.JobID)
	}

	last, err := svc.ListResults(jobID, 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Results, 1)
}

func TestJobStatsAccuracy(t *testing.T) {
	svc, db := newTestService(t)
	jobID := uuid.New()

	seedRecord(t, db, uuid.New(), "T1", 100, "") // corpus
	seedRecord(t, db, jobID, "T1", 100, "R1")
	seedRecord(t, db, jobID, "T8", 5, "R8")
	seedRecord(t, db, jobID, "T9", 5, "R9")
	seedRecord(t, db, jobID, "D1", 7, "RA")
	seedRecord(t, db, jobID, "D1", 8, "RB")

	require.NoError(t, svc.ReconcileJob(jobID))

	stats, err := svc.JobStats(jobID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.Matched)
	require.EqualValues(t, 2, stats.Unmatched)
	require.EqualValues(t, 2, stats.Duplicate)
	require.EqualValues(t, 5, stats.Total)
	require.InDelta(t, 20.0, stats.Accuracy, 0.001)
}

func TestJobStatsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	stats, err := svc.JobStats(uuid.New())
	require.NoError(t, err)
	require.Zero(t, stats.Total)
	require.Zero(t, stats.Accuracy)
}

func TestDashboardStatsFilters(t *testing.T) {
	svc, db := newTestService(t)

	seedRecord(t, db, uuid.New(), "T1", 100, "") // corpus

	aliceJob := seedCompletedJob(t, svc, db, "alice", time.Now().Add(-48*time.Hour), 2)
	seedRecord(t, db, aliceJob, "T1", 100, "R1")
	seedRecord(t, db, aliceJob, "T2", 1, "R2")
	require.NoError(t, svc.ReconcileJob(aliceJob))

	bobJob := seedCompletedJob(t, svc, db, "bob", time.Now(), 1)
	seedRecord(t, db, bobJob, "T3", 2, "R3")
	require.NoError(t, svc.ReconcileJob(bobJob))

	all, err := svc.DashboardStats(repository.StatsFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 3, all.TotalRecords)
	require.EqualValues(t, 1, all.Matched)
	require.EqualValues(t, 2, all.Unmatched)
	require.InDelta(t, 100.0/3, all.Accuracy, 0.001)

	alice, err := svc.DashboardStats(repository.StatsFilter{UploadedBy: "alice"})
	require.NoError(t, err)
	require.EqualValues(t, 2, alice.TotalRecords)
	require.EqualValues(t, 1, alice.Matched)
	require.EqualValues(t, 1, alice.Unmatched)
	require.InDelta(t, 50.0, alice.Accuracy, 0.001)

	cutoff := time.Now().Add(-24 * time.Hour)
	recent, err := svc.DashboardStats(repository.StatsFilter{Start: &cutoff})
	require.NoError(t, err)
	require.EqualValues(t, 1, recent.TotalRecords)
	require.EqualValues(t, 0, recent.Matched)
	require.EqualValues(t, 1, recent.Unmatched)

	matchedOnly, err := svc.DashboardStats(repository.StatsFilter{Status: models.StatusMatched})
	require.NoError(t, err)
	require.EqualValues(t, 1, matchedOnly.Matched)
	require.EqualValues(t, 0, matchedOnly.Unmatched)
}

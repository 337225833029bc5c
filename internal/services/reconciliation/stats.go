package reconciliation

import (
	"math"

	"record-reconciliation-backend/internal/models"
	"record-reconciliation-backend/internal/repository"

	"github.com/google/uuid"
)

type ResultPage struct {
	Results []models.ReconciliationResult `json:"results"`
	Page    int                           `json:"page"`
	Pages   int                           `json:"pages"`
	Total   int64                         `json:"total"`
}

type JobStats struct {
	Matched          int64   `json:"matched"`
	PartiallyMatched int64   `json:"partiallyMatched"`
	Duplicate        int64   `json:"duplicate"`
	Unmatched        int64   `json:"unmatched"`
	Total            int64   `json:"total"`
	Accuracy         float64 `json:"accuracy"`
}

type DashboardStats struct {
	TotalRecords     int64   `json:"totalRecords"`
	Matched          int64   `json:"matched"`
	PartiallyMatched int64   `json:"partiallyMatched"`
	Duplicate        int64   `json:"duplicate"`
	Unmatched        int64   `json:"unmatched"`
	Accuracy         float64 `json:"accuracy"`
}

// ListResults pages through a job's verdicts, records populated.
func (s *Service) ListResults(jobID uuid.UUID, page, pageSize int) (ResultPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	results, total, err := s.results.ListByJob(jobID, page, pageSize)
	if err != nil {
		return ResultPage{}, err
	}
	return ResultPage{
		Results: results,
		Page:    page,
		Pages:   int(math.Ceil(float64(total) / float64(pageSize))),
		Total:   total,
	}, nil
}

// JobStats aggregates one job's verdicts by status. Accuracy is
// matched over everything classified, 0 when nothing is.
func (s *Service) JobStats(jobID uuid.UUID) (JobStats, error) {
	counts, err := s.results.CountsByJob(jobID)
	if err != nil {
		return JobStats{}, err
	}
	return jobStatsFromCounts(counts), nil
}

// DashboardStats aggregates verdicts across all jobs matching the
// filter, plus the record total over those jobs.
func (s *Service) DashboardStats(f repository.StatsFilter) (DashboardStats, error) {
	counts, err := s.results.CountsFiltered(f)
	if err != nil {
		return DashboardStats{}, err
	}
	totalRecords, err := s.jobs.TotalRecords(f)
	if err != nil {
		return DashboardStats{}, err
	}
	js := jobStatsFromCounts(counts)
	return DashboardStats{
		TotalRecords:     totalRecords,
		Matched:          js.Matched,
		PartiallyMatched: js.PartiallyMatched,
		Duplicate:        js.Duplicate,
		Unmatched:        js.Unmatched,
		Accuracy:         js.Accuracy,
	}, nil
}

func jobStatsFromCounts(counts map[string]int64) JobStats {
	stats := JobStats{
		Matched:          counts[models.StatusMatched],
		PartiallyMatched: counts[models.StatusPartiallyMatched],
		Duplicate:        counts[models.StatusDuplicate],
		Unmatched:        counts[models.StatusUnmatched],
	}
	for _, c := range counts {
		stats.Total += c
	}
	if stats.Total > 0 {
		stats.Accuracy = float64(stats.Matched) / float64(stats.Total) * 100
	}
	return stats
}

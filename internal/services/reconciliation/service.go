package reconciliation

import (
	"log"
	"sync"

	"record-reconciliation-backend/internal/models"
	"record-reconciliation-backend/internal/repository"
	"record-reconciliation-backend/internal/services/matching"

	"github.com/google/uuid"
)

// classifyWorkers bounds concurrent corpus lookups during a batch run.
const classifyWorkers = 4

const resultChunkSize = 1000

type Service struct {
	records *repository.RecordRepository
	results *repository.ResultRepository
	jobs    *repository.JobRepository
	audits  *repository.AuditRepository
	engine  *matching.Engine

	recordLocks sync.Map // record id -> *sync.Mutex
}

func NewService(
	records *repository.RecordRepository,
	results *repository.ResultRepository,
	jobs *repository.JobRepository,
	audits *repository.AuditRepository,
	engine *matching.Engine,
) *Service {
	return &Service{
		records: records,
		results: results,
		jobs:    jobs,
		audits:  audits,
		engine:  engine,
	}
}

// ReconcileJob classifies every record of a job against the corpus and
// persists one verdict per record. A transaction id repeated within
// the job itself overrides whatever the engine computed: in-batch
// duplication takes precedence over cross-batch classification.
//
// Re-running against an unchanged corpus is idempotent; after the
// corpus has grown, verdicts may legitimately change. On failure the
// job is marked Failed and verdicts already written stay as they are.
func (s *Service) ReconcileJob(jobID uuid.UUID) error {
	records, err := s.records.FindByJob(jobID)
	if err != nil {
		return s.failJob(jobID, err)
	}

	txCounts := make(map[string]int, len(records))
	for _, rec := range records {
		txCounts[rec.TransactionID]++
	}

	verdicts := make([]matching.Verdict, len(records))
	sem := make(chan struct{}, classifyWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var classifyErr error

	for i := range records {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			v, err := s.engine.Classify(&records[i], jobID)
			if err != nil {
				mu.Lock()
				if classifyErr == nil {
					classifyErr = err
				}
				mu.Unlock()
				return
			}
			verdicts[i] = v
		}(i)
	}
	wg.Wait()

	if classifyErr != nil {
		return s.failJob(jobID, classifyErr)
	}

	results := make([]models.ReconciliationResult, len(records))
	for i, rec := range records {
		v := verdicts[i]
		if txCounts[rec.TransactionID] > 1 {
			v.Status = models.StatusDuplicate
			v.Notes = "Duplicate transaction ID in uploaded file"
		}
		results[i] = models.ReconciliationResult{
			ID:              uuid.New(),
			RecordID:        rec.ID,
			Status:          v.Status,
			MatchedRecordID: v.MatchedRecordID,
			Notes:           v.Notes,
		}
	}

	if err := s.results.BulkUpsert(results, resultChunkSize); err != nil {
		return s.failJob(jobID, err)
	}
	return nil
}

func (s *Service) failJob(jobID uuid.UUID, cause error) error {
	log.Printf("reconciliation failed for job %s: %v", jobID, cause)
	if err := s.jobs.MarkFailed(jobID, cause.Error()); err != nil {
		log.Printf("could not mark job %s failed: %v", jobID, err)
	}
	return cause
}

// lockRecord serializes corrections per record. Entries are kept for
// the process lifetime: one mutex per corrected record, and
// corrections are infrequent. Removing them on unlock would let a
// waiter and a newcomer hold different mutexes for the same record.
func (s *Service) lockRecord(id uuid.UUID) *sync.Mutex {
	v, _ := s.recordLocks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

package matching

import (
	"fmt"
	"math"

	"record-reconciliation-backend/internal/config"
	"record-reconciliation-backend/internal/models"

	"github.com/google/uuid"
)

// CorpusStore is the read side of the record store the engine
// classifies against. Lookups exclude the given job and must return
// (nil, nil) when nothing qualifies; ties break on earliest creation.
type CorpusStore interface {
	FindExactMatch(transactionID string, amount float64, excludeJobID uuid.UUID) (*models.Record, error)
	FindByTransactionID(transactionID string, excludeJobID uuid.UUID) (*models.Record, error)
	FindByReferenceNumber(referenceNumber string, excludeJobID uuid.UUID) (*models.Record, error)
}

// Verdict is the outcome of classifying one record. The engine never
// persists it; that is the caller's job.
type Verdict struct {
	Status          string
	MatchedRecordID *uuid.UUID
	Notes           string
}

// Engine classifies records against the corpus. It owns no state
// beyond its configuration and is safe for concurrent use.
type Engine struct {
	corpus CorpusStore
	rules  config.MatchingRules
}

func NewEngine(corpus CorpusStore, rules config.MatchingRules) *Engine {
	return &Engine{corpus: corpus, rules: rules}
}

// Classify runs the rules in fixed priority order; the first rule that
// fires wins. Records of excludeJobID are not part of the corpus.
//
//  1. exact match: same transactionId and amount -> Matched
//  2. duplicate: same transactionId, different data -> Duplicate
//  3. partial: same referenceNumber, amount within variance -> PartiallyMatched
//  4. otherwise Unmatched
func (e *Engine) Classify(rec *models.Record, excludeJobID uuid.UUID) (Verdict, error) {
	if e.rules.ExactMatch.Enabled {
		found, err := e.corpus.FindExactMatch(rec.TransactionID, rec.Amount, excludeJobID)
		if err != nil {
			return Verdict{}, err
		}
		if found != nil {
			return Verdict{Status: models.StatusMatched, MatchedRecordID: &found.ID}, nil
		}
	}

	if e.rules.DuplicateCheck.Enabled {
		found, err := e.corpus.FindByTransactionID(rec.TransactionID, excludeJobID)
		if err != nil {
			return Verdict{}, err
		}
		if found != nil {
			return Verdict{
				Status: models.StatusDuplicate,
				Notes:  "Transaction ID exists with different data",
			}, nil
		}
	}

	if e.rules.PartialMatch.Enabled {
		found, err := e.corpus.FindByReferenceNumber(rec.ReferenceNumber, excludeJobID)
		if err != nil {
			return Verdict{}, err
		}
		if found != nil {
			variance := math.Abs((found.Amount - rec.Amount) / found.Amount)
			if variance <= e.rules.PartialMatch.Variance {
				return Verdict{
					Status:          models.StatusPartiallyMatched,
					MatchedRecordID: &found.ID,
					Notes:           fmt.Sprintf("Amount variance: %.2f%%", variance*100),
				}, nil
			}
		}
	}

	return Verdict{Status: models.StatusUnmatched}, nil
}

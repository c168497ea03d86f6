package domain

import (
	"context"
	"time"
)

// HistoricalOutcome records the caller's decision on a previously issued
// recommendation. Outcomes seed the bandit exploration layer.
type HistoricalOutcome struct {
	Type     RecommendationType `json:"type"`
	Accepted bool               `json:"accepted"`
}

// OutcomeRecord is a stored outcome with bookkeeping fields.
type OutcomeRecord struct {
	Type       RecommendationType `json:"type"`
	Accepted   bool               `json:"accepted"`
	RunID      string             `json:"run_id,omitempty"`
	RecordedAt time.Time          `json:"recorded_at"`
}

// OutcomeSummary holds per-type accept and reject counts.
type OutcomeSummary struct {
	Accepted map[RecommendationType]int `json:"accepted"`
	Rejected map[RecommendationType]int `json:"rejected"`
}

//go:generate mockgen -source=outcome.go -destination=outcome_mock.go -package=domain

// OutcomeRepository stores recommendation decisions. The bandit layer only
// needs a consistent read-only snapshot at call time; outcomes arriving
// after the read do not affect the computation.
type OutcomeRepository interface {
	RecordOutcome(ctx context.Context, record *OutcomeRecord) error
	GetOutcomes(ctx context.Context) ([]HistoricalOutcome, error)
	GetSummary(ctx context.Context) (*OutcomeSummary, error)
}

package domain

import (
	"context"
	"time"
)

// RunRecord is the analytics record for a single engine invocation.
type RunRecord struct {
	RunID              string
	RanAt              time.Time
	DeliveryConfidence int
	TaskCount          int
	ActiveTaskCount    int
	RiskCount          int
	CriticalRiskCount  int
	Recommendations    int
	Duration           time.Duration
}

// RecommendationRecord is the per-candidate analytics record.
type RecommendationRecord struct {
	RunID        string
	Type         RecommendationType
	OverallScore float64
	RawScore     float64
}

// RunRecorder sinks per-run analytics to a time-series store. Recording is
// best effort; implementations log and continue on write failures.
type RunRecorder interface {
	RecordRun(ctx context.Context, record *RunRecord) error
	RecordRecommendations(ctx context.Context, records []RecommendationRecord) error
	Flush(ctx context.Context) error
	Close() error
}

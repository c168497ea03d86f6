package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planvane/allocation-advisor/internal/domain"
)

const (
	outcomeLogKey    = "advisor:outcomes:log"
	acceptedCountKey = "advisor:outcomes:accepted"
	rejectedCountKey = "advisor:outcomes:rejected"

	// Outcomes older than the retention window stop influencing the
	// bandit layer; the TTL refreshes on every write.
	outcomeRetention = 90 * 24 * time.Hour

	// recentOutcomeLimit bounds how much history feeds one bandit pass.
	recentOutcomeLimit = 500
)

type outcomeRecord struct {
	Type       string    `json:"type"`
	Accepted   bool      `json:"accepted"`
	RunID      string    `json:"run_id,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type outcomeRepository struct {
	client *redis.Client
}

func NewOutcomeRepository(client *redis.Client) domain.OutcomeRepository {
	return &outcomeRepository{
		client: client,
	}
}

func (r *outcomeRepository) RecordOutcome(ctx context.Context, record *domain.OutcomeRecord) error {
	if record == nil {
		return ErrInvalidOutcomeData
	}

	stored := outcomeRecord{
		Type:       string(record.Type),
		Accepted:   record.Accepted,
		RunID:      record.RunID,
		RecordedAt: record.RecordedAt,
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return ErrInvalidOutcomeData
	}

	countKey := rejectedCountKey
	if record.Accepted {
		countKey = acceptedCountKey
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, outcomeLogKey, data)
	pipe.LTrim(ctx, outcomeLogKey, 0, recentOutcomeLimit-1)
	pipe.HIncrBy(ctx, countKey, string(record.Type), 1)
	pipe.Expire(ctx, outcomeLogKey, outcomeRetention)
	pipe.Expire(ctx, countKey, outcomeRetention)

	_, err = pipe.Exec(ctx)
	return err
}

// GetOutcomes returns the retained outcome log, most recent first.
func (r *outcomeRepository) GetOutcomes(ctx context.Context) ([]domain.HistoricalOutcome, error) {
	entries, err := r.client.LRange(ctx, outcomeLogKey, 0, recentOutcomeLimit-1).Result()
	if err != nil {
		return nil, err
	}

	outcomes := make([]domain.HistoricalOutcome, 0, len(entries))
	for _, entry := range entries {
		var record outcomeRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			// Skip records a previous version wrote in another shape.
			continue
		}
		outcomes = append(outcomes, domain.HistoricalOutcome{
			Type:     domain.RecommendationType(record.Type),
			Accepted: record.Accepted,
		})
	}

	return outcomes, nil
}

func (r *outcomeRepository) GetSummary(ctx context.Context) (*domain.OutcomeSummary, error) {
	pipe := r.client.Pipeline()
	acceptedCmd := pipe.HGetAll(ctx, acceptedCountKey)
	rejectedCmd := pipe.HGetAll(ctx, rejectedCountKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	summary := &domain.OutcomeSummary{
		Accepted: make(map[domain.RecommendationType]int),
		Rejected: make(map[domain.RecommendationType]int),
	}

	for field, value := range acceptedCmd.Val() {
		if n, err := strconv.Atoi(value); err == nil {
			summary.Accepted[domain.RecommendationType(field)] = n
		}
	}
	for field, value := range rejectedCmd.Val() {
		if n, err := strconv.Atoi(value); err == nil {
			summary.Rejected[domain.RecommendationType(field)] = n
		}
	}

	return summary, nil
}

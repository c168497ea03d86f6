//go:build gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/planvane/allocation-advisor/internal/domain"
)

type bigQueryRunRecord struct {
	RecordedAt         time.Time `bigquery:"recorded_at"`
	RunID              string    `bigquery:"run_id"`
	RanAt              time.Time `bigquery:"ran_at"`
	DeliveryConfidence int64     `bigquery:"delivery_confidence"`
	TaskCount          int64     `bigquery:"task_count"`
	ActiveTaskCount    int64     `bigquery:"active_task_count"`
	RiskCount          int64     `bigquery:"risk_count"`
	CriticalRiskCount  int64     `bigquery:"critical_risk_count"`
	Recommendations    int64     `bigquery:"recommendations"`
	DurationMs         int64     `bigquery:"duration_ms"`
}

type bigQueryRecommendationRecord struct {
	RecordedAt   time.Time `bigquery:"recorded_at"`
	RunID        string    `bigquery:"run_id"`
	Type         string    `bigquery:"type"`
	OverallScore float64   `bigquery:"overall_score"`
	RawScore     float64   `bigquery:"raw_score"`
}

type bigQueryRecorder struct {
	client      *bigquery.Client
	runInserter *bigquery.Inserter
	recInserter *bigquery.Inserter
	dataset     string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run analytics recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, run analytics recording disabled")
		return NewNoopRecorder(), nil
	}

	var opts []option.ClientOption
	if cfg.BigQueryCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.BigQueryCredentialsFile))
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, run analytics recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)
	runInserter := dataset.Table(cfg.BigQueryTable).Inserter()
	recInserter := dataset.Table(cfg.BigQueryTable + "_recommendations").Inserter()

	slog.InfoContext(ctx, "run analytics recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:      client,
		runInserter: runInserter,
		recInserter: recInserter,
		dataset:     cfg.BigQueryDataset,
	}, nil
}

func (r *bigQueryRecorder) RecordRun(ctx context.Context, record *domain.RunRecord) error {
	if record == nil {
		return nil
	}

	row := &bigQueryRunRecord{
		RecordedAt:         time.Now(),
		RunID:              record.RunID,
		RanAt:              record.RanAt,
		DeliveryConfidence: int64(record.DeliveryConfidence),
		TaskCount:          int64(record.TaskCount),
		ActiveTaskCount:    int64(record.ActiveTaskCount),
		RiskCount:          int64(record.RiskCount),
		CriticalRiskCount:  int64(record.CriticalRiskCount),
		Recommendations:    int64(record.Recommendations),
		DurationMs:         record.Duration.Milliseconds(),
	}

	if err := r.runInserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert run record to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordRecommendations(ctx context.Context, records []domain.RecommendationRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*bigQueryRecommendationRecord, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQueryRecommendationRecord{
			RecordedAt:   now,
			RunID:        record.RunID,
			Type:         string(record.Type),
			OverallScore: record.OverallScore,
			RawScore:     record.RawScore,
		})
	}

	if err := r.recInserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert recommendation records to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

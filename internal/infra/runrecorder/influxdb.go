//go:build !gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/planvane/allocation-advisor/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run analytics recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, run analytics recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "run analytics recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordRun(ctx context.Context, record *domain.RunRecord) error {
	if record == nil {
		return nil
	}

	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	point := influxdb2.NewPoint(
		"advisor_run",
		map[string]string{
			"run_id": runID,
		},
		map[string]any{
			"delivery_confidence": record.DeliveryConfidence,
			"task_count":          record.TaskCount,
			"active_task_count":   record.ActiveTaskCount,
			"risk_count":          record.RiskCount,
			"critical_risk_count": record.CriticalRiskCount,
			"recommendations":     record.Recommendations,
			"duration_ms":         record.Duration.Milliseconds(),
		},
		record.RanAt,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write run record to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", runID),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordRecommendations(ctx context.Context, records []domain.RecommendationRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		runID := record.RunID
		if runID == "" {
			runID = "default"
		}

		// Use real time as timestamp to prevent overwrites between records
		pointTime := time.Now()

		point := influxdb2.NewPoint(
			"advisor_recommendation",
			map[string]string{
				"run_id": runID,
				"type":   string(record.Type),
			},
			map[string]any{
				"overall_score": record.OverallScore,
				"raw_score":     record.RawScore,
			},
			pointTime,
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write recommendation record to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("run_id", runID),
				slog.String("type", string(record.Type)),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	engineMeterName = "recommendation.engine"
)

type EngineMetrics struct {
	cyclesTotal             metric.Int64Counter
	candidatesGenerated     metric.Int64Counter
	recommendationsReturned metric.Int64Counter
	deliveryConfidence      metric.Float64Histogram
	generatorCandidates     metric.Int64Counter
	generatorDuration       metric.Float64Histogram
	outcomesRecorded        metric.Int64Counter
}

func NewEngineMetrics() (*EngineMetrics, error) {
	meter := otel.Meter(engineMeterName)

	cyclesTotal, err := meter.Int64Counter(
		"engine_cycles_total",
		metric.WithDescription("Total number of advisory cycles executed"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	candidatesGenerated, err := meter.Int64Counter(
		"engine_candidates_generated_total",
		metric.WithDescription("Total candidate recommendations produced before ranking"),
		metric.WithUnit("{recommendation}"),
	)
	if err != nil {
		return nil, err
	}

	recommendationsReturned, err := meter.Int64Counter(
		"engine_recommendations_returned_total",
		metric.WithDescription("Total recommendations returned after ranking and capping"),
		metric.WithUnit("{recommendation}"),
	)
	if err != nil {
		return nil, err
	}

	deliveryConfidence, err := meter.Float64Histogram(
		"engine_delivery_confidence",
		metric.WithDescription("Delivery confidence score per advisory cycle"),
		metric.WithUnit("{score}"),
		metric.WithExplicitBucketBoundaries(
			10, 20, 30, 40, 50, 60, 70, 80, 90,
		),
	)
	if err != nil {
		return nil, err
	}

	generatorCandidates, err := meter.Int64Counter(
		"engine_generator_candidates_total",
		metric.WithDescription("Candidate recommendations per generator"),
		metric.WithUnit("{recommendation}"),
	)
	if err != nil {
		return nil, err
	}

	generatorDuration, err := meter.Float64Histogram(
		"engine_generator_duration_seconds",
		metric.WithDescription("Time spent in each candidate generator"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
		),
	)
	if err != nil {
		return nil, err
	}

	outcomesRecorded, err := meter.Int64Counter(
		"engine_outcomes_recorded_total",
		metric.WithDescription("Accept and reject outcomes recorded against recommendations"),
		metric.WithUnit("{outcome}"),
	)
	if err != nil {
		return nil, err
	}

	return &EngineMetrics{
		cyclesTotal:             cyclesTotal,
		candidatesGenerated:     candidatesGenerated,
		recommendationsReturned: recommendationsReturned,
		deliveryConfidence:      deliveryConfidence,
		generatorCandidates:     generatorCandidates,
		generatorDuration:       generatorDuration,
		outcomesRecorded:        outcomesRecorded,
	}, nil
}

func (m *EngineMetrics) RecordCycle(ctx context.Context, generated, returned, confidence int) {
	m.cyclesTotal.Add(ctx, 1)
	m.candidatesGenerated.Add(ctx, int64(generated))
	m.recommendationsReturned.Add(ctx, int64(returned))
	m.deliveryConfidence.Record(ctx, float64(confidence))
}

func (m *EngineMetrics) RecordGenerator(ctx context.Context, generator string, count int, duration time.Duration) {
	m.generatorCandidates.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("generator", generator),
	))
	m.generatorDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("generator", generator),
	))
}

func (m *EngineMetrics) RecordOutcome(ctx context.Context, recommendationType string, accepted bool) {
	m.outcomesRecorded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", recommendationType),
		attribute.Bool("accepted", accepted),
	))
}

package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const engineTracerName = "github.com/planvane/allocation-advisor/internal/service/recommend"

func EngineTracer() trace.Tracer {
	return otel.Tracer(engineTracerName)
}

func StartAdvisoryCycleSpan(ctx context.Context, runID string, taskCount, memberCount int) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "engine.advisory_cycle",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("snapshot.task_count", taskCount),
			attribute.Int("snapshot.member_count", memberCount),
		),
	)
}

func StartAnalysisSpan(ctx context.Context, taskCount, memberCount int) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "engine.analysis",
		trace.WithAttributes(
			attribute.Int("snapshot.task_count", taskCount),
			attribute.Int("snapshot.member_count", memberCount),
		),
	)
}

func StartOutcomeFetchSpan(ctx context.Context) (context.Context, trace.Span) {
	return EngineTracer().Start(ctx, "engine.outcome_fetch",
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordAdvisoryCycleResult(span trace.Span, generated, returned, confidence, riskCount int, err error) {
	span.SetAttributes(
		attribute.Int("cycle.generated_count", generated),
		attribute.Int("cycle.returned_count", returned),
		attribute.Int("cycle.delivery_confidence", confidence),
		attribute.Int("cycle.risk_count", riskCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

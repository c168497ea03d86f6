package runrecorder

import (
	"context"

	"github.com/planvane/allocation-advisor/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.RunRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordRun(_ context.Context, _ *domain.RunRecord) error {
	return nil
}

func (n *noopRecorder) RecordRecommendations(_ context.Context, _ []domain.RecommendationRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}

package recommend

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/service/confidence"
	"github.com/planvane/allocation-advisor/internal/service/risk"
	"github.com/planvane/allocation-advisor/internal/service/skills"
	"github.com/planvane/allocation-advisor/internal/service/utilization"
)

func newTestService(t *testing.T, repo domain.OutcomeRepository) *Service {
	t.Helper()
	matcher := skills.NewMatcher(nil)
	return NewService(
		NewGenerators(matcher),
		NewExplorer(&config.BanditConfig{
			PriorAlpha:     2.0,
			PriorBeta:      2.0,
			NoiseHalfWidth: 0.075,
			ExploitWeight:  0.8,
			ExploreWeight:  0.2,
			Seed:           42,
		}),
		risk.NewScorer(),
		confidence.NewEstimator(),
		utilization.NewClassifier(30),
		repo,
		nil,
		testEngineConfig(),
	)
}

func unevenTeamState() *domain.PlanningState {
	return &domain.PlanningState{
		Tasks: []domain.TaskInfo{
			{
				ID:         "t1",
				Number:     1,
				Title:      "Fix frontend login page",
				Status:     domain.StatusInProgress,
				Priority:   domain.PriorityMedium,
				AssigneeID: "u1",
			},
			{
				ID:       "t2",
				Number:   2,
				Title:    "Escalation hotfix",
				Status:   domain.StatusTodo,
				Priority: domain.PriorityCritical,
				DueDate:  timePtr(testNow.AddDate(0, 0, -4)),
			},
		},
		Team: []domain.CapacityInfo{
			{UserID: "u1", UserName: "mara", UtilizationPercent: 150, BurnoutRisk: 85, Velocity: 1.0},
			{UserID: "u2", UserName: "jun", UtilizationPercent: 40, BurnoutRisk: 20, Velocity: 1.0,
				Skills: []string{"frontend", "react", "ui", "css", "tailwind"}},
		},
	}
}

func TestRecommendFullCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockOutcomeRepository(ctrl)
	repo.EXPECT().GetOutcomes(gomock.Any()).Return([]domain.HistoricalOutcome{
		{Type: domain.RecommendationReassignTask, Accepted: true},
	}, nil)

	svc := newTestService(t, repo)
	state := unevenTeamState()

	result, err := svc.Recommend(context.Background(), state, nil, testNow, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.GeneratedCount == 0 {
		t.Fatal("expected candidates from the uneven snapshot")
	}
	if len(result.Recommendations) == 0 {
		t.Fatal("expected ranked recommendations")
	}
	if len(result.Recommendations) > 5 {
		t.Errorf("expected at most 5 recommendations, got %d", len(result.Recommendations))
	}
	for i := 1; i < len(result.Recommendations); i++ {
		if result.Recommendations[i].Impact.OverallScore > result.Recommendations[i-1].Impact.OverallScore {
			t.Errorf("recommendations not sorted by descending score at %d", i)
		}
	}

	// The overdue unassigned critical task must surface as a risk.
	if len(result.Risks) == 0 {
		t.Error("expected delivery risks")
	}
	if result.DeliveryConfidence <= 0 || result.DeliveryConfidence >= 100 {
		t.Errorf("expected mid-range confidence, got %d", result.DeliveryConfidence)
	}
	if len(result.Utilization) != 2 {
		t.Errorf("expected utilization for both members, got %d", len(result.Utilization))
	}

	// Analysis results are written back onto the snapshot.
	if state.DeliveryConfidence != result.DeliveryConfidence {
		t.Errorf("snapshot confidence %d does not match result %d",
			state.DeliveryConfidence, result.DeliveryConfidence)
	}
}

func TestRecommendSurvivesOutcomeFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockOutcomeRepository(ctrl)
	repo.EXPECT().GetOutcomes(gomock.Any()).Return(nil, errors.New("redis connection refused"))

	svc := newTestService(t, repo)

	result, err := svc.Recommend(context.Background(), unevenTeamState(), nil, testNow, "run-2")
	if err != nil {
		t.Fatalf("fetch failure must not fail the cycle: %v", err)
	}
	if len(result.Recommendations) == 0 {
		t.Error("expected recommendations despite missing history")
	}
}

func TestRecommendAppliesOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockOutcomeRepository(ctrl)
	repo.EXPECT().GetOutcomes(gomock.Any()).Return(nil, nil)

	svc := newTestService(t, repo)
	override := &config.EngineConfig{MaxChangesPerCycle: 1}

	result, err := svc.Recommend(context.Background(), unevenTeamState(), override, testNow, "run-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recommendations) != 1 {
		t.Errorf("expected override cap of 1, got %d", len(result.Recommendations))
	}
	if result.GeneratedCount <= 1 {
		t.Errorf("expected generated count to exceed the cap, got %d", result.GeneratedCount)
	}
}

func TestRecommendAppliesIdleThresholdOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockOutcomeRepository(ctrl)
	repo.EXPECT().GetOutcomes(gomock.Any()).Return(nil, nil)

	svc := newTestService(t, repo)
	override := &config.EngineConfig{IdleThresholdPercent: 60}

	result, err := svc.Recommend(context.Background(), unevenTeamState(), override, testNow, "run-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// u2 sits at 40% utilization: normal at the default threshold of 30,
	// idle once the override raises it to 60.
	for _, u := range result.Utilization {
		if u.UserID != "u2" {
			continue
		}
		if u.Status != domain.UtilizationIdle {
			t.Errorf("expected u2 idle under the raised threshold, got %v", u.Status)
		}
		return
	}
	t.Fatal("expected a utilization entry for u2")
}

func TestRecommendEmptySnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockOutcomeRepository(ctrl)
	repo.EXPECT().GetOutcomes(gomock.Any()).Return(nil, nil)

	svc := newTestService(t, repo)

	result, err := svc.Recommend(context.Background(), &domain.PlanningState{}, nil, testNow, "run-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recommendations) != 0 || len(result.Risks) != 0 {
		t.Errorf("expected empty result, got %d recs and %d risks",
			len(result.Recommendations), len(result.Risks))
	}
	if result.DeliveryConfidence != 100 {
		t.Errorf("expected full confidence for an empty snapshot, got %d", result.DeliveryConfidence)
	}
}

func TestAnalyzeNormalizesTeam(t *testing.T) {
	svc := newTestService(t, nil)

	state := &domain.PlanningState{
		Tasks: []domain.TaskInfo{
			{ID: "t1", Number: 1, Status: domain.StatusInProgress, AssigneeID: "u1"},
		},
		Team: []domain.CapacityInfo{
			{UserID: "u1", TotalCapacity: 40, AllocatedHours: 20},
		},
	}

	analysis := svc.Analyze(context.Background(), state, nil, testNow)

	if state.Team[0].UtilizationPercent != 50 {
		t.Errorf("expected derived utilization 50, got %v", state.Team[0].UtilizationPercent)
	}
	if state.Team[0].Velocity != 1.0 {
		t.Errorf("expected defaulted velocity 1.0, got %v", state.Team[0].Velocity)
	}
	if len(analysis.Utilization) != 1 {
		t.Fatalf("expected 1 utilization entry, got %d", len(analysis.Utilization))
	}
	if analysis.Utilization[0].Status != domain.UtilizationNormal {
		t.Errorf("expected normal status, got %v", analysis.Utilization[0].Status)
	}
}

package recommend

import (
	"testing"

	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/service/skills"
)

func TestReviewerGeneratorPrefersSkilledFreeReviewer(t *testing.T) {
	gen := NewReviewerGenerator(skills.NewMatcher(nil))

	state := &domain.PlanningState{
		Tasks: []domain.TaskInfo{{
			ID:         "t1",
			Number:     11,
			Title:      "Database migration for billing",
			Status:     domain.StatusInReview,
			AssigneeID: "u1",
		}},
		Team: []domain.CapacityInfo{
			{UserID: "u1", UserName: "mara", UtilizationPercent: 50},
			{UserID: "u2", UserName: "jun", UtilizationPercent: 60},
			{UserID: "u3", UserName: "kai", UtilizationPercent: 90, Skills: []string{"database", "sql", "postgres"}},
			{UserID: "u4", UserName: "rio", UtilizationPercent: 80, Skills: []string{"database", "sql", "postgres"}},
		},
	}

	recs := gen.Generate(state, testEngineConfig(), testNow)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	rec := recs[0]
	if rec.Type != domain.RecommendationAddReviewer {
		t.Errorf("expected type %v, got %v", domain.RecommendationAddReviewer, rec.Type)
	}

	action, ok := rec.Action.(domain.AddReviewerAction)
	if !ok {
		t.Fatalf("expected AddReviewerAction, got %T", rec.Action)
	}
	// u1 wrote the change, u3 is past the bandwidth cutoff; the skilled
	// u4 beats the freer but unskilled u2.
	if action.TaskID != "t1" || action.ReviewerID != "u4" {
		t.Errorf("expected u4 reviewing t1, got %s on %s", action.ReviewerID, action.TaskID)
	}

	if rec.Impact.DeliveryProbabilityChange != 10 || rec.Impact.OverallScore != 8 {
		t.Errorf("expected fixed impact {10, 8}, got {%v, %v}",
			rec.Impact.DeliveryProbabilityChange, rec.Impact.OverallScore)
	}
}

func TestReviewerGeneratorSkips(t *testing.T) {
	gen := NewReviewerGenerator(skills.NewMatcher(nil))
	cfg := testEngineConfig()

	tests := []struct {
		name  string
		state *domain.PlanningState
	}{
		{
			name: "no tasks in review",
			state: &domain.PlanningState{
				Tasks: []domain.TaskInfo{
					{ID: "t1", Number: 1, Status: domain.StatusInProgress, AssigneeID: "u1"},
				},
				Team: []domain.CapacityInfo{{UserID: "u2", UtilizationPercent: 20}},
			},
		},
		{
			name: "only the author has bandwidth",
			state: &domain.PlanningState{
				Tasks: []domain.TaskInfo{
					{ID: "t1", Number: 1, Status: domain.StatusInReview, AssigneeID: "u1"},
				},
				Team: []domain.CapacityInfo{
					{UserID: "u1", UtilizationPercent: 40},
					{UserID: "u2", UtilizationPercent: 92},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if recs := gen.Generate(tt.state, cfg, testNow); len(recs) != 0 {
				t.Errorf("expected no recommendations, got %d", len(recs))
			}
		})
	}
}

func TestReviewerGeneratorOneReviewerPerReviewTask(t *testing.T) {
	gen := NewReviewerGenerator(skills.NewMatcher(nil))

	state := &domain.PlanningState{
		Tasks: []domain.TaskInfo{
			{ID: "t1", Number: 1, Status: domain.StatusInReview, AssigneeID: "u1"},
			{ID: "t2", Number: 2, Status: domain.StatusInReview, AssigneeID: "u2"},
		},
		Team: []domain.CapacityInfo{
			{UserID: "u1", UserName: "mara", UtilizationPercent: 40},
			{UserID: "u2", UserName: "jun", UtilizationPercent: 50},
		},
	}

	recs := gen.Generate(state, testEngineConfig(), testNow)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}

	first := recs[0].Action.(domain.AddReviewerAction)
	second := recs[1].Action.(domain.AddReviewerAction)
	if first.ReviewerID != "u2" || second.ReviewerID != "u1" {
		t.Errorf("expected cross review u2/u1, got %s/%s", first.ReviewerID, second.ReviewerID)
	}
}

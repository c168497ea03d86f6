package recommend

import (
	"testing"

	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/service/skills"
)

func TestAssignGeneratorOwnsCriticalTask(t *testing.T) {
	gen := NewAssignGenerator(skills.NewMatcher(nil))

	state := &domain.PlanningState{
		Tasks: []domain.TaskInfo{{
			ID:       "t1",
			Number:   21,
			Title:    "Fix frontend login page",
			Status:   domain.StatusTodo,
			Priority: domain.PriorityCritical,
		}},
		Team: []domain.CapacityInfo{
			{
				UserID:             "u1",
				UserName:           "mara",
				UtilizationPercent: 40,
				BurnoutRisk:        20,
				Velocity:           1.0,
				Skills:             []string{"frontend", "react", "ui", "css", "tailwind"},
			},
			{
				UserID:             "u2",
				UserName:           "jun",
				UtilizationPercent: 20,
				BurnoutRisk:        10,
				Velocity:           1.0,
			},
		},
	}

	recs := gen.Generate(state, testEngineConfig(), testNow)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	rec := recs[0]
	if rec.Type != domain.RecommendationAssignTask {
		t.Errorf("expected type %v, got %v", domain.RecommendationAssignTask, rec.Type)
	}

	action, ok := rec.Action.(domain.AssignTaskAction)
	if !ok {
		t.Fatalf("expected AssignTaskAction, got %T", rec.Action)
	}
	// Full skill match beats the freer but unskilled member.
	if action.TaskID != "t1" || action.ToUserID != "u1" {
		t.Errorf("expected t1 assigned to u1, got %s to %s", action.TaskID, action.ToUserID)
	}

	// delivery 18 for critical, skill bonus 5.
	if rec.Impact.DeliveryProbabilityChange != 18 {
		t.Errorf("expected delivery impact 18, got %v", rec.Impact.DeliveryProbabilityChange)
	}
	if rec.Impact.OverallScore != 23 {
		t.Errorf("expected overall score 23, got %v", rec.Impact.OverallScore)
	}
}

func TestAssignGeneratorSkips(t *testing.T) {
	gen := NewAssignGenerator(skills.NewMatcher(nil))
	cfg := testEngineConfig()
	pool := []domain.CapacityInfo{
		{UserID: "u1", UtilizationPercent: 40, BurnoutRisk: 20, Velocity: 1.0},
	}

	tests := []struct {
		name  string
		tasks []domain.TaskInfo
		team  []domain.CapacityInfo
	}{
		{
			name: "medium priority is left to triage",
			tasks: []domain.TaskInfo{
				{ID: "t1", Number: 1, Status: domain.StatusTodo, Priority: domain.PriorityMedium},
			},
			team: pool,
		},
		{
			name: "already assigned",
			tasks: []domain.TaskInfo{
				{ID: "t1", Number: 1, Status: domain.StatusTodo, Priority: domain.PriorityCritical, AssigneeID: "u1"},
			},
			team: pool,
		},
		{
			name: "done task with no owner",
			tasks: []domain.TaskInfo{
				{ID: "t1", Number: 1, Status: domain.StatusDone, Priority: domain.PriorityCritical},
			},
			team: pool,
		},
		{
			name: "every member overloaded",
			tasks: []domain.TaskInfo{
				{ID: "t1", Number: 1, Status: domain.StatusTodo, Priority: domain.PriorityCritical},
			},
			team: []domain.CapacityInfo{
				{UserID: "u1", UtilizationPercent: 120, BurnoutRisk: 60},
				{UserID: "u2", UtilizationPercent: 95, BurnoutRisk: 75},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &domain.PlanningState{Tasks: tt.tasks, Team: tt.team}
			if recs := gen.Generate(state, cfg, testNow); len(recs) != 0 {
				t.Errorf("expected no recommendations, got %d", len(recs))
			}
		})
	}
}

func TestAssignGeneratorHandlesHighPriority(t *testing.T) {
	gen := NewAssignGenerator(skills.NewMatcher(nil))

	state := &domain.PlanningState{
		Tasks: []domain.TaskInfo{{
			ID:       "t1",
			Number:   22,
			Title:    "Weekly sync notes",
			Status:   domain.StatusTodo,
			Priority: domain.PriorityHigh,
		}},
		Team: []domain.CapacityInfo{
			{UserID: "u1", UserName: "mara", UtilizationPercent: 40, BurnoutRisk: 20, Velocity: 1.0},
		},
	}

	recs := gen.Generate(state, testEngineConfig(), testNow)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	// delivery 12 for high priority, neutral 0.5 skill match adds 2.5.
	if recs[0].Impact.DeliveryProbabilityChange != 12 {
		t.Errorf("expected delivery impact 12, got %v", recs[0].Impact.DeliveryProbabilityChange)
	}
	if recs[0].Impact.OverallScore != 14.5 {
		t.Errorf("expected overall score 14.5, got %v", recs[0].Impact.OverallScore)
	}
}

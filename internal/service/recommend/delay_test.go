package recommend

import (
	"strings"
	"testing"

	"github.com/planvane/allocation-advisor/internal/domain"
)

func TestDelayGeneratorBlockedImminentTask(t *testing.T) {
	gen := NewDelayGenerator()

	state := &domain.PlanningState{
		Tasks: []domain.TaskInfo{
			{
				ID:           "t1",
				Number:       7,
				Title:        "Release checklist",
				Status:       domain.StatusTodo,
				AssigneeID:   "u1",
				DueDate:      timePtr(testNow.AddDate(0, 0, 2)),
				Dependencies: []string{"t2"},
			},
			{ID: "t2", Number: 8, Status: domain.StatusInProgress, AssigneeID: "u1"},
		},
	}

	recs := gen.Generate(state, testEngineConfig(), testNow)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	rec := recs[0]
	if rec.Type != domain.RecommendationDelayTask {
		t.Errorf("expected type %v, got %v", domain.RecommendationDelayTask, rec.Type)
	}

	action, ok := rec.Action.(domain.DelayTaskAction)
	if !ok {
		t.Fatalf("expected DelayTaskAction, got %T", rec.Action)
	}
	if action.TaskID != "t1" || action.DelayDays != 3 {
		t.Errorf("expected t1 delayed by 3 days, got %s by %d", action.TaskID, action.DelayDays)
	}

	if !strings.Contains(rec.Reason, "blocked") {
		t.Errorf("expected blocked reason, got %q", rec.Reason)
	}

	// delivery 15, cost round(3*0.5) = 2, burnout relief -8.
	if rec.Impact.DeliveryProbabilityChange != 15 {
		t.Errorf("expected delivery impact 15, got %v", rec.Impact.DeliveryProbabilityChange)
	}
	if rec.Impact.OverallScore != 21 {
		t.Errorf("expected overall score 21, got %v", rec.Impact.OverallScore)
	}
}

func TestDelayGeneratorOverdueTask(t *testing.T) {
	gen := NewDelayGenerator()

	state := &domain.PlanningState{
		Tasks: []domain.TaskInfo{{
			ID:         "t1",
			Number:     9,
			Title:      "Quarterly report",
			Status:     domain.StatusInProgress,
			AssigneeID: "u1",
			DueDate:    timePtr(testNow.AddDate(0, 0, -4)),
		}},
	}

	recs := gen.Generate(state, testEngineConfig(), testNow)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	action := recs[0].Action.(domain.DelayTaskAction)
	// Overdue by 4 days: delay lands 2 days past today.
	if action.DelayDays != 6 {
		t.Errorf("expected delay of 6 days, got %d", action.DelayDays)
	}

	// delivery 8, cost round(6*0.5) = 3, burnout relief -3.
	if recs[0].Impact.OverallScore != 8 {
		t.Errorf("expected overall score 8, got %v", recs[0].Impact.OverallScore)
	}
}

func TestDelayGeneratorBlockedOverdueTask(t *testing.T) {
	gen := NewDelayGenerator()

	state := &domain.PlanningState{
		Tasks: []domain.TaskInfo{
			{
				ID:           "t1",
				Number:       11,
				Title:        "Schema migration",
				Status:       domain.StatusTodo,
				AssigneeID:   "u1",
				DueDate:      timePtr(testNow.AddDate(0, 0, -5)),
				Dependencies: []string{"t2"},
			},
			{ID: "t2", Number: 12, Status: domain.StatusInProgress, AssigneeID: "u1"},
		},
	}

	recs := gen.Generate(state, testEngineConfig(), testNow)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	rec := recs[0]
	action := rec.Action.(domain.DelayTaskAction)
	// Overdue by 5 days: delay lands 2 days past today.
	if action.DelayDays != 7 {
		t.Errorf("expected delay of 7 days, got %d", action.DelayDays)
	}

	if !strings.Contains(rec.Reason, "overdue by 5 days") {
		t.Errorf("expected the overdue wording, got %q", rec.Reason)
	}
	if strings.Contains(rec.Reason, "due in") {
		t.Errorf("expected no negative due-in wording, got %q", rec.Reason)
	}

	// delivery 15, cost round(7*0.5) = 4, burnout relief -8.
	if rec.Impact.OverallScore != 19 {
		t.Errorf("expected overall score 19, got %v", rec.Impact.OverallScore)
	}
}

func TestDelayGeneratorSkipsHealthyTasks(t *testing.T) {
	gen := NewDelayGenerator()
	cfg := testEngineConfig()

	tests := []struct {
		name  string
		tasks []domain.TaskInfo
	}{
		{
			name: "no due date",
			tasks: []domain.TaskInfo{
				{ID: "t1", Number: 1, Status: domain.StatusInProgress, AssigneeID: "u1"},
			},
		},
		{
			name: "due comfortably far out",
			tasks: []domain.TaskInfo{
				{ID: "t1", Number: 1, Status: domain.StatusInProgress, AssigneeID: "u1", DueDate: timePtr(testNow.AddDate(0, 0, 10))},
			},
		},
		{
			name: "blocked but not imminent",
			tasks: []domain.TaskInfo{
				{ID: "t1", Number: 1, Status: domain.StatusTodo, AssigneeID: "u1", DueDate: timePtr(testNow.AddDate(0, 0, 5)), Dependencies: []string{"t2"}},
				{ID: "t2", Number: 2, Status: domain.StatusInProgress, AssigneeID: "u1"},
			},
		},
		{
			name: "overdue but already done",
			tasks: []domain.TaskInfo{
				{ID: "t1", Number: 1, Status: domain.StatusDone, DueDate: timePtr(testNow.AddDate(0, 0, -4))},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &domain.PlanningState{Tasks: tt.tasks}
			if recs := gen.Generate(state, cfg, testNow); len(recs) != 0 {
				t.Errorf("expected no recommendations, got %d", len(recs))
			}
		})
	}
}

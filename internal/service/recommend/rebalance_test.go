package recommend

import (
	"testing"

	"github.com/planvane/allocation-advisor/internal/domain"
)

func TestRebalanceGeneratorExtremeSpread(t *testing.T) {
	gen := NewRebalanceGenerator()

	state := &domain.PlanningState{
		Team: []domain.CapacityInfo{
			{UserID: "u1", UserName: "mara", UtilizationPercent: 90},
			{UserID: "u2", UserName: "jun", UtilizationPercent: 20},
		},
	}

	recs := gen.Generate(state, testEngineConfig(), testNow)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	rec := recs[0]
	if rec.Type != domain.RecommendationRebalanceWorkload {
		t.Errorf("expected type %v, got %v", domain.RecommendationRebalanceWorkload, rec.Type)
	}

	action, ok := rec.Action.(domain.RebalanceWorkloadAction)
	if !ok {
		t.Fatalf("expected RebalanceWorkloadAction, got %T", rec.Action)
	}
	if action.FromUserID != "u1" || action.ToUserID != "u2" {
		t.Errorf("expected move u1 -> u2, got %s -> %s", action.FromUserID, action.ToUserID)
	}

	// spread 70: delivery round(12.6) = 13, relief -round(15.4) = -15.
	if rec.Impact.DeliveryProbabilityChange != 13 {
		t.Errorf("expected delivery impact 13, got %v", rec.Impact.DeliveryProbabilityChange)
	}
	if rec.Impact.BurnoutRiskChange != -15 {
		t.Errorf("expected burnout change -15, got %v", rec.Impact.BurnoutRiskChange)
	}
	if rec.Impact.OverallScore != 28 {
		t.Errorf("expected overall score 28, got %v", rec.Impact.OverallScore)
	}
}

func TestRebalanceGeneratorSkips(t *testing.T) {
	gen := NewRebalanceGenerator()
	cfg := testEngineConfig()

	tests := []struct {
		name string
		team []domain.CapacityInfo
	}{
		{
			name: "single member",
			team: []domain.CapacityInfo{{UserID: "u1", UtilizationPercent: 150}},
		},
		{
			name: "spread at the threshold",
			team: []domain.CapacityInfo{
				{UserID: "u1", UtilizationPercent: 80},
				{UserID: "u2", UtilizationPercent: 40},
			},
		},
		{
			name: "evenly loaded team",
			team: []domain.CapacityInfo{
				{UserID: "u1", UtilizationPercent: 72},
				{UserID: "u2", UtilizationPercent: 68},
				{UserID: "u3", UtilizationPercent: 75},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &domain.PlanningState{Team: tt.team}
			if recs := gen.Generate(state, cfg, testNow); len(recs) != 0 {
				t.Errorf("expected no recommendations, got %d", len(recs))
			}
		})
	}
}

func TestRebalanceGeneratorPicksExtremes(t *testing.T) {
	gen := NewRebalanceGenerator()

	state := &domain.PlanningState{
		Team: []domain.CapacityInfo{
			{UserID: "u1", UserName: "mara", UtilizationPercent: 65},
			{UserID: "u2", UserName: "jun", UtilizationPercent: 130},
			{UserID: "u3", UserName: "kai", UtilizationPercent: 15},
		},
	}

	recs := gen.Generate(state, testEngineConfig(), testNow)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	action := recs[0].Action.(domain.RebalanceWorkloadAction)
	if action.FromUserID != "u2" || action.ToUserID != "u3" {
		t.Errorf("expected move u2 -> u3, got %s -> %s", action.FromUserID, action.ToUserID)
	}
}

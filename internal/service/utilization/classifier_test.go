package utilization

import (
	"testing"

	"github.com/planvane/allocation-advisor/internal/domain"
)

func TestClassifyStatuses(t *testing.T) {
	classifier := NewClassifier(30)

	tests := []struct {
		name        string
		utilization float64
		expected    domain.UtilizationStatus
	}{
		{"zero is idle", 0, domain.UtilizationIdle},
		{"just below idle threshold", 29.9, domain.UtilizationIdle},
		{"at idle threshold is normal", 30, domain.UtilizationNormal},
		{"at busy threshold is still normal", 85, domain.UtilizationNormal},
		{"above busy threshold", 85.1, domain.UtilizationBusy},
		{"at overloaded threshold is busy", 120, domain.UtilizationBusy},
		{"above overloaded threshold", 120.1, domain.UtilizationOverloaded},
		{"idle wins over other buckets with a high threshold", 25, domain.UtilizationIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify([]domain.CapacityInfo{{
				UserID:             "u1",
				UtilizationPercent: tt.utilization,
			}})
			if len(got) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(got))
			}
			if got[0].Status != tt.expected {
				t.Errorf("utilization %.1f: expected %v, got %v", tt.utilization, tt.expected, got[0].Status)
			}
		})
	}
}

func TestClassifyWithOverridesIdleThreshold(t *testing.T) {
	classifier := NewClassifier(30)

	team := []domain.CapacityInfo{{UserID: "u1", UtilizationPercent: 50}}

	if got := classifier.Classify(team); got[0].Status != domain.UtilizationNormal {
		t.Errorf("expected normal at the configured threshold, got %v", got[0].Status)
	}
	if got := classifier.ClassifyWith(team, 60); got[0].Status != domain.UtilizationIdle {
		t.Errorf("expected idle with a raised threshold, got %v", got[0].Status)
	}
}

func TestClassifyPreservesOrderAndRounds(t *testing.T) {
	classifier := NewClassifier(30)

	team := []domain.CapacityInfo{
		{UserID: "u1", UserName: "mara", UtilizationPercent: 95.6, BurnoutRisk: 49.4, TaskCount: 4},
		{UserID: "u2", UserName: "jun", UtilizationPercent: 12.2, BurnoutRisk: 5, TaskCount: 1},
	}

	got := classifier.Classify(team)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}

	if got[0].UserID != "u1" || got[1].UserID != "u2" {
		t.Errorf("expected input order preserved, got %s then %s", got[0].UserID, got[1].UserID)
	}
	if got[0].Utilization != 96 {
		t.Errorf("expected utilization rounded to 96, got %d", got[0].Utilization)
	}
	if got[0].BurnoutRisk != 49 {
		t.Errorf("expected burnout risk rounded to 49, got %d", got[0].BurnoutRisk)
	}
	if got[0].TaskCount != 4 {
		t.Errorf("expected task count 4, got %d", got[0].TaskCount)
	}
	if got[1].Status != domain.UtilizationIdle {
		t.Errorf("expected second member idle, got %v", got[1].Status)
	}
}

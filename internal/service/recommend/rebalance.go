package recommend

import (
	"fmt"
	"math"
	"time"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
)

// rebalanceSpreadThreshold is the minimum utilization spread, in
// percentage points, before a rebalance is worth proposing.
const rebalanceSpreadThreshold = 40.0

// RebalanceGenerator proposes shifting work from the most-loaded to the
// least-loaded member when the team's utilization spread is extreme. The
// recommendation is advisory: it names the pair, not specific tasks.
type RebalanceGenerator struct{}

func NewRebalanceGenerator() *RebalanceGenerator {
	return &RebalanceGenerator{}
}

func (g *RebalanceGenerator) Name() string {
	return "rebalance"
}

func (g *RebalanceGenerator) Generate(state *domain.PlanningState, cfg *config.EngineConfig, now time.Time) []domain.GeneratedRecommendation {
	if len(state.Team) < 2 {
		return nil
	}

	most := &state.Team[0]
	least := &state.Team[0]
	for i := range state.Team {
		member := &state.Team[i]
		if member.UtilizationPercent > most.UtilizationPercent {
			most = member
		}
		if member.UtilizationPercent < least.UtilizationPercent {
			least = member
		}
	}

	spread := most.UtilizationPercent - least.UtilizationPercent
	if spread <= rebalanceSpreadThreshold {
		return nil
	}

	delivery := math.Round(spread * 0.18)
	burnoutRelief := -math.Round(spread * 0.22)

	score := delivery*cfg.DeliverySlippageWeight - burnoutRelief*cfg.OverworkWeight

	return []domain.GeneratedRecommendation{{
		Type:  domain.RecommendationRebalanceWorkload,
		Title: fmt.Sprintf("Rebalance workload from %s to %s", most.UserName, least.UserName),
		Description: fmt.Sprintf("Move 1-2 lower-priority tasks from %s (%.0f%% utilized) to %s (%.0f%% utilized)",
			most.UserName, most.UtilizationPercent, least.UserName, least.UtilizationPercent),
		Reason: fmt.Sprintf("Utilization spread across the team is %.0f percentage points", spread),
		Action: domain.RebalanceWorkloadAction{
			FromUserID: most.UserID,
			ToUserID:   least.UserID,
		},
		Impact: domain.RecommendationImpact{
			DeliveryProbabilityChange: delivery,
			BurnoutRiskChange:         burnoutRelief,
			OverallScore:              math.Round(score*100) / 100,
		},
	}}
}

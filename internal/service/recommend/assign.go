package recommend

import (
	"fmt"
	"math"
	"time"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/service/skills"
)

// AssignGenerator finds owners for unassigned HIGH and CRITICAL tasks.
// Lower-priority unowned tasks are left to regular triage.
type AssignGenerator struct {
	matcher *skills.Matcher
}

func NewAssignGenerator(matcher *skills.Matcher) *AssignGenerator {
	return &AssignGenerator{matcher: matcher}
}

func (g *AssignGenerator) Name() string {
	return "assign-unowned"
}

func (g *AssignGenerator) Generate(state *domain.PlanningState, cfg *config.EngineConfig, now time.Time) []domain.GeneratedRecommendation {
	var recs []domain.GeneratedRecommendation

	for i := range state.Tasks {
		task := &state.Tasks[i]
		if !task.IsActive() || task.IsAssigned() {
			continue
		}
		if task.Priority != domain.PriorityHigh && task.Priority != domain.PriorityCritical {
			continue
		}

		owner, skillMatch := g.bestOwner(state, task, cfg.BurnoutThreshold)
		if owner == nil {
			continue
		}

		delivery := 12.0
		if task.Priority == domain.PriorityCritical {
			delivery = 18.0
		}

		score := delivery*cfg.DeliverySlippageWeight + skillMatch*5

		recs = append(recs, domain.GeneratedRecommendation{
			Type:  domain.RecommendationAssignTask,
			Title: fmt.Sprintf("Assign #%d to %s", task.Number, owner.UserName),
			Description: fmt.Sprintf("Give the unassigned %s task %q to %s (%.0f%% utilized)",
				task.Priority, task.Title, owner.UserName, owner.UtilizationPercent),
			Reason: fmt.Sprintf("Task #%d has no owner; %s has capacity and a %.0f%% skill match",
				task.Number, owner.UserName, skillMatch*100),
			Action: domain.AssignTaskAction{
				TaskID:   task.ID,
				ToUserID: owner.UserID,
			},
			Impact: domain.RecommendationImpact{
				DeliveryProbabilityChange: delivery,
				OverallScore:              math.Round(score*100) / 100,
			},
		})
	}

	return recs
}

func (g *AssignGenerator) bestOwner(state *domain.PlanningState, task *domain.TaskInfo, burnoutThreshold float64) (*domain.CapacityInfo, float64) {
	var best *domain.CapacityInfo
	bestScore := 0.0
	bestMatch := 0.0

	for i := range state.Team {
		member := &state.Team[i]
		if !member.HasSlack(burnoutThreshold) {
			continue
		}

		match := g.matcher.MatchScore(task, member)
		score := match*40 + (100-member.UtilizationPercent)/100*40 + member.Velocity*20
		if best == nil || score > bestScore {
			best = member
			bestScore = score
			bestMatch = match
		}
	}

	return best, bestMatch
}

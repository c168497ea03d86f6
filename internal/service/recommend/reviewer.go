package recommend

import (
	"fmt"
	"time"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/service/skills"
)

// reviewerBusyThreshold excludes members without review bandwidth.
const reviewerBusyThreshold = 85.0

// ReviewerGenerator proposes an additional reviewer for every task
// sitting in review, favoring skill fit and free capacity. The impact
// estimate is fixed; review help is cheap and its payoff does not depend
// on the objective weights.
type ReviewerGenerator struct {
	matcher *skills.Matcher
}

func NewReviewerGenerator(matcher *skills.Matcher) *ReviewerGenerator {
	return &ReviewerGenerator{matcher: matcher}
}

func (g *ReviewerGenerator) Name() string {
	return "add-reviewer"
}

func (g *ReviewerGenerator) Generate(state *domain.PlanningState, cfg *config.EngineConfig, now time.Time) []domain.GeneratedRecommendation {
	var recs []domain.GeneratedRecommendation

	for i := range state.Tasks {
		task := &state.Tasks[i]
		if task.Status != domain.StatusInReview {
			continue
		}

		reviewer := g.bestReviewer(state, task)
		if reviewer == nil {
			continue
		}

		recs = append(recs, domain.GeneratedRecommendation{
			Type:  domain.RecommendationAddReviewer,
			Title: fmt.Sprintf("Add %s as reviewer on #%d", reviewer.UserName, task.Number),
			Description: fmt.Sprintf("Bring %s (%.0f%% utilized) in to review %q",
				reviewer.UserName, reviewer.UtilizationPercent, task.Title),
			Reason: fmt.Sprintf("Task #%d is waiting in review; %s has review bandwidth", task.Number, reviewer.UserName),
			Action: domain.AddReviewerAction{
				TaskID:     task.ID,
				ReviewerID: reviewer.UserID,
			},
			Impact: domain.RecommendationImpact{
				DeliveryProbabilityChange: 10,
				CostImpactPercent:         1,
				BurnoutRiskChange:         2,
				OverallScore:              8,
			},
		})
	}

	return recs
}

func (g *ReviewerGenerator) bestReviewer(state *domain.PlanningState, task *domain.TaskInfo) *domain.CapacityInfo {
	var best *domain.CapacityInfo
	bestScore := 0.0

	for i := range state.Team {
		member := &state.Team[i]
		if member.UserID == task.AssigneeID || member.UtilizationPercent >= reviewerBusyThreshold {
			continue
		}

		score := g.matcher.MatchScore(task, member)*50 + (100-member.UtilizationPercent)/100*50
		if best == nil || score > bestScore {
			best = member
			bestScore = score
		}
	}

	return best
}

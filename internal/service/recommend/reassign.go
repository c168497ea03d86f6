package recommend

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/service/skills"
)

// maxOffloadsPerMember caps how many tasks one cycle proposes to move off
// a single overloaded member.
const maxOffloadsPerMember = 3

// minReassignScore discards candidates whose composite score is noise.
const minReassignScore = 1.0

// ReassignmentGenerator proposes moving tasks from overloaded members to
// members with slack. The lowest-priority tasks are offloaded first so
// critical work stays with its owner.
type ReassignmentGenerator struct {
	matcher *skills.Matcher
}

func NewReassignmentGenerator(matcher *skills.Matcher) *ReassignmentGenerator {
	return &ReassignmentGenerator{matcher: matcher}
}

func (g *ReassignmentGenerator) Name() string {
	return "reassignment"
}

func (g *ReassignmentGenerator) Generate(state *domain.PlanningState, cfg *config.EngineConfig, now time.Time) []domain.GeneratedRecommendation {
	var overloaded, available []*domain.CapacityInfo
	for i := range state.Team {
		member := &state.Team[i]
		if member.IsOverloaded(cfg.BurnoutThreshold) {
			overloaded = append(overloaded, member)
		} else if member.HasSlack(cfg.BurnoutThreshold) {
			available = append(available, member)
		}
	}

	if len(overloaded) == 0 || len(available) == 0 {
		return nil
	}

	var recs []domain.GeneratedRecommendation

	for _, from := range overloaded {
		for _, task := range offloadCandidates(state, from.UserID) {
			to := findBestTarget(g.matcher, task, available)
			if to == nil {
				continue
			}

			skillMatch := g.matcher.MatchScore(task, to)
			delivery := deliveryImpact(task, from, to, skillMatch)
			cost := costImpact(from, to, task.EstimatedHours)
			burnout := burnoutImpact(from, to)

			score := delivery*cfg.DeliverySlippageWeight -
				cost*cfg.CostOverrunWeight -
				burnout*cfg.OverworkWeight +
				skillMatch*5*cfg.OnTimeBonusWeight

			if score < minReassignScore {
				continue
			}

			recs = append(recs, domain.GeneratedRecommendation{
				Type:  domain.RecommendationReassignTask,
				Title: fmt.Sprintf("Reassign #%d from %s to %s", task.Number, from.UserName, to.UserName),
				Description: fmt.Sprintf("Move %q from %s (%.0f%% utilized) to %s (%.0f%% utilized)",
					task.Title, from.UserName, from.UtilizationPercent, to.UserName, to.UtilizationPercent),
				Reason: fmt.Sprintf("%s is overloaded (%.0f%% utilization, %.0f%% burnout risk); %s has capacity and a %.0f%% skill match",
					from.UserName, from.UtilizationPercent, from.BurnoutRisk, to.UserName, skillMatch*100),
				Action: domain.ReassignTaskAction{
					TaskID:     task.ID,
					FromUserID: from.UserID,
					ToUserID:   to.UserID,
				},
				Impact: domain.RecommendationImpact{
					DeliveryProbabilityChange: delivery,
					CostImpactPercent:         cost,
					BurnoutRiskChange:         burnout,
					OverallScore:              math.Round(score*100) / 100,
				},
			})
		}
	}

	return recs
}

// offloadCandidates returns up to maxOffloadsPerMember active tasks owned
// by the member, lowest priority first.
func offloadCandidates(state *domain.PlanningState, userID string) []*domain.TaskInfo {
	var tasks []*domain.TaskInfo
	for i := range state.Tasks {
		task := &state.Tasks[i]
		if task.IsActive() && task.AssigneeID == userID {
			tasks = append(tasks, task)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Severity() < tasks[j].Priority.Severity()
	})

	if len(tasks) > maxOffloadsPerMember {
		tasks = tasks[:maxOffloadsPerMember]
	}
	return tasks
}

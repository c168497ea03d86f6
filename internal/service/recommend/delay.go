package recommend

import (
	"fmt"
	"math"
	"time"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
)

// DelayGenerator proposes pushing out due dates for tasks that are either
// blocked with an imminent deadline or already overdue. Delaying a blocked
// task buys time for its dependencies; delaying an overdue one restores a
// realistic plan.
type DelayGenerator struct{}

func NewDelayGenerator() *DelayGenerator {
	return &DelayGenerator{}
}

func (g *DelayGenerator) Name() string {
	return "delay"
}

func (g *DelayGenerator) Generate(state *domain.PlanningState, cfg *config.EngineConfig, now time.Time) []domain.GeneratedRecommendation {
	var recs []domain.GeneratedRecommendation

	for i := range state.Tasks {
		task := &state.Tasks[i]
		if !task.IsActive() || task.DueDate == nil {
			continue
		}

		blocked := state.IsBlocked(task)
		overdue := task.IsOverdue(now)
		days := *task.DaysUntilDue(now)

		imminentlyBlocked := blocked && days <= 2
		if !imminentlyBlocked && !(overdue && !blocked) {
			continue
		}

		delayDays := 3
		if overdue {
			if d := -days + 2; d > delayDays {
				delayDays = d
			}
		}

		delivery := 8.0
		burnoutRelief := -3.0
		reason := fmt.Sprintf("Task #%d is overdue by %d days; the current due date is no longer achievable", task.Number, -days)
		if blocked {
			delivery = 15.0
			burnoutRelief = -8.0
			if overdue {
				reason = fmt.Sprintf("Task #%d is blocked by unfinished dependencies and overdue by %d days", task.Number, -days)
			} else {
				reason = fmt.Sprintf("Task #%d is blocked by unfinished dependencies and due in %d days", task.Number, days)
			}
		}
		cost := math.Round(float64(delayDays) * 0.5)

		score := delivery*cfg.DeliverySlippageWeight -
			cost*cfg.CostOverrunWeight -
			burnoutRelief*cfg.OverworkWeight

		recs = append(recs, domain.GeneratedRecommendation{
			Type:  domain.RecommendationDelayTask,
			Title: fmt.Sprintf("Delay #%d by %d days", task.Number, delayDays),
			Description: fmt.Sprintf("Push the due date of %q out by %d days",
				task.Title, delayDays),
			Reason: reason,
			Action: domain.DelayTaskAction{
				TaskID:    task.ID,
				DelayDays: delayDays,
			},
			Impact: domain.RecommendationImpact{
				DeliveryProbabilityChange: delivery,
				CostImpactPercent:         cost,
				BurnoutRiskChange:         burnoutRelief,
				OverallScore:              math.Round(score*100) / 100,
			},
		})
	}

	return recs
}

package risk

import (
	"fmt"
	"sort"
	"time"

	"github.com/planvane/allocation-advisor/internal/domain"
)

const (
	// Tasks scoring below this threshold are not worth surfacing.
	emissionThreshold = 10.0

	// IN_REVIEW tasks older than this are considered stalled.
	reviewStalenessDays = 3
)

// Scorer derives per-task delivery risks from a planning snapshot.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// IdentifyDeliveryRisks scores every active task against independent
// additive factors and returns the entries scoring at or above the
// emission threshold, sorted by descending score.
func (s *Scorer) IdentifyDeliveryRisks(state *domain.PlanningState, now time.Time) []domain.DeliveryRisk {
	risks := make([]domain.DeliveryRisk, 0, len(state.Tasks))

	for i := range state.Tasks {
		task := &state.Tasks[i]
		if !task.IsActive() {
			continue
		}

		score, reasons := s.scoreTask(state, task, now)
		if score < emissionThreshold {
			continue
		}

		if score > 100 {
			score = 100
		}

		risks = append(risks, domain.DeliveryRisk{
			TaskID:       task.ID,
			TaskTitle:    task.Title,
			TaskNumber:   task.Number,
			RiskLevel:    domain.RiskLevelForScore(score),
			RiskScore:    score,
			Reasons:      reasons,
			AssigneeID:   task.AssigneeID,
			DueDate:      task.DueDate,
			DaysUntilDue: task.DaysUntilDue(now),
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].RiskScore > risks[j].RiskScore
	})

	return risks
}

func (s *Scorer) scoreTask(state *domain.PlanningState, task *domain.TaskInfo, now time.Time) (float64, []string) {
	score := 0.0
	var reasons []string

	if days := task.DaysUntilDue(now); days != nil {
		d := *days
		switch {
		case task.IsOverdue(now) && -d > 3:
			score += 50
			reasons = append(reasons, fmt.Sprintf("Overdue by %d days", -d))
		case task.IsOverdue(now):
			score += 35
			reasons = append(reasons, fmt.Sprintf("Overdue by %d days", -d))
		case d <= 1:
			score += 25
			reasons = append(reasons, fmt.Sprintf("Due in %d days", d))
		case d <= 3:
			score += 15
			reasons = append(reasons, fmt.Sprintf("Due in %d days", d))
		case d <= 5:
			score += 5
			reasons = append(reasons, fmt.Sprintf("Due in %d days", d))
		}
	}

	if !task.IsAssigned() {
		score += 25
		reasons = append(reasons, "Task is unassigned")
	} else if member := state.MemberByID(task.AssigneeID); member != nil {
		// Load and burnout brackets are independently additive.
		switch {
		case member.UtilizationPercent > 140:
			score += 30
			reasons = append(reasons, fmt.Sprintf("Assignee severely overloaded (%.0f%% utilization)", member.UtilizationPercent))
		case member.UtilizationPercent > 120:
			score += 20
			reasons = append(reasons, fmt.Sprintf("Assignee overloaded (%.0f%% utilization)", member.UtilizationPercent))
		case member.UtilizationPercent > 100:
			score += 12
			reasons = append(reasons, fmt.Sprintf("Assignee over capacity (%.0f%% utilization)", member.UtilizationPercent))
		}

		switch {
		case member.BurnoutRisk > 80:
			score += 18
			reasons = append(reasons, fmt.Sprintf("Assignee burnout risk high (%.0f%%)", member.BurnoutRisk))
		case member.BurnoutRisk > 60:
			score += 10
			reasons = append(reasons, fmt.Sprintf("Assignee burnout risk elevated (%.0f%%)", member.BurnoutRisk))
		}
	}

	switch task.Priority {
	case domain.PriorityCritical:
		score += 20
		reasons = append(reasons, "Critical priority")
	case domain.PriorityHigh:
		score += 12
		reasons = append(reasons, "High priority")
	case domain.PriorityMedium:
		score += 5
	}

	if blocked := state.UnresolvedDependencyCount(task); blocked > 0 {
		score += 15 + float64(blocked)*5
		reasons = append(reasons, fmt.Sprintf("Blocked by %d unfinished dependencies", blocked))
	}

	if task.Status == domain.StatusInReview && task.StartDate != nil {
		if now.Sub(*task.StartDate) > reviewStalenessDays*24*time.Hour {
			score += 10
			reasons = append(reasons, "In review for more than 3 days")
		}
	}

	return score, reasons
}

package confidence

import (
	"math"
	"time"

	"github.com/planvane/allocation-advisor/internal/domain"
)

// Estimator summarizes the delivery health of a snapshot as a single
// 0-100 score. Each adjustment is independent and additive; with zero
// tasks the score is 100 unconditionally.
type Estimator struct{}

func NewEstimator() *Estimator {
	return &Estimator{}
}

func (e *Estimator) Calculate(state *domain.PlanningState, now time.Time) int {
	if len(state.Tasks) == 0 {
		return 100
	}

	score := 100.0
	active := state.ActiveTasks()

	score -= overdueAdjustment(active, now)
	score -= unassignedCriticalAdjustment(active)
	score -= overloadAdjustment(state.Team)
	score -= burnoutAdjustment(state.Team)
	score -= sprintPressureAdjustment(state, active)
	score -= blockedAdjustment(state, active)
	score += completionBonus(state.Tasks)
	score -= reviewStallAdjustment(active)
	score += balanceAdjustment(state.Team)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(math.Round(score))
}

func overdueAdjustment(active []domain.TaskInfo, now time.Time) float64 {
	if len(active) == 0 {
		return 0
	}

	overdue := 0
	for i := range active {
		if active[i].IsOverdue(now) {
			overdue++
		}
	}

	ratio := float64(overdue) / float64(len(active))
	return math.Round(ratio*30 + float64(overdue)*3)
}

func unassignedCriticalAdjustment(active []domain.TaskInfo) float64 {
	penalty := 0.0
	for i := range active {
		t := &active[i]
		if !t.IsAssigned() && (t.Priority == domain.PriorityHigh || t.Priority == domain.PriorityCritical) {
			penalty += 7
		}
	}
	return penalty
}

func overloadAdjustment(team []domain.CapacityInfo) float64 {
	penalty := 0.0
	for i := range team {
		if team[i].UtilizationPercent > 100 {
			over := team[i].UtilizationPercent - 100
			penalty += math.Round(2 + over/20*3)
		}
	}
	return penalty
}

func burnoutAdjustment(team []domain.CapacityInfo) float64 {
	penalty := 0.0
	for i := range team {
		// Highest applicable bracket only.
		switch {
		case team[i].BurnoutRisk > 80:
			penalty += 4
		case team[i].BurnoutRisk > 60:
			penalty += 2
		case team[i].BurnoutRisk > 40:
			penalty += 1
		}
	}
	return penalty
}

func sprintPressureAdjustment(state *domain.PlanningState, active []domain.TaskInfo) float64 {
	sprint := state.ActiveSprint
	if sprint == nil {
		return 0
	}

	var sprintActive []domain.TaskInfo
	for i := range active {
		if active[i].SprintID == sprint.ID {
			sprintActive = append(sprintActive, active[i])
		}
	}

	sprintTotal := 0
	sprintDone := 0
	for i := range state.Tasks {
		if state.Tasks[i].SprintID != sprint.ID {
			continue
		}
		sprintTotal++
		if state.Tasks[i].Status.IsDone() {
			sprintDone++
		}
	}

	penalty := 0.0

	remainingHours := 0.0
	for i := range sprintActive {
		remainingHours += sprintActive[i].EstimatedHours
	}

	available := 0.0
	velocitySum := 0.0
	for i := range state.Team {
		available += state.Team[i].AvailableHours
		velocitySum += state.Team[i].Velocity
	}
	avgVelocity := 1.0
	if len(state.Team) > 0 {
		avgVelocity = velocitySum / float64(len(state.Team))
	}

	capacity := available * avgVelocity
	if remainingHours > 0 {
		// No capacity left counts as the worst fit.
		fit := math.Inf(1)
		if capacity > 0 {
			fit = remainingHours / capacity
		}
		switch {
		case fit > 1.5:
			penalty += 20
		case fit > 1.2:
			penalty += 12
		case fit > 1.0:
			penalty += 6
		}
	}

	if sprintTotal > 0 {
		completionRate := float64(sprintDone) / float64(sprintTotal)
		if sprint.DaysRemaining < 3 && completionRate < 0.5 {
			penalty += 15
		} else if sprint.DaysRemaining < 5 && completionRate < 0.3 {
			penalty += 10
		}
	}

	return penalty
}

func blockedAdjustment(state *domain.PlanningState, active []domain.TaskInfo) float64 {
	penalty := 0.0
	for i := range active {
		if state.IsBlocked(&active[i]) {
			penalty += 3
		}
	}
	return penalty
}

func completionBonus(tasks []domain.TaskInfo) float64 {
	done := 0
	for i := range tasks {
		if tasks[i].Status.IsDone() {
			done++
		}
	}
	ratio := float64(done) / float64(len(tasks))
	return math.Round(ratio * 15)
}

func reviewStallAdjustment(active []domain.TaskInfo) float64 {
	inReview := 0
	for i := range active {
		if active[i].Status == domain.StatusInReview {
			inReview++
		}
	}
	return math.Round(float64(inReview) * 1.5)
}

func balanceAdjustment(team []domain.CapacityInfo) float64 {
	if len(team) < 2 {
		return 0
	}

	mean := 0.0
	for i := range team {
		mean += team[i].UtilizationPercent
	}
	mean /= float64(len(team))

	variance := 0.0
	for i := range team {
		d := team[i].UtilizationPercent - mean
		variance += d * d
	}
	stdDev := math.Sqrt(variance / float64(len(team)))

	switch {
	case stdDev < 15:
		return 5
	case stdDev > 40:
		return -5
	default:
		return 0
	}
}

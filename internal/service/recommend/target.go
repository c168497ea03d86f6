package recommend

import (
	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/service/skills"
)

// findBestTarget picks the candidate best suited to take over a task,
// weighing skill fit, headroom, burnout, velocity and current task count.
// Returns nil when the candidate pool is empty.
func findBestTarget(matcher *skills.Matcher, task *domain.TaskInfo, candidates []*domain.CapacityInfo) *domain.CapacityInfo {
	var best *domain.CapacityInfo
	bestScore := 0.0

	for _, candidate := range candidates {
		score := targetScore(matcher, task, candidate)
		if best == nil || score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	return best
}

func targetScore(matcher *skills.Matcher, task *domain.TaskInfo, candidate *domain.CapacityInfo) float64 {
	score := matcher.MatchScore(task, candidate) * 40

	if candidate.TotalCapacity > 0 {
		score += candidate.AvailableHours / candidate.TotalCapacity * 25
	}

	score += (100 - candidate.BurnoutRisk) / 100 * 15

	velocity := candidate.Velocity
	if velocity > 2 {
		velocity = 2
	}
	score += velocity * 5

	if headroom := 10 - candidate.TaskCount; headroom > 0 {
		score += float64(headroom)
	}

	return score
}

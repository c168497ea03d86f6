package utilization

import (
	"math"

	"github.com/planvane/allocation-advisor/internal/domain"
)

const (
	overloadedThreshold = 120.0
	busyThreshold       = 85.0
)

// Classifier buckets team members into utilization statuses for display.
type Classifier struct {
	idleThresholdPercent float64
}

func NewClassifier(idleThresholdPercent float64) *Classifier {
	return &Classifier{idleThresholdPercent: idleThresholdPercent}
}

// Classify maps every member to a utilization summary using the configured
// idle threshold. The result is length-preserving and order-preserving.
func (c *Classifier) Classify(team []domain.CapacityInfo) []domain.TeamUtilization {
	return c.ClassifyWith(team, c.idleThresholdPercent)
}

// ClassifyWith is Classify with an explicit idle threshold, for
// per-request overrides of the configured value.
func (c *Classifier) ClassifyWith(team []domain.CapacityInfo, idleThresholdPercent float64) []domain.TeamUtilization {
	result := make([]domain.TeamUtilization, 0, len(team))
	for i := range team {
		member := &team[i]
		result = append(result, domain.TeamUtilization{
			UserID:      member.UserID,
			UserName:    member.UserName,
			Utilization: int(math.Round(member.UtilizationPercent)),
			Status:      status(member.UtilizationPercent, idleThresholdPercent),
			TaskCount:   member.TaskCount,
			BurnoutRisk: int(math.Round(member.BurnoutRisk)),
		})
	}
	return result
}

func status(utilization, idleThresholdPercent float64) domain.UtilizationStatus {
	switch {
	case utilization < idleThresholdPercent:
		return domain.UtilizationIdle
	case utilization > overloadedThreshold:
		return domain.UtilizationOverloaded
	case utilization > busyThreshold:
		return domain.UtilizationBusy
	default:
		return domain.UtilizationNormal
	}
}

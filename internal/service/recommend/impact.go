package recommend

import (
	"math"

	"github.com/planvane/allocation-advisor/internal/domain"
)

// deliveryImpact estimates the delivery-probability gain, in percentage
// points, from moving a task off an overloaded member onto a target.
func deliveryImpact(task *domain.TaskInfo, from, to *domain.CapacityInfo, skillMatch float64) float64 {
	impact := 0.0

	if from.UtilizationPercent > 100 {
		impact += math.Min(25, (from.UtilizationPercent-100)*0.4)
	}

	if to.Velocity > from.Velocity {
		impact += math.Min(8, (to.Velocity-from.Velocity)*10)
	}

	impact += skillMatch * 8

	switch task.Priority {
	case domain.PriorityCritical:
		impact += 8
	case domain.PriorityHigh:
		impact += 5
	case domain.PriorityMedium:
		impact += 3
	case domain.PriorityLow:
		impact += 1
	}

	if from.BurnoutRisk > 70 {
		impact += 3
	}

	return math.Round(impact)
}

// costImpact estimates the relative cost change, in percent, of moving
// the task's estimated hours between cost rates. Zero rates short-circuit
// to zero rather than dividing by zero.
func costImpact(from, to *domain.CapacityInfo, hours float64) float64 {
	fromCost := from.CostRate * hours
	toCost := to.CostRate * hours

	if fromCost == 0 && toCost == 0 {
		return 0
	}
	if fromCost == 0 {
		return 0
	}

	return math.Round((toCost - fromCost) / fromCost * 100)
}

// burnoutImpact estimates the net burnout-risk change of a reassignment:
// relief for the overloaded source plus added load on the target.
func burnoutImpact(from, to *domain.CapacityInfo) float64 {
	reduction := -5.0
	if from.BurnoutRisk > 70 {
		reduction = -math.Min(20, from.BurnoutRisk*0.25)
	}

	increase := 8.0
	switch {
	case to.BurnoutRisk < 30:
		increase = 2
	case to.BurnoutRisk < 50:
		increase = 4
	}

	return reduction + increase
}

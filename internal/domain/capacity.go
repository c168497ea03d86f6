package domain

// CapacityInfo is a snapshot of one team member's capacity for the
// planning period. It is assembled by the caller from live state plus the
// persisted allocation record; the engine treats it as read-only.
type CapacityInfo struct {
	UserID             string   `json:"user_id"`
	UserName           string   `json:"user_name"`
	TotalCapacity      float64  `json:"total_capacity"`
	AllocatedHours     float64  `json:"allocated_hours"`
	AvailableHours     float64  `json:"available_hours"`
	UtilizationPercent float64  `json:"utilization_percent"`
	Velocity           float64  `json:"velocity"`
	Skills             []string `json:"skills,omitempty"`
	BurnoutRisk        float64  `json:"burnout_risk"`
	OvertimeWeeks      int      `json:"overtime_weeks"`
	AvgWeeklyHours     float64  `json:"avg_weekly_hours"`
	TaskCount          int      `json:"task_count"`
	CostRate           float64  `json:"cost_rate"`
}

// IsOverloaded reports whether the member is over capacity or past the
// burnout threshold.
func (c *CapacityInfo) IsOverloaded(burnoutThreshold float64) bool {
	return c.UtilizationPercent > 100 || c.BurnoutRisk > burnoutThreshold
}

// HasSlack reports whether the member can take on additional work.
func (c *CapacityInfo) HasSlack(burnoutThreshold float64) bool {
	return c.UtilizationPercent < 85 && c.BurnoutRisk < burnoutThreshold
}

// Normalize fills derived fields the caller may have omitted.
// AvailableHours is clamped at zero; UtilizationPercent is left unbounded
// above 100 since values past 100 carry the overload signal.
func (c *CapacityInfo) Normalize() {
	if c.Velocity <= 0 {
		c.Velocity = 1.0
	}
	if c.TotalCapacity > 0 && c.UtilizationPercent == 0 && c.AllocatedHours > 0 {
		c.UtilizationPercent = c.AllocatedHours / c.TotalCapacity * 100
	}
	if c.AvailableHours == 0 {
		c.AvailableHours = c.TotalCapacity - c.AllocatedHours
	}
	if c.AvailableHours < 0 {
		c.AvailableHours = 0
	}
}

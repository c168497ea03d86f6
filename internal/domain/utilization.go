package domain

// UtilizationStatus buckets a member's utilization for display.
type UtilizationStatus string

const (
	UtilizationIdle       UtilizationStatus = "IDLE"
	UtilizationNormal     UtilizationStatus = "NORMAL"
	UtilizationBusy       UtilizationStatus = "BUSY"
	UtilizationOverloaded UtilizationStatus = "OVERLOADED"
)

func (s UtilizationStatus) String() string {
	return string(s)
}

// TeamUtilization is the derived per-member utilization summary.
type TeamUtilization struct {
	UserID      string            `json:"user_id"`
	UserName    string            `json:"user_name"`
	Utilization int               `json:"utilization"`
	Status      UtilizationStatus `json:"status"`
	TaskCount   int               `json:"task_count"`
	BurnoutRisk int               `json:"burnout_risk"`
}

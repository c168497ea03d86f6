package domain

import "time"

// RiskLevel is the bucketed severity of a delivery risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

func (l RiskLevel) String() string {
	return string(l)
}

// RiskLevelForScore buckets a clamped risk score into a level.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= 60:
		return RiskCritical
	case score >= 40:
		return RiskHigh
	case score >= 20:
		return RiskMedium
	default:
		return RiskLow
	}
}

// DeliveryRisk is a derived per-task risk entry. It is computed per
// invocation and never stored by the engine.
type DeliveryRisk struct {
	TaskID       string     `json:"task_id"`
	TaskTitle    string     `json:"task_title"`
	TaskNumber   int        `json:"task_number"`
	RiskLevel    RiskLevel  `json:"risk_level"`
	RiskScore    float64    `json:"risk_score"`
	Reasons      []string   `json:"reasons"`
	AssigneeID   string     `json:"assignee_id,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	DaysUntilDue *int       `json:"days_until_due,omitempty"`
}

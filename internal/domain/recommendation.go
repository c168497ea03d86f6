package domain

import (
	"encoding/json"
)

// RecommendationType identifies the kind of change a recommendation
// proposes.
type RecommendationType string

const (
	RecommendationReassignTask      RecommendationType = "REASSIGN_TASK"
	RecommendationDelayTask         RecommendationType = "DELAY_TASK"
	RecommendationRebalanceWorkload RecommendationType = "REBALANCE_WORKLOAD"
	RecommendationAddReviewer       RecommendationType = "ADD_REVIEWER"
	RecommendationAssignTask        RecommendationType = "ASSIGN_TASK"
)

func (t RecommendationType) String() string {
	return string(t)
}

// RecommendationTypes lists every known type in a stable order.
func RecommendationTypes() []RecommendationType {
	return []RecommendationType{
		RecommendationReassignTask,
		RecommendationDelayTask,
		RecommendationRebalanceWorkload,
		RecommendationAddReviewer,
		RecommendationAssignTask,
	}
}

// Action is the mutation a recommendation proposes to apply if accepted.
// Exactly one concrete type exists per RecommendationType so a switch over
// actions is exhaustive when a new kind is added.
type Action interface {
	Kind() RecommendationType
}

type ReassignTaskAction struct {
	TaskID     string `json:"task_id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
}

func (ReassignTaskAction) Kind() RecommendationType { return RecommendationReassignTask }

type DelayTaskAction struct {
	TaskID    string `json:"task_id"`
	DelayDays int    `json:"delay_days"`
}

func (DelayTaskAction) Kind() RecommendationType { return RecommendationDelayTask }

type RebalanceWorkloadAction struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
}

func (RebalanceWorkloadAction) Kind() RecommendationType { return RecommendationRebalanceWorkload }

type AddReviewerAction struct {
	TaskID     string `json:"task_id"`
	ReviewerID string `json:"reviewer_id"`
}

func (AddReviewerAction) Kind() RecommendationType { return RecommendationAddReviewer }

type AssignTaskAction struct {
	TaskID   string `json:"task_id"`
	ToUserID string `json:"to_user_id"`
}

func (AssignTaskAction) Kind() RecommendationType { return RecommendationAssignTask }

// RecommendationImpact is a multi-objective estimate of applying the
// action. It is an estimate, not a guarantee.
type RecommendationImpact struct {
	// DeliveryProbabilityChange is in percentage points.
	DeliveryProbabilityChange float64 `json:"delivery_probability_change"`
	CostImpactPercent         float64 `json:"cost_impact_percent"`
	BurnoutRiskChange         float64 `json:"burnout_risk_change"`
	OverallScore              float64 `json:"overall_score"`
}

// GeneratedRecommendation is one ranked suggestion produced by a single
// engine invocation. Recommendations are ephemeral; the decision lifecycle
// lives with the caller and feeds back as HistoricalOutcome records.
type GeneratedRecommendation struct {
	Type        RecommendationType   `json:"type"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Reason      string               `json:"reason"`
	Action      Action               `json:"action"`
	Impact      RecommendationImpact `json:"impact"`
}

// MarshalJSON flattens the action payload under a type discriminator.
func (r GeneratedRecommendation) MarshalJSON() ([]byte, error) {
	type alias GeneratedRecommendation

	var action json.RawMessage
	if r.Action != nil {
		payload, err := json.Marshal(r.Action)
		if err != nil {
			return nil, err
		}
		envelope := map[string]json.RawMessage{
			"type": json.RawMessage(`"` + string(r.Action.Kind()) + `"`),
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(payload, &fields); err != nil {
			return nil, err
		}
		for k, v := range fields {
			envelope[k] = v
		}
		action, err = json.Marshal(envelope)
		if err != nil {
			return nil, err
		}
	}

	return json.Marshal(struct {
		alias
		Action json.RawMessage `json:"action,omitempty"`
	}{
		alias:  alias(r),
		Action: action,
	})
}

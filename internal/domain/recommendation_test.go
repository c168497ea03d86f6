package domain

import (
	"encoding/json"
	"testing"
)

func TestGeneratedRecommendationMarshalFlattensAction(t *testing.T) {
	rec := GeneratedRecommendation{
		Type:  RecommendationReassignTask,
		Title: "Reassign #42 from mara to jun",
		Action: ReassignTaskAction{
			TaskID:     "t1",
			FromUserID: "u1",
			ToUserID:   "u2",
		},
		Impact: RecommendationImpact{OverallScore: 57},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded struct {
		Type   string         `json:"type"`
		Action map[string]any `json:"action"`
		Impact struct {
			OverallScore float64 `json:"overall_score"`
		} `json:"impact"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.Type != "REASSIGN_TASK" {
		t.Errorf("expected type REASSIGN_TASK, got %q", decoded.Type)
	}
	if decoded.Action["type"] != "REASSIGN_TASK" {
		t.Errorf("expected action type discriminator, got %v", decoded.Action["type"])
	}
	if decoded.Action["task_id"] != "t1" || decoded.Action["from_user_id"] != "u1" || decoded.Action["to_user_id"] != "u2" {
		t.Errorf("expected flattened action fields, got %v", decoded.Action)
	}
	if decoded.Impact.OverallScore != 57 {
		t.Errorf("expected overall score 57, got %v", decoded.Impact.OverallScore)
	}
}

func TestGeneratedRecommendationMarshalWithoutAction(t *testing.T) {
	data, err := json.Marshal(GeneratedRecommendation{Type: RecommendationRebalanceWorkload})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := decoded["action"]; ok {
		t.Error("expected action omitted when nil")
	}
}

func TestRecommendationTypesCoverEveryActionKind(t *testing.T) {
	actions := []Action{
		ReassignTaskAction{},
		DelayTaskAction{},
		RebalanceWorkloadAction{},
		AddReviewerAction{},
		AssignTaskAction{},
	}

	known := make(map[RecommendationType]bool)
	for _, rt := range RecommendationTypes() {
		known[rt] = true
	}

	for _, action := range actions {
		if !known[action.Kind()] {
			t.Errorf("action kind %v missing from known types", action.Kind())
		}
	}
}

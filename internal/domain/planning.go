package domain

import "time"

// SprintInfo describes the active sprint window, when one exists.
type SprintInfo struct {
	ID            string    `json:"id"`
	EndDate       time.Time `json:"end_date"`
	DaysRemaining int       `json:"days_remaining"`
}

// PlanningState is the aggregate snapshot one engine invocation operates
// on. It is built fresh by the caller per invocation and never persisted
// by the engine; Risks and DeliveryConfidence are filled in by the engine
// for the caller's benefit.
type PlanningState struct {
	Tasks              []TaskInfo     `json:"tasks"`
	Team               []CapacityInfo `json:"team"`
	Risks              []DeliveryRisk `json:"risks,omitempty"`
	DeliveryConfidence int            `json:"delivery_confidence"`
	ActiveSprint       *SprintInfo    `json:"active_sprint,omitempty"`
}

// TaskByID resolves a task in the snapshot, or nil when the ID is unknown.
func (s *PlanningState) TaskByID(id string) *TaskInfo {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// MemberByID resolves a team member in the snapshot, or nil when the ID is
// unknown.
func (s *PlanningState) MemberByID(id string) *CapacityInfo {
	for i := range s.Team {
		if s.Team[i].UserID == id {
			return &s.Team[i]
		}
	}
	return nil
}

// ActiveTasks returns the tasks still in flight. DONE tasks are excluded
// from all risk and capacity computations.
func (s *PlanningState) ActiveTasks() []TaskInfo {
	active := make([]TaskInfo, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	return active
}

// IsBlocked reports whether any of the task's resolvable dependencies is
// not DONE. Dependency IDs missing from the snapshot are ignored.
func (s *PlanningState) IsBlocked(task *TaskInfo) bool {
	return s.UnresolvedDependencyCount(task) > 0
}

// UnresolvedDependencyCount counts dependencies whose task is present in
// the snapshot and not DONE.
func (s *PlanningState) UnresolvedDependencyCount(task *TaskInfo) int {
	count := 0
	for _, depID := range task.Dependencies {
		if dep := s.TaskByID(depID); dep != nil && !dep.Status.IsDone() {
			count++
		}
	}
	return count
}

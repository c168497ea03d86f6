package domain

import "time"

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusInReview   TaskStatus = "IN_REVIEW"
	StatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) String() string {
	return string(s)
}

func (s TaskStatus) IsDone() bool {
	return s == StatusDone
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "LOW"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityCritical TaskPriority = "CRITICAL"
)

func (p TaskPriority) String() string {
	return string(p)
}

// Severity maps a priority to an ordinal for sorting. Unknown priorities
// sort lowest.
func (p TaskPriority) Severity() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// TaskInfo is a snapshot of a single task at planning time. The engine
// never mutates it.
type TaskInfo struct {
	ID             string       `json:"id"`
	Number         int          `json:"number"`
	Title          string       `json:"title"`
	Type           string       `json:"type"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	AssigneeID     string       `json:"assignee_id,omitempty"`
	SprintID       string       `json:"sprint_id,omitempty"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	StartDate      *time.Time   `json:"start_date,omitempty"`
	EstimatedHours float64      `json:"estimated_hours"`
	Dependencies   []string     `json:"dependencies,omitempty"`
}

func (t *TaskInfo) IsActive() bool {
	return t.Status != StatusDone
}

func (t *TaskInfo) IsAssigned() bool {
	return t.AssigneeID != ""
}

// IsOverdue reports whether the task has a due date strictly before now.
func (t *TaskInfo) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// DaysUntilDue returns ceil((dueDate - now) / 24h), or nil when the task
// has no due date. Negative values mean the task is overdue.
func (t *TaskInfo) DaysUntilDue(now time.Time) *int {
	if t.DueDate == nil {
		return nil
	}
	diff := t.DueDate.Sub(now)
	days := int(diff.Hours() / 24)
	if diff > 0 && diff.Hours() > float64(days)*24 {
		days++
	}
	return &days
}

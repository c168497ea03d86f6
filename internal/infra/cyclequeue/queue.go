package cyclequeue

import (
	"context"
	"time"
)

//go:generate mockgen -source=queue.go -destination=mock.go -package=cyclequeue

// CycleQueue schedules a deferred re-evaluation of a project. After an
// advisory cycle runs, the engine enqueues a callback so the project is
// scored again once the team has had time to act on the recommendations.
type CycleQueue interface {
	ScheduleCycle(ctx context.Context, task *CycleTask) (*ScheduleResponse, error)
	CancelCycle(ctx context.Context, taskID string) error
}

// CycleTask names the project to re-evaluate and when.
type CycleTask struct {
	ProjectID  string    `json:"project_id"`
	RunID      string    `json:"run_id"`
	ScheduleAt time.Time `json:"-"`
}

type ScheduleResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

package stub

// taskRequest mirrors the Cloud Tasks shaped payload the advisor's
// scheduler client posts when it books the next re-evaluation cycle.
type taskRequest struct {
	Task task `json:"task"`
}

type task struct {
	HTTPRequest  httpRequest `json:"httpRequest"`
	ScheduleTime string      `json:"scheduleTime,omitempty"`
}

type httpRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type taskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

// cyclePayload is the decoded task body, matching cyclequeue.CycleTask.
type cyclePayload struct {
	ProjectID string `json:"project_id"`
	RunID     string `json:"run_id"`
}

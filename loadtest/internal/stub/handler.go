package stub

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler implements just enough of the scheduler API for the advisor's
// cycle queue client to run against during load tests.
type Handler struct {
	storage *CycleStorage
}

func NewHandler(storage *CycleStorage) *Handler {
	return &Handler{storage: storage}
}

// Register wires the stub routes onto a router.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/tasks", h.HandleSchedule)
	r.POST("/tasks/:queue", h.HandleSchedule)
	r.DELETE("/tasks/:id", h.HandleCancel)
	r.GET("/cycles", h.HandleList)
	r.POST("/reset", h.HandleReset)
}

func (h *Handler) HandleSchedule(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := base64.StdEncoding.DecodeString(req.Task.HTTPRequest.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task body is not valid base64"})
		return
	}

	var payload cyclePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task body is not a cycle task"})
		return
	}

	scheduleAt := time.Now()
	if req.Task.ScheduleTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.Task.ScheduleTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduleTime: " + req.Task.ScheduleTime})
			return
		}
		scheduleAt = parsed
	}

	stored := h.storage.Add(ScheduledCycle{
		ProjectID:  payload.ProjectID,
		RunID:      payload.RunID,
		Queue:      c.Param("queue"),
		ScheduleAt: scheduleAt,
	})

	slog.Info("cycle scheduled",
		slog.String("name", stored.Name),
		slog.String("project_id", stored.ProjectID),
		slog.String("run_id", stored.RunID),
		slog.Time("schedule_at", stored.ScheduleAt),
	)

	now := time.Now().Format(time.RFC3339)
	c.JSON(http.StatusOK, taskResponse{
		Name:         stored.Name,
		ScheduleTime: stored.ScheduleAt.Format(time.RFC3339),
		CreateTime:   now,
	})
}

func (h *Handler) HandleCancel(c *gin.Context) {
	name := c.Param("id")
	if !h.storage.Remove(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task: " + name})
		return
	}

	slog.Info("cycle cancelled", slog.String("name", name))
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "name": name})
}

func (h *Handler) HandleList(c *gin.Context) {
	cycles := h.storage.List(c.Query("project_id"))
	c.JSON(http.StatusOK, gin.H{
		"count":  len(cycles),
		"cycles": cycles,
	})
}

func (h *Handler) HandleReset(c *gin.Context) {
	n := h.storage.Reset()

	slog.Info("stub reset", slog.Int("dropped", n))
	c.JSON(http.StatusOK, gin.H{"status": "reset complete", "dropped": n})
}

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/infra/cyclequeue"
	"github.com/planvane/allocation-advisor/internal/service/recommend"
)

// SnapshotRequest carries the planning snapshot the caller wants scored.
// Risks and confidence are computed server side; the caller only supplies
// raw task and capacity state.
type SnapshotRequest struct {
	ProjectID    string                `json:"project_id" binding:"required"`
	Tasks        []domain.TaskInfo     `json:"tasks"`
	Team         []domain.CapacityInfo `json:"team"`
	ActiveSprint *domain.SprintInfo    `json:"active_sprint,omitempty"`
	Config       *config.EngineConfig  `json:"config,omitempty"`
}

type recommendationResponse struct {
	RunID string `json:"run_id"`
	*recommend.Result
}

type RecommendationHandler struct {
	engine      *recommend.Service
	config      *config.Config
	runRecorder domain.RunRecorder
	cycleQueue  cyclequeue.CycleQueue
}

func NewRecommendationHandler(
	engine *recommend.Service,
	cfg *config.Config,
	runRecorder domain.RunRecorder,
	cycleQueue cyclequeue.CycleQueue,
) *RecommendationHandler {
	return &RecommendationHandler{
		engine:      engine,
		config:      cfg,
		runRecorder: runRecorder,
		cycleQueue:  cycleQueue,
	}
}

// HandleRecommendations runs one advisory cycle over the posted snapshot.
func (h *RecommendationHandler) HandleRecommendations(c *gin.Context) {
	ctx := c.Request.Context()

	now, ok := resolveNow(c)
	if !ok {
		return
	}

	runID := c.GetHeader("X-Run-ID")
	if runID == "" {
		runID = uuid.NewString()
	}

	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "request binding failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	state := &domain.PlanningState{
		Tasks:        req.Tasks,
		Team:         req.Team,
		ActiveSprint: req.ActiveSprint,
	}

	started := time.Now()
	result, err := h.engine.Recommend(ctx, state, req.Config, now, runID)
	if err != nil {
		slog.ErrorContext(ctx, "advisory cycle failed",
			slog.String("project_id", req.ProjectID),
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "engine_error", "failed to generate recommendations")
		return
	}

	h.recordRun(c, req.ProjectID, runID, now, state, result, time.Since(started))
	h.scheduleNextCycle(c, req.ProjectID, runID, now)

	c.JSON(http.StatusOK, recommendationResponse{
		RunID:  runID,
		Result: result,
	})
}

// HandleAnalyze scores the snapshot without generating recommendations.
func (h *RecommendationHandler) HandleAnalyze(c *gin.Context) {
	ctx := c.Request.Context()

	now, ok := resolveNow(c)
	if !ok {
		return
	}

	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "request binding failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	state := &domain.PlanningState{
		Tasks:        req.Tasks,
		Team:         req.Team,
		ActiveSprint: req.ActiveSprint,
	}

	analysis := h.engine.Analyze(ctx, state, nil, now)

	c.JSON(http.StatusOK, analysis)
}

func (h *RecommendationHandler) recordRun(c *gin.Context, projectID, runID string, now time.Time, state *domain.PlanningState, result *recommend.Result, duration time.Duration) {
	if h.runRecorder == nil {
		return
	}

	ctx := c.Request.Context()

	criticalRisks := 0
	for _, r := range result.Risks {
		if r.RiskLevel == domain.RiskCritical {
			criticalRisks++
		}
	}

	activeTasks := 0
	for i := range state.Tasks {
		if state.Tasks[i].IsActive() {
			activeTasks++
		}
	}

	record := &domain.RunRecord{
		RunID:              runID,
		RanAt:              now,
		DeliveryConfidence: result.DeliveryConfidence,
		TaskCount:          len(state.Tasks),
		ActiveTaskCount:    activeTasks,
		RiskCount:          len(result.Risks),
		CriticalRiskCount:  criticalRisks,
		Recommendations:    len(result.Recommendations),
		Duration:           duration,
	}
	if err := h.runRecorder.RecordRun(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record run analytics",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
	}

	recRecords := make([]domain.RecommendationRecord, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		recRecords = append(recRecords, domain.RecommendationRecord{
			RunID:        runID,
			Type:         rec.Type,
			OverallScore: rec.Impact.OverallScore,
			RawScore:     rec.Impact.DeliveryProbabilityChange,
		})
	}
	if err := h.runRecorder.RecordRecommendations(ctx, recRecords); err != nil {
		slog.WarnContext(ctx, "failed to record recommendation analytics",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
	}
}

func (h *RecommendationHandler) scheduleNextCycle(c *gin.Context, projectID, runID string, now time.Time) {
	if h.cycleQueue == nil {
		return
	}

	ctx := c.Request.Context()
	interval := time.Duration(h.config.Cycle.IntervalMinutes) * time.Minute

	resp, err := h.cycleQueue.ScheduleCycle(ctx, &cyclequeue.CycleTask{
		ProjectID:  projectID,
		RunID:      runID,
		ScheduleAt: now.Add(interval),
	})
	if err != nil {
		// The caller still gets its recommendations; the next cycle just
		// will not fire automatically.
		slog.WarnContext(ctx, "failed to schedule next advisory cycle",
			slog.String("project_id", projectID),
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return
	}

	slog.DebugContext(ctx, "next advisory cycle scheduled",
		slog.String("project_id", projectID),
		slog.String("task_name", resp.Name),
		slog.Time("schedule_at", now.Add(interval)),
	)
}

// resolveNow parses the optional virtual time query. Replays and tests use
// it to run the engine at a fixed point in time.
func resolveNow(c *gin.Context) (time.Time, bool) {
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid from time format, expected RFC3339")
			return time.Time{}, false
		}
		slog.InfoContext(c.Request.Context(), "using virtual time",
			slog.Time("virtual_now", parsed),
		)
		return parsed, true
	}
	return time.Now(), true
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{
		"error":   errType,
		"message": message,
	})
}

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/observability/metrics"
)

// OutcomeRequest records the caller's decision on a recommendation.
type OutcomeRequest struct {
	Type     string `json:"type" binding:"required"`
	Accepted *bool  `json:"accepted" binding:"required"`
	RunID    string `json:"run_id,omitempty"`
}

type OutcomeHandler struct {
	outcomeRepo   domain.OutcomeRepository
	engineMetrics *metrics.EngineMetrics
}

func NewOutcomeHandler(outcomeRepo domain.OutcomeRepository, engineMetrics *metrics.EngineMetrics) *OutcomeHandler {
	return &OutcomeHandler{
		outcomeRepo:   outcomeRepo,
		engineMetrics: engineMetrics,
	}
}

// HandleRecordOutcome stores an accept or reject decision so future cycles
// can learn from it.
func (h *OutcomeHandler) HandleRecordOutcome(c *gin.Context) {
	ctx := c.Request.Context()

	var req OutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "request binding failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	recType := domain.RecommendationType(req.Type)
	if !validRecommendationType(recType) {
		respondError(c, http.StatusBadRequest, "validation_error", domain.ErrUnknownRecommendation.Error())
		return
	}

	record := &domain.OutcomeRecord{
		Type:       recType,
		Accepted:   *req.Accepted,
		RunID:      req.RunID,
		RecordedAt: time.Now(),
	}

	if err := h.outcomeRepo.RecordOutcome(ctx, record); err != nil {
		slog.ErrorContext(ctx, "failed to record outcome",
			slog.String("type", req.Type),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to record outcome")
		return
	}

	if h.engineMetrics != nil {
		h.engineMetrics.RecordOutcome(ctx, req.Type, *req.Accepted)
	}

	slog.InfoContext(ctx, "outcome recorded",
		slog.String("type", req.Type),
		slog.Bool("accepted", *req.Accepted),
		slog.String("run_id", req.RunID),
	)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleOutcomeSummary returns accept and reject counts per recommendation
// type.
func (h *OutcomeHandler) HandleOutcomeSummary(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.outcomeRepo.GetSummary(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch outcome summary",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to fetch outcome summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func validRecommendationType(t domain.RecommendationType) bool {
	for _, known := range domain.RecommendationTypes() {
		if t == known {
			return true
		}
	}
	return false
}

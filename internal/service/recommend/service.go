package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/observability/metrics"
	"github.com/planvane/allocation-advisor/internal/observability/tracing"
	"github.com/planvane/allocation-advisor/internal/service/confidence"
	"github.com/planvane/allocation-advisor/internal/service/risk"
	"github.com/planvane/allocation-advisor/internal/service/utilization"
)

type Service struct {
	generators    []Generator
	explorer      *Explorer
	riskScorer    *risk.Scorer
	estimator     *confidence.Estimator
	classifier    *utilization.Classifier
	outcomeRepo   domain.OutcomeRepository
	engineMetrics *metrics.EngineMetrics
	engineCfg     *config.EngineConfig
}

func NewService(
	generators []Generator,
	explorer *Explorer,
	riskScorer *risk.Scorer,
	estimator *confidence.Estimator,
	classifier *utilization.Classifier,
	outcomeRepo domain.OutcomeRepository,
	engineMetrics *metrics.EngineMetrics,
	engineCfg *config.EngineConfig,
) *Service {
	return &Service{
		generators:    generators,
		explorer:      explorer,
		riskScorer:    riskScorer,
		estimator:     estimator,
		classifier:    classifier,
		outcomeRepo:   outcomeRepo,
		engineMetrics: engineMetrics,
		engineCfg:     engineCfg,
	}
}

// Result is one full advisory cycle over a planning snapshot.
type Result struct {
	Recommendations    []domain.GeneratedRecommendation `json:"recommendations"`
	Risks              []domain.DeliveryRisk            `json:"risks"`
	DeliveryConfidence int                              `json:"delivery_confidence"`
	Utilization        []domain.TeamUtilization         `json:"utilization"`
	GeneratedCount     int                              `json:"generated_count"`
}

// Recommend runs the full advisory cycle: analyze the snapshot, run every
// candidate generator, reweight scores against historical outcomes, then
// rank and cap the result. A per-request override may relax or tighten the
// configured engine weights for this cycle only.
func (s *Service) Recommend(ctx context.Context, state *domain.PlanningState, override *config.EngineConfig, now time.Time, runID string) (*Result, error) {
	ctx, span := tracing.StartAdvisoryCycleSpan(ctx, runID, len(state.Tasks), len(state.Team))
	defer span.End()

	cfg := s.engineCfg.Merge(override)

	analysis := s.Analyze(ctx, state, cfg, now)
	state.Risks = analysis.Risks
	state.DeliveryConfidence = analysis.DeliveryConfidence

	var candidates []domain.GeneratedRecommendation

	for _, gen := range s.generators {
		genStart := time.Now()
		recs := gen.Generate(state, cfg, now)
		candidates = append(candidates, recs...)

		slog.DebugContext(ctx, "generator produced candidates",
			slog.String("generator", gen.Name()),
			slog.Int("count", len(recs)),
			slog.String("run_id", runID),
		)

		if s.engineMetrics != nil {
			s.engineMetrics.RecordGenerator(ctx, gen.Name(), len(recs), time.Since(genStart))
		}
	}

	generated := len(candidates)

	fetchCtx, fetchSpan := tracing.StartOutcomeFetchSpan(ctx)
	history, err := s.outcomeRepo.GetOutcomes(fetchCtx)
	fetchSpan.End()
	if err != nil {
		// Outcome history only tunes scores; a fetch failure must not
		// block the cycle.
		slog.WarnContext(ctx, "failed to fetch outcome history, skipping bandit adjustment",
			slog.String("error", err.Error()),
			slog.String("run_id", runID),
		)
	} else {
		s.explorer.Adjust(candidates, history)
	}

	ranked := Rank(candidates, cfg.MaxChangesPerCycle)

	slog.InfoContext(ctx, "advisory cycle complete",
		slog.Int("generated", generated),
		slog.Int("returned", len(ranked)),
		slog.Int("delivery_confidence", analysis.DeliveryConfidence),
		slog.Int("risk_count", len(analysis.Risks)),
		slog.String("run_id", runID),
	)

	if s.engineMetrics != nil {
		s.engineMetrics.RecordCycle(ctx, generated, len(ranked), analysis.DeliveryConfidence)
	}
	tracing.RecordAdvisoryCycleResult(span, generated, len(ranked), analysis.DeliveryConfidence, len(analysis.Risks), nil)

	return &Result{
		Recommendations:    ranked,
		Risks:              analysis.Risks,
		DeliveryConfidence: analysis.DeliveryConfidence,
		Utilization:        analysis.Utilization,
		GeneratedCount:     generated,
	}, nil
}

// Analysis is the read-only health view of a planning snapshot.
type Analysis struct {
	Risks              []domain.DeliveryRisk    `json:"risks"`
	DeliveryConfidence int                      `json:"delivery_confidence"`
	Utilization        []domain.TeamUtilization `json:"utilization"`
}

// Analyze scores the snapshot without generating recommendations.
func (s *Service) Analyze(ctx context.Context, state *domain.PlanningState, cfg *config.EngineConfig, now time.Time) *Analysis {
	if cfg == nil {
		cfg = s.engineCfg
	}

	for i := range state.Team {
		state.Team[i].Normalize()
	}

	risks := s.riskScorer.IdentifyDeliveryRisks(state, now)
	conf := s.estimator.Calculate(state, now)
	util := s.classifier.ClassifyWith(state.Team, cfg.IdleThresholdPercent)

	slog.DebugContext(ctx, "analyzed planning snapshot",
		slog.Int("task_count", len(state.Tasks)),
		slog.Int("member_count", len(state.Team)),
		slog.Int("risk_count", len(risks)),
		slog.Int("delivery_confidence", conf),
	)

	return &Analysis{
		Risks:              risks,
		DeliveryConfidence: conf,
		Utilization:        util,
	}
}

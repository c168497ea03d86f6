package recommend

import (
	"time"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
	"github.com/planvane/allocation-advisor/internal/service/skills"
)

// Generator is one independent recommendation strategy. Implementations
// are pure: they scan the snapshot and propose zero or more candidates
// with an impact estimate, without mutating the snapshot or performing
// I/O.
type Generator interface {
	// Name identifies the strategy in logs and metrics.
	Name() string

	Generate(state *domain.PlanningState, cfg *config.EngineConfig, now time.Time) []domain.GeneratedRecommendation
}

// NewGenerators assembles the five strategies in their fixed order. All
// of them run on every cycle; their outputs are concatenated before
// ranking.
func NewGenerators(matcher *skills.Matcher) []Generator {
	return []Generator{
		NewReassignmentGenerator(matcher),
		NewDelayGenerator(),
		NewRebalanceGenerator(),
		NewReviewerGenerator(matcher),
		NewAssignGenerator(matcher),
	}
}

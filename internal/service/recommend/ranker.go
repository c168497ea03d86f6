package recommend

import (
	"sort"

	"github.com/planvane/allocation-advisor/internal/domain"
)

const defaultMaxChanges = 5

// Rank orders recommendations by descending overall score and truncates the
// list to maxChanges. Generator order breaks ties, so equal-scoring
// recommendations keep a stable, reproducible ordering. A non-positive
// maxChanges falls back to the default cap.
func Rank(recs []domain.GeneratedRecommendation, maxChanges int) []domain.GeneratedRecommendation {
	if maxChanges <= 0 {
		maxChanges = defaultMaxChanges
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Impact.OverallScore > recs[j].Impact.OverallScore
	})

	if len(recs) > maxChanges {
		recs = recs[:maxChanges]
	}
	return recs
}

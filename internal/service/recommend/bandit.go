package recommend

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
)

// Explorer reweights recommendation scores with a Thompson-sampling pass
// over historical accept/reject outcomes, so recommendation types the team
// keeps rejecting gradually lose ground to types it accepts.
type Explorer struct {
	cfg *config.BanditConfig
}

func NewExplorer(cfg *config.BanditConfig) *Explorer {
	return &Explorer{cfg: cfg}
}

// Adjust blends each recommendation's score with a sampled estimate of its
// type's acceptance rate. The sampled weight only modulates the existing
// score; a recommendation never gains score from exploration alone.
// Recommendations are adjusted in place.
func (e *Explorer) Adjust(recs []domain.GeneratedRecommendation, history []domain.HistoricalOutcome) {
	if len(recs) == 0 {
		return
	}

	accepted := make(map[domain.RecommendationType]int)
	rejected := make(map[domain.RecommendationType]int)
	for _, h := range history {
		if h.Accepted {
			accepted[h.Type]++
		} else {
			rejected[h.Type]++
		}
	}

	rng := e.newRNG()

	for i := range recs {
		rec := &recs[i]
		alpha := e.cfg.PriorAlpha + float64(accepted[rec.Type])
		beta := e.cfg.PriorBeta + float64(rejected[rec.Type])

		sample := sampleBeta(rng, alpha, beta, e.cfg.NoiseHalfWidth)

		score := rec.Impact.OverallScore
		adjusted := score*e.cfg.ExploitWeight + sample*score*e.cfg.ExploreWeight
		rec.Impact.OverallScore = math.Round(adjusted*100) / 100
	}
}

// newRNG builds a fresh generator per adjustment pass. Handlers run
// concurrently and rand.Rand is not safe for shared use; a seeded config
// keeps test runs reproducible.
func (e *Explorer) newRNG() *rand.Rand {
	if e.cfg.Seed != 0 {
		return rand.New(rand.NewPCG(e.cfg.Seed, 0))
	}
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>32))
}

// sampleBeta approximates a draw from Beta(alpha, beta) as the distribution
// mean plus bounded uniform noise. The mean carries the learned acceptance
// signal; the noise term supplies just enough exploration to keep
// low-history types in rotation.
func sampleBeta(rng *rand.Rand, alpha, beta, noiseHalfWidth float64) float64 {
	mean := alpha / (alpha + beta)
	noise := (rng.Float64()*2 - 1) * noiseHalfWidth
	return math.Min(1, math.Max(0, mean+noise))
}

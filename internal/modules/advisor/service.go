package advisor

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/universe"
)

// Batch is one full recommendation run over the catalog, ranked by score
// descending. Batches are recomputed on every request and never stored;
// the UUID only correlates log lines and API responses.
type Batch struct {
	BatchID              string                  `json:"batch_id"`
	GeneratedAt          time.Time               `json:"generated_at"`
	AvailableFunds       float64                 `json:"available_funds"`
	MaxAllocationPercent float64                 `json:"max_allocation_percent"`
	Recommendations      []domain.Recommendation `json:"recommendations"`
}

// Service runs the engine over the full securities batch and ranks the
// results.
type Service struct {
	provider universe.Provider
	engine   *Engine
	log      zerolog.Logger
}

// NewService creates a new advisor service
func NewService(provider universe.Provider, engine *Engine, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		engine:   engine,
		log:      log.With().Str("service", "advisor").Logger(),
	}
}

// BuildRecommendations computes a fresh ranked batch for the given funds.
func (s *Service) BuildRecommendations(availableFunds, maxAllocationPercent float64) (*Batch, error) {
	securities, err := s.provider.Securities()
	if err != nil {
		return nil, fmt.Errorf("failed to load securities: %w", err)
	}

	recommendations := make([]domain.Recommendation, 0, len(securities))
	for _, security := range securities {
		rec, err := s.engine.Recommend(security, availableFunds, maxAllocationPercent)
		if err != nil {
			return nil, fmt.Errorf("failed to build recommendation for %s: %w", security.Symbol, err)
		}
		rec.Summary = summarize(rec, availableFunds)
		recommendations = append(recommendations, rec)
	}

	// Stable sort keeps input order as the tiebreak for equal scores,
	// which makes rankings deterministic across runs.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	batch := &Batch{
		BatchID:              uuid.New().String(),
		GeneratedAt:          time.Now().UTC(),
		AvailableFunds:       availableFunds,
		MaxAllocationPercent: maxAllocationPercent,
		Recommendations:      recommendations,
	}

	s.log.Debug().
		Str("batch_id", batch.BatchID).
		Float64("funds", availableFunds).
		Int("count", len(recommendations)).
		Msg("Built recommendation batch")

	return batch, nil
}

// summarize produces the analysis summary line shown in the dashboard
// detail pane.
func summarize(rec domain.Recommendation, availableFunds float64) string {
	var potential string
	switch {
	case rec.Score > 60:
		potential = "strong potential"
	case rec.Score > 40:
		potential = "moderate potential"
	default:
		potential = "limited potential"
	}

	var riskNote string
	switch rec.Volatility {
	case domain.VolatilityLow, domain.VolatilityVeryLow:
		riskNote = "Low volatility makes it suitable for more conservative investors."
	case domain.VolatilityMedium:
		riskNote = "Medium volatility suggests balanced risk/reward profile."
	default:
		riskNote = "High volatility indicates higher risk but potential for greater returns."
	}

	allocationPct := round1(rec.RecommendedAmount / availableFunds * 100)

	return fmt.Sprintf("%s shows %s based on its current metrics. %s Recommended allocation represents a %.1f%% position in your portfolio.",
		rec.Symbol, potential, riskNote, allocationPct)
}

// round1 rounds to 1 decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

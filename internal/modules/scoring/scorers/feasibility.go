// Package scorers provides security scoring implementations.
package scorers

import (
	"fmt"

	"github.com/aristath/advisor/internal/domain"
)

// FeasibilityScorer computes the composite feasibility score for a security.
// Components:
// - P/E (step function, 5-20 points): cheaper valuation scores higher
// - Growth (linear, growth% x 3, unbounded): dominant term for high-growth names
// - Volatility (fixed lookup, 0-20 points): calmer buckets score higher
type FeasibilityScorer struct{}

// FeasibilityScore represents the result of feasibility scoring.
//
// Score is the raw component sum and is NOT clamped: the growth term is
// unbounded, so the total can exceed the nominal 0-100 scale (e.g. growth
// of 30.2% alone contributes 90.6 points). Consumers that present the
// score on a bounded gauge must clamp at display time.
type FeasibilityScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// NewFeasibilityScorer creates a new feasibility scorer
func NewFeasibilityScorer() *FeasibilityScorer {
	return &FeasibilityScorer{}
}

// Calculate computes the feasibility score for one security
func (fs *FeasibilityScorer) Calculate(security domain.Security) (FeasibilityScore, error) {
	peScore, err := calculatePEScore(security.PE)
	if err != nil {
		return FeasibilityScore{}, err
	}

	growthScore := security.Growth * 3

	volatilityScore, err := calculateVolatilityScore(security.Volatility)
	if err != nil {
		return FeasibilityScore{}, err
	}

	return FeasibilityScore{
		Score: peScore + growthScore + volatilityScore,
		Components: map[string]float64{
			"pe":         peScore,
			"growth":     growthScore,
			"volatility": volatilityScore,
		},
	}, nil
}

// calculatePEScore maps P/E to a step score. Boundaries are half-open on
// the low side: exactly 30 scores 15, not 20. Monotonically non-increasing.
func calculatePEScore(pe float64) (float64, error) {
	if pe < 0 {
		return 0, fmt.Errorf("%w: negative P/E %.2f", domain.ErrInvalidInput, pe)
	}

	switch {
	case pe < 30:
		return 20, nil
	case pe < 40:
		return 15, nil
	case pe < 50:
		return 10, nil
	default:
		return 5, nil
	}
}

// calculateVolatilityScore is a total lookup over the five buckets,
// strictly decreasing from Very Low (20) to Very High (0).
func calculateVolatilityScore(v domain.Volatility) (float64, error) {
	switch v {
	case domain.VolatilityVeryLow:
		return 20, nil
	case domain.VolatilityLow:
		return 15, nil
	case domain.VolatilityMedium:
		return 10, nil
	case domain.VolatilityHigh:
		return 5, nil
	case domain.VolatilityVeryHigh:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unknown volatility %q", domain.ErrInvalidInput, v)
	}
}

// Package advisor provides trade recommendation functionality: feasibility
// scoring, position sizing, holding-period selection and stop-loss pricing.
package advisor

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/scoring/scorers"
)

// DefaultMaxAllocationPercent caps a single position at 10% of available
// funds unless the caller overrides it.
const DefaultMaxAllocationPercent = 10.0

// Engine computes a recommendation for a single security. It is stateless:
// every call is fully determined by its inputs, so concurrent use needs no
// synchronization.
type Engine struct {
	scorer *scorers.FeasibilityScorer
	log    zerolog.Logger
}

// NewEngine creates a new recommendation engine
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		scorer: scorers.NewFeasibilityScorer(),
		log:    log.With().Str("module", "advisor").Logger(),
	}
}

// Recommend builds the recommendation record for one security given the
// investor's available funds and the allocation cap (percent of funds).
func (e *Engine) Recommend(security domain.Security, availableFunds, maxAllocationPercent float64) (domain.Recommendation, error) {
	if availableFunds <= 0 {
		return domain.Recommendation{}, fmt.Errorf("%w: available funds must be positive, got %.2f", domain.ErrInvalidInput, availableFunds)
	}
	if maxAllocationPercent <= 0 || maxAllocationPercent > 100 {
		return domain.Recommendation{}, fmt.Errorf("%w: max allocation percent must be in (0, 100], got %.2f", domain.ErrInvalidInput, maxAllocationPercent)
	}
	if err := security.Validate(); err != nil {
		return domain.Recommendation{}, err
	}

	score, err := e.scorer.Calculate(security)
	if err != nil {
		return domain.Recommendation{}, err
	}

	amount := calculateInvestmentAmount(availableFunds, score.Score, maxAllocationPercent)

	holdPeriod, err := recommendHoldingPeriod(security.Volatility, security.Growth)
	if err != nil {
		return domain.Recommendation{}, err
	}

	stopLoss, err := calculateStopLoss(security.CurrentPrice, security.Volatility)
	if err != nil {
		return domain.Recommendation{}, err
	}

	return domain.Recommendation{
		Security:          security,
		Score:             score.Score,
		ScoreComponents:   score.Components,
		RecommendedAmount: amount,
		HoldPeriod:        holdPeriod,
		StopLoss:          stopLoss,
	}, nil
}

// calculateInvestmentAmount sizes the position: higher score means a higher
// percentage of funds, capped at maxPercentage. The min clamp is what
// actually bounds the result, since scores above 100 are possible.
func calculateInvestmentAmount(totalFunds, score, maxPercentage float64) float64 {
	percentageToInvest := math.Min(score/100*maxPercentage, maxPercentage)
	return round2(totalFunds * percentageToInvest / 100)
}

// recommendHoldingPeriod picks a holding-period label from the
// volatility/growth decision table.
func recommendHoldingPeriod(v domain.Volatility, growth float64) (domain.HoldingPeriod, error) {
	switch v {
	case domain.VolatilityVeryHigh:
		return domain.HoldShortTerm, nil
	case domain.VolatilityHigh:
		if growth > 15 {
			return domain.HoldMediumTerm, nil
		}
		return domain.HoldShortTerm, nil
	case domain.VolatilityMedium:
		if growth > 10 {
			return domain.HoldMediumTerm, nil
		}
		return domain.HoldLongTerm, nil
	case domain.VolatilityLow, domain.VolatilityVeryLow:
		return domain.HoldLongTermPlus, nil
	default:
		return "", fmt.Errorf("%w: unknown volatility %q", domain.ErrInvalidInput, v)
	}
}

// calculateStopLoss derives the exit threshold as a fixed percentage below
// current price. The percentage is always strictly positive, so the stop
// loss is always strictly below the current price.
func calculateStopLoss(currentPrice float64, v domain.Volatility) (float64, error) {
	var stopLossPercent float64
	switch v {
	case domain.VolatilityVeryLow:
		stopLossPercent = 5
	case domain.VolatilityLow:
		stopLossPercent = 7
	case domain.VolatilityMedium:
		stopLossPercent = 10
	case domain.VolatilityHigh:
		stopLossPercent = 15
	case domain.VolatilityVeryHigh:
		stopLossPercent = 20
	default:
		return 0, fmt.Errorf("%w: unknown volatility %q", domain.ErrInvalidInput, v)
	}

	return round2(currentPrice * (1 - stopLossPercent/100)), nil
}

// round2 rounds to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

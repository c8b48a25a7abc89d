package advisor

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/universe"
)

func validSecurity() domain.Security {
	return domain.Security{
		Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 178.72,
		PE: 29.4, MarketCap: 2760, Growth: 8.1,
		Volatility: domain.VolatilityMedium,
	}
}

func TestRecommendRejectsInvalidInput(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	tests := []struct {
		name     string
		security domain.Security
		funds    float64
		maxPct   float64
	}{
		{name: "zero funds", security: validSecurity(), funds: 0, maxPct: 10},
		{name: "negative funds", security: validSecurity(), funds: -500, maxPct: 10},
		{name: "zero max percent", security: validSecurity(), funds: 10000, maxPct: 0},
		{name: "max percent above 100", security: validSecurity(), funds: 10000, maxPct: 101},
		{
			name: "negative price",
			security: func() domain.Security {
				s := validSecurity()
				s.CurrentPrice = -1
				return s
			}(),
			funds: 10000, maxPct: 10,
		},
		{
			name: "negative pe",
			security: func() domain.Security {
				s := validSecurity()
				s.PE = -3
				return s
			}(),
			funds: 10000, maxPct: 10,
		},
		{
			name: "unknown volatility",
			security: func() domain.Security {
				s := validSecurity()
				s.Volatility = "Wild"
				return s
			}(),
			funds: 10000, maxPct: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Recommend(tt.security, tt.funds, tt.maxPct)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecommendAllocationClamp(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	// NVDA scores 100.6, so score/100*maxPct = 10.06 would exceed the
	// 10% cap; the clamp must engage and allocate exactly 1000.00.
	nvda := domain.Security{
		Symbol: "NVDA", Name: "NVIDIA Corp.", CurrentPrice: 860.26,
		PE: 62.1, MarketCap: 2120, Growth: 30.2,
		Volatility: domain.VolatilityHigh,
	}

	rec, err := engine.Recommend(nvda, 10000, 10)
	require.NoError(t, err)

	assert.InDelta(t, 100.6, rec.Score, 1e-9)
	assert.Equal(t, 1000.00, rec.RecommendedAmount)
}

func TestRecommendAllocationProportional(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	// JPM scores 47.9 -> 4.79% of funds -> 479.00
	jpm := domain.Security{
		Symbol: "JPM", Name: "JPMorgan Chase & Co.", CurrentPrice: 182.43,
		PE: 11.9, MarketCap: 525, Growth: 4.3,
		Volatility: domain.VolatilityLow,
	}

	rec, err := engine.Recommend(jpm, 10000, 10)
	require.NoError(t, err)

	assert.InDelta(t, 47.9, rec.Score, 1e-9)
	assert.Equal(t, 479.00, rec.RecommendedAmount)
}

func TestRecommendStopLoss(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	// Medium volatility -> 10% below price: 178.72 * 0.90 = 160.85 rounded
	rec, err := engine.Recommend(validSecurity(), 10000, 10)
	require.NoError(t, err)
	assert.Equal(t, 160.85, rec.StopLoss)
}

func TestRecommendHoldingPeriodTable(t *testing.T) {
	tests := []struct {
		name       string
		volatility domain.Volatility
		growth     float64
		want       domain.HoldingPeriod
	}{
		{name: "very high always short", volatility: domain.VolatilityVeryHigh, growth: 50, want: domain.HoldShortTerm},
		{name: "high with growth above 15", volatility: domain.VolatilityHigh, growth: 15.1, want: domain.HoldMediumTerm},
		{name: "high with growth at 15", volatility: domain.VolatilityHigh, growth: 15, want: domain.HoldShortTerm},
		{name: "medium with growth above 10", volatility: domain.VolatilityMedium, growth: 11.5, want: domain.HoldMediumTerm},
		{name: "medium with growth below 10", volatility: domain.VolatilityMedium, growth: 9.8, want: domain.HoldLongTerm},
		{name: "medium with growth at 10", volatility: domain.VolatilityMedium, growth: 10, want: domain.HoldLongTerm},
		{name: "low always long plus", volatility: domain.VolatilityLow, growth: 30, want: domain.HoldLongTermPlus},
		{name: "very low always long plus", volatility: domain.VolatilityVeryLow, growth: 0, want: domain.HoldLongTermPlus},
	}

	engine := NewEngine(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSecurity()
			s.Volatility = tt.volatility
			s.Growth = tt.growth

			rec, err := engine.Recommend(s, 10000, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.HoldPeriod)
		})
	}
}

func TestRecommendInvariants(t *testing.T) {
	engine := NewEngine(zerolog.Nop())
	funds := 25000.0
	maxPct := 10.0

	for _, security := range universe.DefaultCatalog() {
		rec, err := engine.Recommend(security, funds, maxPct)
		require.NoError(t, err, "security %s", security.Symbol)

		assert.Less(t, rec.StopLoss, security.CurrentPrice, "%s: stop loss must be below price", security.Symbol)
		assert.Positive(t, rec.StopLoss, "%s: stop loss must be positive", security.Symbol)
		assert.GreaterOrEqual(t, rec.RecommendedAmount, 0.0, "%s: allocation must be non-negative", security.Symbol)
		assert.LessOrEqual(t, rec.RecommendedAmount, funds*maxPct/100, "%s: allocation must respect cap", security.Symbol)
	}
}

func TestRecommendIsIdempotent(t *testing.T) {
	engine := NewEngine(zerolog.Nop())

	first, err := engine.Recommend(validSecurity(), 10000, 10)
	require.NoError(t, err)
	second, err := engine.Recommend(validSecurity(), 10000, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

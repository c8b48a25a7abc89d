package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/domain"
)

func TestCalculatePEScore(t *testing.T) {
	tests := []struct {
		name    string
		pe      float64
		want    float64
		wantErr bool
	}{
		{name: "well below 30", pe: 11.9, want: 20},
		{name: "just below 30", pe: 29.99, want: 20},
		{name: "exactly 30 drops to 15", pe: 30, want: 15},
		{name: "mid band", pe: 34.8, want: 15},
		{name: "exactly 40", pe: 40, want: 10},
		{name: "exactly 50", pe: 50, want: 5},
		{name: "very high", pe: 68.5, want: 5},
		{name: "zero", pe: 0, want: 20},
		{name: "negative rejected", pe: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calculatePEScore(tt.pe)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVolatilityScoreStrictlyDecreasing(t *testing.T) {
	want := []float64{20, 15, 10, 5, 0}

	for i, v := range domain.Volatilities {
		got, err := calculateVolatilityScore(v)
		require.NoError(t, err)
		assert.Equal(t, want[i], got, "bucket %s", v)
	}
}

func TestVolatilityScoreUnknownBucket(t *testing.T) {
	_, err := calculateVolatilityScore("Choppy")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCalculateScenarios(t *testing.T) {
	scorer := NewFeasibilityScorer()

	t.Run("low pe low growth low volatility", func(t *testing.T) {
		// pe=11.9 -> 20, growth=4.3 -> 12.9, Low -> 15, total 47.9
		score, err := scorer.Calculate(domain.Security{
			Symbol: "JPM", CurrentPrice: 182.43, PE: 11.9, Growth: 4.3,
			Volatility: domain.VolatilityLow,
		})
		require.NoError(t, err)

		assert.InDelta(t, 20, score.Components["pe"], 1e-9)
		assert.InDelta(t, 12.9, score.Components["growth"], 1e-9)
		assert.InDelta(t, 15, score.Components["volatility"], 1e-9)
		assert.InDelta(t, 47.9, score.Score, 1e-9)
	})

	t.Run("high growth pushes score past 100", func(t *testing.T) {
		// pe=62.1 -> 5, growth=30.2 -> 90.6, High -> 5, total 100.6
		score, err := scorer.Calculate(domain.Security{
			Symbol: "NVDA", CurrentPrice: 860.26, PE: 62.1, Growth: 30.2,
			Volatility: domain.VolatilityHigh,
		})
		require.NoError(t, err)

		assert.InDelta(t, 100.6, score.Score, 1e-9)
		assert.Greater(t, score.Score, 100.0, "score is deliberately unclamped")
	})
}

func TestCalculateIsDeterministic(t *testing.T) {
	scorer := NewFeasibilityScorer()
	security := domain.Security{
		Symbol: "AAPL", CurrentPrice: 178.72, PE: 29.4, Growth: 8.1,
		Volatility: domain.VolatilityMedium,
	}

	first, err := scorer.Calculate(security)
	require.NoError(t, err)
	second, err := scorer.Calculate(security)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

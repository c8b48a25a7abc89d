// Package charts provides services for generating chart data for the dashboard.
package charts

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/advisor/internal/domain"
)

// DefaultDays is the chart window when the request does not specify one
const DefaultDays = 30

// smaPeriod is the moving-average window drawn over the price series
const smaPeriod = 7

// ChartDataPoint represents a single point on a chart
type ChartDataPoint struct {
	Time  string  `json:"time"`  // YYYY-MM-DD format
	Value float64 `json:"value"` // Price
}

// Summary describes the realized behavior of one generated series
type Summary struct {
	MeanReturnPct   float64 `json:"mean_return_pct"`
	StdDevReturnPct float64 `json:"stddev_return_pct"`
	MinPrice        float64 `json:"min_price"`
	MaxPrice        float64 `json:"max_price"`
}

// History is the full chart payload for one security
type History struct {
	Symbol  string           `json:"symbol"`
	Days    int              `json:"days"`
	Points  []ChartDataPoint `json:"points"`
	SMA     []ChartDataPoint `json:"sma"`
	Summary Summary          `json:"summary"`
}

// SecurityLookup resolves a symbol to its catalog record
type SecurityLookup interface {
	GetBySymbol(symbol string) (*domain.Security, error)
}

// Service provides chart data operations
type Service struct {
	securities SecurityLookup
	log        zerolog.Logger
}

// NewService creates a new charts service
func NewService(securities SecurityLookup, log zerolog.Logger) *Service {
	return &Service{
		securities: securities,
		log:        log.With().Str("service", "charts").Logger(),
	}
}

// GenerateHistory produces a synthetic daily price series: days+1 points
// ending today, oldest first. Each step draws a uniform value in [-1, 1),
// scales it by the bucket's volatility factor and compounds it as a
// percentage daily return. This is a single realization of a random walk
// for illustration, not a forecast.
//
// The random source is injected so production callers can use a fresh
// time-seeded source per request while tests pin a fixed seed.
func (s *Service) GenerateHistory(startPrice float64, v domain.Volatility, days int, rng *rand.Rand) ([]ChartDataPoint, error) {
	if startPrice <= 0 {
		return nil, fmt.Errorf("%w: start price must be positive, got %.2f", domain.ErrInvalidInput, startPrice)
	}
	if days < 0 {
		return nil, fmt.Errorf("%w: days must be non-negative, got %d", domain.ErrInvalidInput, days)
	}

	volFactor, err := volatilityFactor(v)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	points := make([]ChartDataPoint, 0, days+1)
	price := startPrice

	for i := days; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)

		// Uniform in [-1, 1), scaled by the volatility factor, applied
		// as a percentage daily return
		change := (rng.Float64() - 0.5) * 2 * volFactor
		price = price * (1 + change/100)

		points = append(points, ChartDataPoint{
			Time:  date.Format("2006-01-02"),
			Value: round2(price),
		})
	}

	return points, nil
}

// HistoryForSymbol generates the full chart payload for one catalog
// security. Returns nil when the symbol is not in the catalog.
func (s *Service) HistoryForSymbol(symbol string, days int, rng *rand.Rand) (*History, error) {
	security, err := s.securities.GetBySymbol(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to look up security %s: %w", symbol, err)
	}
	if security == nil {
		return nil, nil // Unknown symbol
	}

	points, err := s.GenerateHistory(security.CurrentPrice, security.Volatility, days, rng)
	if err != nil {
		return nil, err
	}

	return &History{
		Symbol:  security.Symbol,
		Days:    days,
		Points:  points,
		SMA:     movingAverage(points),
		Summary: summarize(points),
	}, nil
}

// volatilityFactor maps a bucket to its walk amplitude, linearly spaced
// across the five named steps.
func volatilityFactor(v domain.Volatility) (float64, error) {
	switch v {
	case domain.VolatilityVeryLow:
		return 0.4, nil
	case domain.VolatilityLow:
		return 0.7, nil
	case domain.VolatilityMedium:
		return 1.0, nil
	case domain.VolatilityHigh:
		return 1.4, nil
	case domain.VolatilityVeryHigh:
		return 1.8, nil
	default:
		return 0, fmt.Errorf("%w: unknown volatility %q", domain.ErrInvalidInput, v)
	}
}

// movingAverage computes the SMA overlay for the chart. go-talib pads the
// warm-up window with zeros, so those leading entries are dropped.
func movingAverage(points []ChartDataPoint) []ChartDataPoint {
	if len(points) < smaPeriod {
		return nil
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Value
	}

	sma := talib.Sma(closes, smaPeriod)

	overlay := make([]ChartDataPoint, 0, len(points)-smaPeriod+1)
	for i := smaPeriod - 1; i < len(points); i++ {
		overlay = append(overlay, ChartDataPoint{
			Time:  points[i].Time,
			Value: round2(sma[i]),
		})
	}

	return overlay
}

// summarize computes realized daily-return statistics for the series
func summarize(points []ChartDataPoint) Summary {
	if len(points) == 0 {
		return Summary{}
	}

	minPrice := points[0].Value
	maxPrice := points[0].Value
	returns := make([]float64, 0, len(points)-1)

	for i, p := range points {
		minPrice = math.Min(minPrice, p.Value)
		maxPrice = math.Max(maxPrice, p.Value)
		if i > 0 && points[i-1].Value != 0 {
			returns = append(returns, (p.Value/points[i-1].Value-1)*100)
		}
	}

	summary := Summary{MinPrice: minPrice, MaxPrice: maxPrice}
	if len(returns) > 0 {
		summary.MeanReturnPct = stat.Mean(returns, nil)
	}
	if len(returns) > 1 {
		summary.StdDevReturnPct = stat.StdDev(returns, nil)
	}

	return summary
}

// round2 rounds to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

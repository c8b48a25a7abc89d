// Package domain provides core domain models and types.
package domain

import "fmt"

// HoldingPeriod is a coarse recommendation for how long a position
// should be held, chosen from the volatility/growth decision table.
type HoldingPeriod string

const (
	HoldShortTerm    HoldingPeriod = "Short-term (1-3 months)"
	HoldMediumTerm   HoldingPeriod = "Medium-term (3-6 months)"
	HoldLongTerm     HoldingPeriod = "Long-term (6-12 months)"
	HoldLongTermPlus HoldingPeriod = "Long-term (6-12+ months)"
)

// Security represents a single stock in the investment universe.
// Records are loaded once per session from the catalog and treated as
// read-only afterwards.
type Security struct {
	Symbol       string     `json:"symbol"`
	Name         string     `json:"name"`
	CurrentPrice float64    `json:"current_price"`
	PE           float64    `json:"pe"`
	MarketCap    float64    `json:"market_cap"` // billions, consistent across the batch
	Growth       float64    `json:"growth"`     // trailing annual growth, percent
	Volatility   Volatility `json:"volatility"`
}

// Validate checks the security fields against the engine's input domain.
func (s Security) Validate() error {
	if s.Symbol == "" {
		return fmt.Errorf("%w: security has empty symbol", ErrInvalidInput)
	}
	if s.CurrentPrice <= 0 {
		return fmt.Errorf("%w: security %s has non-positive price %.2f", ErrInvalidInput, s.Symbol, s.CurrentPrice)
	}
	if s.PE < 0 {
		return fmt.Errorf("%w: security %s has negative P/E %.2f", ErrInvalidInput, s.Symbol, s.PE)
	}
	if !s.Volatility.Valid() {
		return fmt.Errorf("%w: security %s has unknown volatility %q", ErrInvalidInput, s.Symbol, s.Volatility)
	}
	return nil
}

// Recommendation is the engine output for one security. It carries all
// input fields plus the derived values so API consumers need a single
// record per table row. Recomputed on every request, never stored.
//
// Score is intentionally NOT clamped to 100: the growth component is
// unbounded, so high-growth securities can exceed the nominal 0-100
// range (the dashboard clamps its progress bar at render time only).
type Recommendation struct {
	Security
	Score             float64            `json:"score"`
	ScoreComponents   map[string]float64 `json:"score_components"`
	RecommendedAmount float64            `json:"recommended_amount"`
	HoldPeriod        HoldingPeriod      `json:"hold_period"`
	StopLoss          float64            `json:"stop_loss"`
	Summary           string             `json:"summary,omitempty"`
}

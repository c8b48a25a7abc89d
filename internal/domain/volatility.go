package domain

import "fmt"

// Volatility represents a risk classification bucket for a security.
// The set is closed: every lookup keyed by Volatility covers exactly these
// five values and fails on anything else instead of silently defaulting.
type Volatility string

const (
	VolatilityVeryLow  Volatility = "Very Low"
	VolatilityLow      Volatility = "Low"
	VolatilityMedium   Volatility = "Medium"
	VolatilityHigh     Volatility = "High"
	VolatilityVeryHigh Volatility = "Very High"
)

// Volatilities lists all buckets in ascending risk order.
var Volatilities = []Volatility{
	VolatilityVeryLow,
	VolatilityLow,
	VolatilityMedium,
	VolatilityHigh,
	VolatilityVeryHigh,
}

// ParseVolatility converts a raw label (e.g. from the database or an API
// request) into a Volatility. Unknown labels are a configuration error.
func ParseVolatility(s string) (Volatility, error) {
	switch Volatility(s) {
	case VolatilityVeryLow, VolatilityLow, VolatilityMedium, VolatilityHigh, VolatilityVeryHigh:
		return Volatility(s), nil
	}
	return "", fmt.Errorf("%w: unknown volatility label %q", ErrInvalidInput, s)
}

// Valid reports whether v is one of the five recognized buckets.
func (v Volatility) Valid() bool {
	_, err := ParseVolatility(string(v))
	return err == nil
}

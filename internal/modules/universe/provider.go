// Package universe manages the securities catalog the advisor runs over.
package universe

import "github.com/aristath/advisor/internal/domain"

// Provider supplies the current batch of securities. The recommendation
// engine depends on this interface rather than the SQLite repository so a
// live market-data feed can be substituted without touching the engine.
type Provider interface {
	Securities() ([]domain.Security, error)
}

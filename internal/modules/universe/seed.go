package universe

import (
	"fmt"

	"github.com/aristath/advisor/internal/domain"
	"github.com/rs/zerolog"
)

// DefaultCatalog returns the static ten-stock catalog the service ships
// with. In a real deployment a market-data sync would maintain this table;
// the catalog here is illustrative data with hardcoded fundamentals.
func DefaultCatalog() []domain.Security {
	return []domain.Security{
		{Symbol: "AAPL", Name: "Apple Inc.", CurrentPrice: 178.72, PE: 29.4, MarketCap: 2760, Growth: 8.1, Volatility: domain.VolatilityMedium},
		{Symbol: "MSFT", Name: "Microsoft Corp.", CurrentPrice: 402.56, PE: 34.8, MarketCap: 3100, Growth: 14.3, Volatility: domain.VolatilityLow},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", CurrentPrice: 165.62, PE: 25.7, MarketCap: 2150, Growth: 11.5, Volatility: domain.VolatilityMedium},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", CurrentPrice: 175.90, PE: 47.2, MarketCap: 1820, Growth: 9.8, Volatility: domain.VolatilityHigh},
		{Symbol: "TSLA", Name: "Tesla Inc.", CurrentPrice: 237.49, PE: 68.5, MarketCap: 754, Growth: 21.2, Volatility: domain.VolatilityVeryHigh},
		{Symbol: "META", Name: "Meta Platforms Inc.", CurrentPrice: 450.12, PE: 25.9, MarketCap: 1150, Growth: 13.7, Volatility: domain.VolatilityMedium},
		{Symbol: "NVDA", Name: "NVIDIA Corp.", CurrentPrice: 860.26, PE: 62.1, MarketCap: 2120, Growth: 30.2, Volatility: domain.VolatilityHigh},
		{Symbol: "JPM", Name: "JPMorgan Chase & Co.", CurrentPrice: 182.43, PE: 11.9, MarketCap: 525, Growth: 4.3, Volatility: domain.VolatilityLow},
		{Symbol: "V", Name: "Visa Inc.", CurrentPrice: 276.84, PE: 31.2, MarketCap: 570, Growth: 7.5, Volatility: domain.VolatilityLow},
		{Symbol: "WMT", Name: "Walmart Inc.", CurrentPrice: 62.54, PE: 27.3, MarketCap: 780, Growth: 3.9, Volatility: domain.VolatilityVeryLow},
	}
}

// Seed populates the securities table from the default catalog when it is
// empty. An already-populated table is left untouched so manual edits
// survive restarts.
func Seed(repo *SecurityRepository, log zerolog.Logger) error {
	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("failed to check catalog size: %w", err)
	}

	if count > 0 {
		log.Debug().Int("count", count).Msg("Securities catalog already populated, skipping seed")
		return nil
	}

	catalog := DefaultCatalog()
	for _, s := range catalog {
		if err := repo.Upsert(s); err != nil {
			return fmt.Errorf("failed to seed security %s: %w", s.Symbol, err)
		}
	}

	log.Info().Int("count", len(catalog)).Msg("Seeded securities catalog")
	return nil
}

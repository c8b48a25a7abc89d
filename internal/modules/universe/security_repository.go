package universe

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/aristath/advisor/internal/domain"
	"github.com/rs/zerolog"
)

// securitiesColumns is the list of columns for the securities table
// Used to avoid SELECT * which can break when schema changes
const securitiesColumns = `symbol, name, current_price, pe, market_cap, growth, volatility`

// SecurityRepository handles security database operations against universe.db
type SecurityRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSecurityRepository creates a new security repository
func NewSecurityRepository(db *sql.DB, log zerolog.Logger) *SecurityRepository {
	return &SecurityRepository{
		db:  db,
		log: log.With().Str("repo", "security").Logger(),
	}
}

// Migrate creates the securities table if it does not exist
func (r *SecurityRepository) Migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS securities (
			symbol        TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			current_price REAL NOT NULL,
			pe            REAL NOT NULL,
			market_cap    REAL NOT NULL,
			growth        REAL NOT NULL,
			volatility    TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create securities table: %w", err)
	}
	return nil
}

// GetAll returns all securities in insertion order
func (r *SecurityRepository) GetAll() ([]domain.Security, error) {
	query := "SELECT " + securitiesColumns + " FROM securities ORDER BY rowid"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query securities: %w", err)
	}
	defer rows.Close()

	var securities []domain.Security
	for rows.Next() {
		security, err := scanSecurity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security: %w", err)
		}
		securities = append(securities, security)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate securities: %w", err)
	}

	return securities, nil
}

// Securities implements the Provider interface
func (r *SecurityRepository) Securities() ([]domain.Security, error) {
	return r.GetAll()
}

// GetBySymbol returns a security by symbol, or nil when not found
func (r *SecurityRepository) GetBySymbol(symbol string) (*domain.Security, error) {
	query := "SELECT " + securitiesColumns + " FROM securities WHERE symbol = ?"

	rows, err := r.db.Query(query, strings.ToUpper(strings.TrimSpace(symbol)))
	if err != nil {
		return nil, fmt.Errorf("failed to query security by symbol: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil // Security not found
	}

	security, err := scanSecurity(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan security: %w", err)
	}

	return &security, nil
}

// Upsert inserts or replaces a security
func (r *SecurityRepository) Upsert(s domain.Security) error {
	if err := s.Validate(); err != nil {
		return err
	}

	_, err := r.db.Exec(`
		INSERT INTO securities (`+securitiesColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			name = excluded.name,
			current_price = excluded.current_price,
			pe = excluded.pe,
			market_cap = excluded.market_cap,
			growth = excluded.growth,
			volatility = excluded.volatility
	`, s.Symbol, s.Name, s.CurrentPrice, s.PE, s.MarketCap, s.Growth, string(s.Volatility))
	if err != nil {
		return fmt.Errorf("failed to upsert security %s: %w", s.Symbol, err)
	}

	return nil
}

// Count returns the number of securities in the catalog
func (r *SecurityRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM securities").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count securities: %w", err)
	}
	return count, nil
}

// scanSecurity scans one row into a domain.Security. A stored volatility
// label that no longer parses is a configuration error, not a silent skip.
func scanSecurity(rows *sql.Rows) (domain.Security, error) {
	var s domain.Security
	var volatility string

	if err := rows.Scan(&s.Symbol, &s.Name, &s.CurrentPrice, &s.PE, &s.MarketCap, &s.Growth, &volatility); err != nil {
		return domain.Security{}, err
	}

	parsed, err := domain.ParseVolatility(volatility)
	if err != nil {
		return domain.Security{}, fmt.Errorf("security %s: %w", s.Symbol, err)
	}
	s.Volatility = parsed

	return s, nil
}

package universe

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
)

// SearchIndex provides full-text symbol/name lookup for the dashboard
// selector. The catalog is small and static per session, so the index is
// built in memory at startup and never persisted.
type SearchIndex struct {
	index    bleve.Index
	bySymbol map[string]domain.Security
	log      zerolog.Logger
}

// searchDoc is the indexed representation of a security
type searchDoc struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// NewSearchIndex builds an in-memory bleve index over the given securities
func NewSearchIndex(securities []domain.Security, log zerolog.Logger) (*SearchIndex, error) {
	indexMapping := bleve.NewIndexMapping()

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	bySymbol := make(map[string]domain.Security, len(securities))

	batch := index.NewBatch()
	for _, s := range securities {
		bySymbol[s.Symbol] = s
		doc := searchDoc{Symbol: s.Symbol, Name: s.Name}
		if err := batch.Index(s.Symbol, doc); err != nil {
			return nil, fmt.Errorf("failed to add %s to index batch: %w", s.Symbol, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to execute index batch: %w", err)
	}

	return &SearchIndex{
		index:    index,
		bySymbol: bySymbol,
		log:      log.With().Str("module", "universe_search").Logger(),
	}, nil
}

// Search returns securities whose symbol or name matches the query,
// best match first. An empty query returns no results.
func (si *SearchIndex) Search(q string, limit int) ([]domain.Security, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	// Match against analyzed symbol/name tokens, plus a prefix query so
	// partially typed symbols ("MS" -> MSFT) hit too.
	matchQuery := bleve.NewMatchQuery(q)
	prefixQuery := bleve.NewPrefixQuery(strings.ToLower(q))
	combined := bleve.NewDisjunctionQuery(matchQuery, prefixQuery)

	searchRequest := bleve.NewSearchRequestOptions(combined, limit, 0, false)
	searchResults, err := si.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]domain.Security, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		security, ok := si.bySymbol[hit.ID]
		if !ok {
			si.log.Warn().Str("id", hit.ID).Msg("Search hit for unknown symbol")
			continue
		}
		results = append(results, security)
	}

	return results, nil
}

// Close releases index resources
func (si *SearchIndex) Close() error {
	return si.index.Close()
}

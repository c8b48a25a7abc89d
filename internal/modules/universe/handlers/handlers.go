// Package handlers provides HTTP handlers for securities catalog operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/modules/universe"
)

// Handler handles securities catalog HTTP requests
type Handler struct {
	provider universe.Provider
	search   *universe.SearchIndex
	log      zerolog.Logger
}

// NewHandler creates a new universe handler
func NewHandler(provider universe.Provider, search *universe.SearchIndex, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		search:   search,
		log:      log.With().Str("handler", "universe").Logger(),
	}
}

// HandleGetSecurities handles GET /api/securities
func (h *Handler) HandleGetSecurities(w http.ResponseWriter, r *http.Request) {
	securities, err := h.provider.Securities()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load securities")
		h.writeError(w, http.StatusInternalServerError, "failed to load securities")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"securities": securities,
		"count":      len(securities),
	})
}

// HandleSearch handles GET /api/securities/search?q=...&limit=...
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	results, err := h.search.Search(q, limit)
	if err != nil {
		h.log.Error().Err(err).Str("query", q).Msg("Search failed")
		h.writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   q,
		"results": results,
		"count":   len(results),
	})
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error envelope
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
		},
	})
}

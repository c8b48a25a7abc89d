// Package handlers provides HTTP handlers for recommendation operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/advisor"
)

// Handler handles recommendation HTTP requests
type Handler struct {
	service      *advisor.Service
	defaultFunds float64
	maxPercent   float64
	log          zerolog.Logger
}

// NewHandler creates a new recommendations handler. defaultFunds is used
// when the request omits ?funds=; maxPercent is the configured allocation
// cap applied when ?max_percent= is omitted.
func NewHandler(service *advisor.Service, defaultFunds, maxPercent float64, log zerolog.Logger) *Handler {
	return &Handler{
		service:      service,
		defaultFunds: defaultFunds,
		maxPercent:   maxPercent,
		log:          log.With().Str("handler", "advisor").Logger(),
	}
}

// HandleGetRecommendations handles GET /api/recommendations?funds=...&max_percent=...
func (h *Handler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	funds := h.defaultFunds
	if raw := r.URL.Query().Get("funds"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "funds must be a number")
			return
		}
		funds = parsed
	}

	maxPercent := h.maxPercent
	if raw := r.URL.Query().Get("max_percent"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "max_percent must be a number")
			return
		}
		maxPercent = parsed
	}

	batch, err := h.service.BuildRecommendations(funds, maxPercent)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("Failed to build recommendations")
		h.writeError(w, http.StatusInternalServerError, "failed to build recommendations")
		return
	}

	h.writeJSON(w, http.StatusOK, batch)
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

// Package handlers provides HTTP handlers for the dashboard view.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/modules/dashboard"
	"github.com/aristath/workbench/internal/store"
)

// Handler serves the formatted operations view
type Handler struct {
	store *store.Store
	log   zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(s *store.Store, log zerolog.Logger) *Handler {
	return &Handler{
		store: s,
		log:   log.With().Str("handler", "dashboard").Logger(),
	}
}

// RegisterRoutes registers the dashboard routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.HandleGetDashboard)
}

// HandleGetDashboard handles GET /api/dashboard
func (h *Handler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	view := dashboard.Build(h.store.State())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

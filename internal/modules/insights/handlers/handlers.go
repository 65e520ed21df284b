// Package handlers provides HTTP handlers for backtest and risk insights.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/modules/insights"
)

// Handler handles insights HTTP requests
type Handler struct {
	service *insights.Service
	log     zerolog.Logger
}

// NewHandler creates a new insights handler
func NewHandler(service *insights.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "insights").Logger(),
	}
}

// RegisterRoutes registers all insights routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/insights", func(r chi.Router) {
		r.Get("/backtests", h.HandleListBacktests)
		r.Get("/backtests/{id}", h.HandleGetBacktest) // Includes the equity curve
		r.Get("/risk", h.HandleGetRisk)
	})
}

// HandleListBacktests handles GET /api/insights/backtests
func (h *Handler) HandleListBacktests(w http.ResponseWriter, r *http.Request) {
	backtests := h.service.Backtests()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"backtests": backtests,
		"count":     len(backtests),
	})
}

// HandleGetBacktest handles GET /api/insights/backtests/{id}
func (h *Handler) HandleGetBacktest(w http.ResponseWriter, r *http.Request) {
	backtest, err := h.service.Backtest(chi.URLParam(r, "id"))
	if errors.Is(err, insights.ErrBacktestNotFound) {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, backtest)
}

// HandleGetRisk handles GET /api/insights/risk
func (h *Handler) HandleGetRisk(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Risk())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

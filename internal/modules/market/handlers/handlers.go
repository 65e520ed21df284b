// Package handlers provides HTTP handlers for market data.
//
// Every response uses the envelope {"success": bool, "data": ..., "error": "..."}.
// Failed requests still carry data: an empty bar list or a zeroed snapshot.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/modules/market"
)

// Handler handles market data HTTP requests
type Handler struct {
	service *market.Service
	log     zerolog.Logger
}

// NewHandler creates a new market handler
func NewHandler(service *market.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "market").Logger(),
	}
}

// RegisterRoutes registers all market routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/market", func(r chi.Router) {
		r.Get("/bars", h.HandleGetBars)         // ?symbol=&timeframe=&limit=&sma=&ema=&rsi=&bb=
		r.Get("/snapshot", h.HandleGetSnapshot) // ?symbol=
	})
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

// HandleGetBars handles GET /api/market/bars
func (h *Handler) HandleGetBars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := market.BarsQuery{
		Symbol:    q.Get("symbol"),
		Timeframe: q.Get("timeframe"),
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"limit", &query.Limit},
		{"sma", &query.SMA},
		{"ema", &query.EMA},
		{"rsi", &query.RSI},
		{"bb", &query.Bollinger},
	}
	for _, p := range ints {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(w, http.StatusBadRequest, fmt.Errorf("%w: %s must be an integer", market.ErrInvalidQuery, p.name),
				market.BarsResult{Symbol: query.Symbol, Bars: []market.Bar{}})
			return
		}
		*p.dst = v
	}

	result, err := h.service.Bars(r.Context(), query)
	if err != nil {
		h.fail(w, statusFor(err), err, result)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: result})
}

// HandleGetSnapshot handles GET /api/market/snapshot
func (h *Handler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context(), r.URL.Query().Get("symbol"))
	if err != nil {
		h.fail(w, statusFor(err), err, snap)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: snap})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, market.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, market.ErrNoData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error, fallback interface{}) {
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Market query failed")
	}
	h.writeJSON(w, status, envelope{Success: false, Data: fallback, Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

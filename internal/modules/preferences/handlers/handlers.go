// Package handlers provides HTTP handlers for the UI preference slice.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/domain"
	"github.com/aristath/workbench/internal/store"
)

// Handler handles UI preference HTTP requests
type Handler struct {
	store *store.Store
	log   zerolog.Logger
}

// NewHandler creates a new preferences handler
func NewHandler(s *store.Store, log zerolog.Logger) *Handler {
	return &Handler{
		store: s,
		log:   log.With().Str("handler", "preferences").Logger(),
	}
}

// HandleGetUI handles GET /api/ui
func (h *Handler) HandleGetUI(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.State().UI)
}

// HandleToggleSidebar handles POST /api/ui/sidebar/toggle
func (h *Handler) HandleToggleSidebar(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, store.ToggleSidebar{})
}

// HandleSetSidebar handles PUT /api/ui/sidebar
func (h *Handler) HandleSetSidebar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Collapsed *bool `json:"collapsed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Collapsed == nil {
		h.writeError(w, http.StatusBadRequest, "collapsed is required")
		return
	}
	h.dispatch(w, store.SetSidebarCollapsed{Collapsed: *req.Collapsed})
}

// HandleToggleColorMode handles POST /api/ui/color-mode/toggle
func (h *Handler) HandleToggleColorMode(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, store.ToggleColorMode{})
}

// HandleSetColorMode handles PUT /api/ui/color-mode.
// Unknown modes are rejected here rather than silently ignored by the reducer.
func (h *Handler) HandleSetColorMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode domain.ColorMode `json:"mode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := domain.ParseColorMode(string(req.Mode)); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.dispatch(w, store.SetColorMode{Mode: req.Mode})
}

// HandleSetTabs handles PUT /api/ui/tabs. Either index may be omitted.
func (h *Handler) HandleSetTabs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Operations *int `json:"operations"`
		Insights   *int `json:"insights"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Operations == nil && req.Insights == nil {
		h.writeError(w, http.StatusBadRequest, "operations or insights is required")
		return
	}

	changed := false
	var state store.State
	if req.Operations != nil {
		result := h.store.Dispatch(store.SetOperationsTab{Index: *req.Operations})
		changed = changed || result.Changed
		state = result.State
	}
	if req.Insights != nil {
		result := h.store.Dispatch(store.SetInsightsTab{Index: *req.Insights})
		changed = changed || result.Changed
		state = result.State
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"changed": changed,
		"ui":      state.UI,
	})
}

func (h *Handler) dispatch(w http.ResponseWriter, action store.Action) {
	result := h.store.Dispatch(action)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"changed": result.Changed,
		"ui":      result.State.UI,
	})
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
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

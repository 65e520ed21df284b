// Package handlers provides HTTP handlers for the deployments slice.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/domain"
	"github.com/aristath/workbench/internal/store"
)

// Handler handles deployment HTTP requests
type Handler struct {
	store *store.Store
	log   zerolog.Logger
}

// NewHandler creates a new deployments handler
func NewHandler(s *store.Store, log zerolog.Logger) *Handler {
	return &Handler{
		store: s,
		log:   log.With().Str("handler", "deployments").Logger(),
	}
}

// HandleListDeployments handles GET /api/deployments
func (h *Handler) HandleListDeployments(w http.ResponseWriter, r *http.Request) {
	state := h.store.State().Deployments
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"deployments":  state.Deployments,
		"active_count": state.ActiveCount(),
		"selected_id":  state.SelectedID,
	})
}

// HandleGetDeployment handles GET /api/deployments/{id}
func (h *Handler) HandleGetDeployment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state := h.store.State().Deployments

	deployment, ok := state.Find(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, fmt.Sprintf("deployment %q not found", id))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"deployment": deployment,
		"positions":  state.PositionsFor(id),
	})
}

// HandleListPositions handles GET /api/deployments/positions
func (h *Handler) HandleListPositions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.State().Deployments.Positions)
}

// HandleGetPositions handles GET /api/deployments/{id}/positions.
// Unknown ids yield an empty list.
func (h *Handler) HandleGetPositions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.writeJSON(w, http.StatusOK, h.store.State().Deployments.PositionsFor(id))
}

// HandleGetSelected handles GET /api/deployments/selected
func (h *Handler) HandleGetSelected(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, selectionResponse(h.store.State().Deployments, false))
}

type selectRequest struct {
	ID *string `json:"id"`
}

// HandleSelect handles PUT /api/deployments/selected.
// {"id": null} clears the selection. Ids that match no deployment are accepted.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var action store.Action = store.ClearSelection{}
	if req.ID != nil {
		action = store.SelectDeployment{ID: *req.ID}
	}

	result := h.store.Dispatch(action)
	h.writeJSON(w, http.StatusOK, selectionResponse(result.State.Deployments, result.Changed))
}

func selectionResponse(state store.DeploymentsState, changed bool) map[string]interface{} {
	var deployment *domain.Deployment
	if d, ok := state.SelectedDeployment(); ok {
		deployment = &d
	}
	return map[string]interface{}{
		"changed":     changed,
		"selected_id": state.SelectedID,
		"deployment":  deployment,
		"positions":   state.SelectedPositions(),
	}
}

// HandlePause handles POST /api/deployments/{id}/pause
func (h *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.applyLifecycle(w, id, store.PauseDeployment{ID: id})
}

// HandleResume handles POST /api/deployments/{id}/resume
func (h *Handler) HandleResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.applyLifecycle(w, id, store.ResumeDeployment{ID: id})
}

// HandleStop handles POST /api/deployments/{id}/stop
func (h *Handler) HandleStop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.applyLifecycle(w, id, store.StopDeployment{ID: id})
}

// applyLifecycle dispatches a status change. Transitions the lifecycle does not allow
// and unknown ids answer 200 with changed=false.
func (h *Handler) applyLifecycle(w http.ResponseWriter, id string, action store.Action) {
	result := h.store.Dispatch(action)
	state := result.State.Deployments

	if result.Changed {
		h.log.Info().
			Str("deployment_id", id).
			Str("action", action.Name()).
			Msg("Deployment status changed")
	}

	var deployment *domain.Deployment
	if d, ok := state.Find(id); ok {
		deployment = &d
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"changed":      result.Changed,
		"deployment":   deployment,
		"active_count": state.ActiveCount(),
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

// Package handlers provides HTTP handlers for the portfolio slice.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/domain"
	"github.com/aristath/workbench/internal/store"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	store *store.Store
	log   zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(s *store.Store, log zerolog.Logger) *Handler {
	return &Handler{
		store: s,
		log:   log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleGetSnapshot handles GET /api/portfolio/snapshot
func (h *Handler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.State().Portfolio.Snapshot)
}

// HandleSetSnapshot handles PUT /api/portfolio/snapshot.
// The body replaces the snapshot wholesale.
func (h *Handler) HandleSetSnapshot(w http.ResponseWriter, r *http.Request) {
	var snapshot domain.PortfolioSnapshot
	if err := decodeJSON(r, &snapshot); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.store.Dispatch(store.SetSnapshot{Snapshot: snapshot})
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"changed":  result.Changed,
		"snapshot": result.State.Portfolio.Snapshot,
	})
}

// HandlePatchSnapshot handles PATCH /api/portfolio/snapshot.
// Only the fields present in the body are overwritten.
func (h *Handler) HandlePatchSnapshot(w http.ResponseWriter, r *http.Request) {
	var patch domain.SnapshotPatch
	if err := decodeJSON(r, &patch); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.IsEmpty() {
		h.writeError(w, http.StatusBadRequest, "patch has no fields")
		return
	}

	result := h.store.Dispatch(store.PatchSnapshot{Patch: patch})
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"changed":  result.Changed,
		"snapshot": result.State.Portfolio.Snapshot,
	})
}

// HandleGetCues handles GET /api/portfolio/cues
func (h *Handler) HandleGetCues(w http.ResponseWriter, r *http.Request) {
	cues := h.store.State().Portfolio.Cues
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"cues":  cues,
		"count": len(cues),
	})
}

// HandleSetCues handles PUT /api/portfolio/cues.
// Cues without an id get one; duplicate ids are rejected.
func (h *Handler) HandleSetCues(w http.ResponseWriter, r *http.Request) {
	var cues []domain.ActionCue
	if err := decodeJSON(r, &cues); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	seen := make(map[string]bool, len(cues))
	for i := range cues {
		if _, err := domain.ParseSeverity(string(cues[i].Severity)); err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("cue %d: %v", i, err))
			return
		}
		if cues[i].ID == "" {
			cues[i].ID = uuid.NewString()
		}
		if seen[cues[i].ID] {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("duplicate cue id %q", cues[i].ID))
			return
		}
		seen[cues[i].ID] = true
	}

	result := h.store.Dispatch(store.SetCues{Cues: cues})
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"changed": result.Changed,
		"cues":    result.State.Portfolio.Cues,
	})
}

// HandleDismissCue handles DELETE /api/portfolio/cues/{id}.
// Unknown ids are not an error; changed reports whether a cue was removed.
func (h *Handler) HandleDismissCue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := h.store.Dispatch(store.DismissCue{ID: id})
	if result.Changed {
		h.log.Info().Str("cue_id", id).Msg("Cue dismissed")
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"changed": result.Changed,
		"cues":    result.State.Portfolio.Cues,
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

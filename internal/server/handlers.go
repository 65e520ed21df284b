package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aristath/workbench/internal/store"
	"github.com/aristath/workbench/internal/version"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": version.Version,
		"service": "workbench",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleState handles GET /api/state. Clients asking for msgpack get it;
// everyone else gets JSON with the same field names.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state := s.container.Store.State()

	if strings.Contains(r.Header.Get("Accept"), store.MsgpackContentType) {
		raw, err := store.MarshalMsgpack(state)
		if err != nil {
			s.log.Error().Err(err).Msg("Failed to encode state as msgpack")
			s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to encode state"})
			return
		}
		w.Header().Set("Content-Type", store.MsgpackContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
		return
	}

	s.writeJSON(w, http.StatusOK, state)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

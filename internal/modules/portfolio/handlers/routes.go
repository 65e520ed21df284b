package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/snapshot", h.HandleGetSnapshot)
		r.Put("/snapshot", h.HandleSetSnapshot)
		r.Patch("/snapshot", h.HandlePatchSnapshot)

		r.Get("/cues", h.HandleGetCues)
		r.Put("/cues", h.HandleSetCues)
		r.Delete("/cues/{id}", h.HandleDismissCue) // Dismiss
	})
}

package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all deployment routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/deployments", func(r chi.Router) {
		r.Get("/", h.HandleListDeployments)
		r.Get("/positions", h.HandleListPositions) // All positions

		r.Get("/selected", h.HandleGetSelected)
		r.Put("/selected", h.HandleSelect)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGetDeployment)
			r.Get("/positions", h.HandleGetPositions)

			// Lifecycle
			r.Post("/pause", h.HandlePause)
			r.Post("/resume", h.HandleResume)
			r.Post("/stop", h.HandleStop)
		})
	})
}

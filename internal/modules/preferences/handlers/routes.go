package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI preference routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/ui", func(r chi.Router) {
		r.Get("/", h.HandleGetUI)

		r.Post("/sidebar/toggle", h.HandleToggleSidebar)
		r.Put("/sidebar", h.HandleSetSidebar)

		r.Post("/color-mode/toggle", h.HandleToggleColorMode)
		r.Put("/color-mode", h.HandleSetColorMode)

		r.Put("/tabs", h.HandleSetTabs)
	})
}

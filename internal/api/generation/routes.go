package generation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers generation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/generate", h.Generate)
	r.Post("/generate/export", h.Export)
}

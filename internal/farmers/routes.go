package farmers

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers farmer account routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/farmers", h.handleRegister)
	r.Post("/farmers/login", h.handleLogin)
}

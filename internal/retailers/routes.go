package retailers

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers retailer account routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/retailers", h.handleRegister)
	r.Post("/retailers/login", h.handleLogin)
}

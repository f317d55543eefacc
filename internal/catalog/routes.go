package catalog

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/farmers/{farmerID}/products", h.handleCreate)
	r.Get("/farmers/{farmerID}/products", h.handleList)
	r.Patch("/farmers/{farmerID}/products/{productID}", h.handleUpdate)
	r.Post("/farmers/{farmerID}/products/{productID}/soldout", h.handleMarkSoldOut)
	r.Get("/retailers/{retailerID}/available-products", h.handleAvailable)
}

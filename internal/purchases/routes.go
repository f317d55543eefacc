package purchases

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers purchase routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/products/{productID}/purchase", h.handlePurchase)
	r.Get("/retailers/{retailerID}/transaction-history", h.handleHistory)
	r.Get("/retailers/{retailerID}/stock-bought-this-month", h.handleStockThisMonth)
}

package analytics

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers analytics and reporting routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/farmers/{farmerID}/product-history", h.handleProductHistory)
	r.Get("/farmers/{farmerID}/transactions", h.handleTransactions)
	r.Get("/farmers/{farmerID}/analytics", h.handleSummary)
	r.Get("/farmers/{farmerID}/product-profit-analysis", h.handleProfitAnalysis)
	r.Get("/farmers/{farmerID}/transactions/report", h.handleReport)
	r.Get("/retailers/{retailerID}/purchase-analysis", h.handlePurchaseAnalysis)
}

package analytics

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/farmbazaar/farmbazaar/internal/farmers"
	"github.com/farmbazaar/farmbazaar/internal/platform/httpx"
	"github.com/farmbazaar/farmbazaar/internal/retailers"
)

// Handler wires HTTP endpoints for reporting and analytics.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) handleProductHistory(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := h.farmerID(w, r)
	if !ok {
		return
	}
	entries, err := h.service.ProductHistory(r.Context(), farmerID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h *Handler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := h.farmerID(w, r)
	if !ok {
		return
	}
	rows, err := h.service.FarmerTransactions(r.Context(), farmerID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := h.farmerID(w, r)
	if !ok {
		return
	}
	summary, err := h.service.FarmerSummary(r.Context(), farmerID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) handleProfitAnalysis(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := h.farmerID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	rows, err := h.service.ProfitAnalysis(r.Context(), farmerID, q.Get("category"), q.Get("product_name"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := h.farmerID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	pdf, err := h.service.TransactionReport(r.Context(), farmerID, q.Get("from_date"), q.Get("to_date"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.PDF(w, fmt.Sprintf("Transaction_Report_%d.pdf", farmerID), pdf)
}

func (h *Handler) handlePurchaseAnalysis(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.RetailerPurchaseAnalysis(r.Context(), chi.URLParam(r, "retailerID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) farmerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "farmerID"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "farmerID must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, farmers.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "farmer not found")
	case errors.Is(err, retailers.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "retailer not found")
	case errors.Is(err, ErrRateNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "market rate data not found for the given product and category")
	case errors.Is(err, ErrNoTransactions):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no transactions found for the given period")
	case errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrMissingQuery):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error("analytics request failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

package purchases

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/farmbazaar/farmbazaar/internal/catalog"
	"github.com/farmbazaar/farmbazaar/internal/platform/httpx"
	"github.com/farmbazaar/farmbazaar/internal/retailers"
)

// Handler wires HTTP endpoints for purchases.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "productID must be a positive integer")
		return
	}
	var req PurchaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	p, err := h.service.Purchase(r.Context(), productID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, PurchaseResponse{
		Success:  true,
		Message:  "Purchase successful",
		Purchase: *p,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.History(r.Context(), chi.URLParam(r, "retailerID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleStockThisMonth(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.StockBoughtThisMonth(r.Context(), chi.URLParam(r, "retailerID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, retailers.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "retailer not found")
	case errors.Is(err, catalog.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
	case errors.Is(err, ErrNoTransactions):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no transactions found")
	case errors.Is(err, ErrInvalidQuantity):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrInsufficientStock):
		httpx.Problem(w, http.StatusConflict, "Insufficient Stock", err.Error())
	default:
		h.logger.Error("purchase request failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/farmbazaar/farmbazaar/internal/farmers"
	"github.com/farmbazaar/farmbazaar/internal/platform/httpx"
	"github.com/farmbazaar/farmbazaar/internal/retailers"
)

// Handler wires HTTP endpoints for the product catalog.
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

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := pathID(w, r, "farmerID")
	if !ok {
		return
	}
	var req CreateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	p, err := h.service.Create(r.Context(), farmerID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := pathID(w, r, "farmerID")
	if !ok {
		return
	}
	filter := StatusFilter(r.URL.Query().Get("status"))

	products, err := h.service.List(r.Context(), farmerID, filter)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := pathID(w, r, "farmerID")
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "request body must be valid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	p, err := h.service.Update(r.Context(), productID, farmerID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) handleMarkSoldOut(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := pathID(w, r, "farmerID")
	if !ok {
		return
	}
	productID, ok := pathID(w, r, "productID")
	if !ok {
		return
	}

	p, err := h.service.MarkSoldOut(r.Context(), productID, farmerID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, MarkSoldOutResponse{Success: true, Product: *p})
}

func (h *Handler) handleAvailable(w http.ResponseWriter, r *http.Request) {
	retailerID := chi.URLParam(r, "retailerID")

	items, err := h.service.Available(r.Context(), retailerID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
	case errors.Is(err, farmers.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "farmer not found")
	case errors.Is(err, retailers.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "retailer not found")
	case errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error("catalog request failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

package handler

import (
	"net/http"

	"mini-admin/internal/model"
	"mini-admin/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductHandler handles the product read endpoints.
type ProductHandler struct {
	service service.ProductService
	errorWriter
	logger zerolog.Logger
}

// NewProductHandler creates a new product handler. dev exposes error details.
func NewProductHandler(service service.ProductService, dev bool, logger zerolog.Logger) *ProductHandler {
	l := logger.With().Str("handler", "product").Logger()
	return &ProductHandler{
		service:     service,
		errorWriter: errorWriter{dev: dev, logger: l},
		logger:      l,
	}
}

// List handles GET /api/products with filtering, sorting and pagination.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), service.ParseProductQuery(r.URL.Query()))
	if err != nil {
		h.internal(w, msgProductListFailed, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

type productResponse struct {
	Product *model.ProductWithOwner `json:"product"`
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, msgProductNotFound, h.logger)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		if model.IsDomainError(err, model.ErrCodeProductNotFound) {
			writeError(w, http.StatusNotFound, msgProductNotFound, h.logger)
			return
		}
		h.internal(w, msgProductGetFailed, err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{Product: product})
}

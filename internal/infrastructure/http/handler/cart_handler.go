package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/store-api/internal/app/dto"
	"github.com/mrops-br/store-api/internal/app/service"
	"github.com/mrops-br/store-api/internal/domain"
	"github.com/mrops-br/store-api/internal/infrastructure/http/response"
)

// CartHandler handles HTTP requests for carts
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// CreateCart handles POST /carts
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.CreateCart(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusCreated, cart)
}

// GetCart handles GET /carts/{id}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cart, err := h.service.GetCart(r.Context(), id)
	if err != nil {
		if err == domain.ErrCartNotFound {
			response.Error(w, http.StatusNotFound, err)
		} else {
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// ListCarts handles GET /carts
func (h *CartHandler) ListCarts(w http.ResponseWriter, r *http.Request) {
	carts, err := h.service.ListCarts(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, carts)
}

// AddItem handles POST /carts/{id}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), id, &req)
	if err != nil {
		switch err {
		case domain.ErrCartNotFound, domain.ErrProductNotFound:
			response.Error(w, http.StatusNotFound, err)
		case domain.ErrInvalidQuantity:
			response.Error(w, http.StatusBadRequest, err)
		default:
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /carts/{id}/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	productID := chi.URLParam(r, "productID")

	cart, err := h.service.RemoveItem(r.Context(), id, productID)
	if err != nil {
		if err == domain.ErrCartNotFound {
			response.Error(w, http.StatusNotFound, err)
		} else {
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// DeleteCart handles DELETE /carts/{id}
func (h *CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteCart(r.Context(), id); err != nil {
		if err == domain.ErrCartNotFound {
			response.Error(w, http.StatusNotFound, err)
		} else {
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.NoContent(w)
}

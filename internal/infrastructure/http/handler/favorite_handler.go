package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/store-api/internal/app/service"
	"github.com/mrops-br/store-api/internal/domain"
	"github.com/mrops-br/store-api/internal/infrastructure/http/response"
)

// FavoriteHandler handles HTTP requests for the favorites set
type FavoriteHandler struct {
	service *service.FavoriteService
	logger  *slog.Logger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(service *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		logger:  logger,
	}
}

// ListFavorites handles GET /favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListFavorites(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// AddFavorite handles POST /favorites/{productID}
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.service.AddFavorite(r.Context(), productID)
	if err != nil {
		if err == domain.ErrProductNotFound {
			response.Error(w, http.StatusNotFound, err)
		} else {
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusCreated, product)
}

// RemoveFavorite handles DELETE /favorites/{productID}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.service.RemoveFavorite(r.Context(), productID); err != nil {
		if err == domain.ErrFavoriteNotFound {
			response.Error(w, http.StatusNotFound, err)
		} else {
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.NoContent(w)
}

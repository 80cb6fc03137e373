package dto

import (
	"time"

	"github.com/mrops-br/store-api/internal/domain"
)

// AddCartItemRequest represents the request to add a product to a cart.
// Quantity defaults to 1 when omitted.
type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

// Qty returns the requested quantity, defaulting to 1 when omitted.
func (r *AddCartItemRequest) Qty() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// CartItemResponse represents a single cart line in responses
type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartResponse represents a cart with its computed total
type CartResponse struct {
	ID        string             `json:"id"`
	Items     []CartItemResponse `json:"items"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToCartResponse converts a domain Cart to CartResponse, computing the total
// from the given product prices.
func ToCartResponse(c *domain.Cart, prices map[string]float64) *CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemResponse{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return &CartResponse{
		ID:        c.ID,
		Items:     items,
		Total:     c.Total(prices),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

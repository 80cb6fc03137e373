package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("item quantity must be positive")

// CartItem is a single line in a cart: one product and how many of it.
type CartItem struct {
	ProductID string
	Quantity  int
}

// Cart represents the cart entity. A cart holds at most one line per product;
// adding the same product again accumulates its quantity.
type Cart struct {
	ID        string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart creates a new empty cart
func NewCart() *Cart {
	now := time.Now()
	return &Cart{
		ID:        uuid.New().String(),
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem adds a product line to the cart, accumulating the quantity if the
// product is already present.
func (c *Cart) AddItem(productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
	c.UpdatedAt = time.Now()
	return nil
}

// RemoveItem removes the line for the given product. Removing a product that
// is not in the cart is a no-op; the returned bool reports whether a line was
// actually removed.
func (c *Cart) RemoveItem(productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the cart. Stores hand out and accept clones so
// callers never share Items with the stored entity.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = make([]CartItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}

// Total computes the cart total from the given product prices, rounded to two
// decimals. Lines whose product id has no price are skipped.
func (c *Cart) Total(prices map[string]float64) float64 {
	total := 0.0
	for _, item := range c.Items {
		if price, ok := prices[item.ProductID]; ok {
			total += price * float64(item.Quantity)
		}
	}
	return math.Round(total*100) / 100
}

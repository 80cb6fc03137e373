package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// ProductRepository defines the contract for product storage
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	// FindAll returns the products matching the query, or every product when
	// the query is empty.
	FindAll(ctx context.Context, query string) ([]*Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
}

// CartRepository defines the contract for cart storage
type CartRepository interface {
	Create(ctx context.Context, cart *Cart) error
	FindByID(ctx context.Context, id string) (*Cart, error)
	FindAll(ctx context.Context) ([]*Cart, error)
	Update(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id string) error
	// RemoveProduct strips every line referencing the product from all carts.
	// Used to keep carts consistent when a product is deleted.
	RemoveProduct(ctx context.Context, productID string) error
}

// FavoriteRepository defines the contract for the favorites set
type FavoriteRepository interface {
	// Add marks a product as favorite. Adding an existing favorite is a no-op.
	Add(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
	List(ctx context.Context) ([]string, error)
}

package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/store-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CartRepository is an in-memory implementation of domain.CartRepository.
// Carts are cloned on the way in and out, so the stored entities are only
// ever mutated under the repository's write lock.
type CartRepository struct {
	mu     sync.RWMutex
	carts  map[string]*domain.Cart
	tracer trace.Tracer
	logger *slog.Logger
}

// NewCartRepository creates a new in-memory cart repository
func NewCartRepository(tracer trace.Tracer, logger *slog.Logger) *CartRepository {
	return &CartRepository{
		carts:  make(map[string]*domain.Cart),
		tracer: tracer,
		logger: logger,
	}
}

// Create stores a new cart
func (r *CartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.Create")
	defer span.End()

	span.SetAttributes(attribute.String("cart.id", cart.ID))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.ID] = cart.Clone()

	r.logger.InfoContext(ctx, "Cart created in repository",
		slog.String("cart_id", cart.ID),
	)

	span.SetStatus(codes.Ok, "Cart created successfully")
	return nil
}

// FindByID retrieves a cart by ID
func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("cart.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, exists := r.carts[id]
	if !exists {
		span.RecordError(domain.ErrCartNotFound)
		span.SetStatus(codes.Error, "Cart not found")
		r.logger.WarnContext(ctx, "Cart not found",
			slog.String("cart_id", id),
		)
		return nil, domain.ErrCartNotFound
	}

	span.SetStatus(codes.Ok, "Cart found")
	return cart.Clone(), nil
}

// FindAll retrieves all carts
func (r *CartRepository) FindAll(ctx context.Context) ([]*domain.Cart, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	carts := make([]*domain.Cart, 0, len(r.carts))
	for _, cart := range r.carts {
		carts = append(carts, cart.Clone())
	}

	span.SetAttributes(attribute.Int("cart.count", len(carts)))

	r.logger.DebugContext(ctx, "Carts retrieved from repository",
		slog.Int("count", len(carts)),
	)

	span.SetStatus(codes.Ok, "Carts retrieved successfully")
	return carts, nil
}

// Update replaces an existing cart
func (r *CartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.String("cart.id", cart.ID))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.carts[cart.ID]; !exists {
		span.RecordError(domain.ErrCartNotFound)
		span.SetStatus(codes.Error, "Cart not found")
		return domain.ErrCartNotFound
	}

	r.carts[cart.ID] = cart.Clone()

	r.logger.DebugContext(ctx, "Cart updated in repository",
		slog.String("cart_id", cart.ID),
		slog.Int("item_count", len(cart.Items)),
	)

	span.SetStatus(codes.Ok, "Cart updated successfully")
	return nil
}

// Delete removes a cart by ID
func (r *CartRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("cart.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.carts[id]; !exists {
		span.RecordError(domain.ErrCartNotFound)
		span.SetStatus(codes.Error, "Cart not found")
		r.logger.WarnContext(ctx, "Cart not found",
			slog.String("cart_id", id),
		)
		return domain.ErrCartNotFound
	}

	delete(r.carts, id)

	r.logger.InfoContext(ctx, "Cart deleted from repository",
		slog.String("cart_id", id),
	)

	span.SetStatus(codes.Ok, "Cart deleted successfully")
	return nil
}

// RemoveProduct strips every line referencing the product from all carts
func (r *CartRepository) RemoveProduct(ctx context.Context, productID string) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.RemoveProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", productID))

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for _, cart := range r.carts {
		if cart.RemoveItem(productID) {
			removed++
		}
	}

	span.SetAttributes(attribute.Int("cart.affected", removed))

	if removed > 0 {
		r.logger.InfoContext(ctx, "Product removed from carts",
			slog.String("product_id", productID),
			slog.Int("cart_count", removed),
		)
	}

	span.SetStatus(codes.Ok, "Product removed from carts")
	return nil
}

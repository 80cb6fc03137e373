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

// FavoriteRepository is an in-memory implementation of domain.FavoriteRepository.
// Insertion order is kept so listings are stable.
type FavoriteRepository struct {
	mu      sync.RWMutex
	ids     []string
	present map[string]bool
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewFavoriteRepository creates a new in-memory favorite repository
func NewFavoriteRepository(tracer trace.Tracer, logger *slog.Logger) *FavoriteRepository {
	return &FavoriteRepository{
		present: make(map[string]bool),
		tracer:  tracer,
		logger:  logger,
	}
}

// Add marks a product as favorite. Adding an existing favorite is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, productID string) error {
	ctx, span := r.tracer.Start(ctx, "FavoriteRepository.Add")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", productID))

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.present[productID] {
		r.present[productID] = true
		r.ids = append(r.ids, productID)
		r.logger.InfoContext(ctx, "Favorite added in repository",
			slog.String("product_id", productID),
		)
	}

	span.SetStatus(codes.Ok, "Favorite added successfully")
	return nil
}

// Remove unmarks a product as favorite
func (r *FavoriteRepository) Remove(ctx context.Context, productID string) error {
	ctx, span := r.tracer.Start(ctx, "FavoriteRepository.Remove")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", productID))

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.present[productID] {
		span.RecordError(domain.ErrFavoriteNotFound)
		span.SetStatus(codes.Error, "Favorite not found")
		return domain.ErrFavoriteNotFound
	}

	delete(r.present, productID)
	for i, id := range r.ids {
		if id == productID {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}

	r.logger.InfoContext(ctx, "Favorite removed from repository",
		slog.String("product_id", productID),
	)

	span.SetStatus(codes.Ok, "Favorite removed successfully")
	return nil
}

// List returns the favorited product ids in insertion order
func (r *FavoriteRepository) List(ctx context.Context) ([]string, error) {
	ctx, span := r.tracer.Start(ctx, "FavoriteRepository.List")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.ids))
	copy(ids, r.ids)

	span.SetAttributes(attribute.Int("favorite.count", len(ids)))

	r.logger.DebugContext(ctx, "Favorites retrieved from repository",
		slog.Int("count", len(ids)),
	)

	span.SetStatus(codes.Ok, "Favorites retrieved successfully")
	return ids, nil
}

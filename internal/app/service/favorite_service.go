package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrops-br/store-api/internal/app/dto"
	"github.com/mrops-br/store-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// FavoriteService handles the favorites set: products a user has marked.
type FavoriteService struct {
	repo               domain.FavoriteRepository
	products           domain.ProductRepository
	tracer             trace.Tracer
	logger             *slog.Logger
	favoriteOperations metric.Int64Counter
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(
	repo domain.FavoriteRepository,
	products domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *FavoriteService {
	favoriteOperations, _ := meter.Int64Counter(
		"favorites.operations",
		metric.WithDescription("Total number of favorite operations"),
	)

	return &FavoriteService{
		repo:               repo,
		products:           products,
		tracer:             tracer,
		logger:             logger,
		favoriteOperations: favoriteOperations,
	}
}

func (s *FavoriteService) countOperation(ctx context.Context, operation, result string) {
	s.favoriteOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// ListFavorites returns the favorited products. Favorites whose product has
// disappeared are skipped.
func (s *FavoriteService) ListFavorites(ctx context.Context) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "FavoriteService.ListFavorites")
	defer span.End()

	ids, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list favorites")
		s.countOperation(ctx, "list", "failure")
		return nil, err
	}

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.products.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to resolve favorite product")
			s.countOperation(ctx, "list", "failure")
			return nil, err
		}
		products = append(products, product)
	}

	span.SetAttributes(attribute.Int("favorite.count", len(products)))
	s.countOperation(ctx, "list", "success")

	span.SetStatus(codes.Ok, "Favorites listed successfully")
	return dto.ToProductResponseList(products), nil
}

// AddFavorite marks a product as favorite. Marking one that is already a
// favorite is a no-op; either way the product is returned.
func (s *FavoriteService) AddFavorite(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "FavoriteService.AddFavorite")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", productID))

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", productID),
		)
		s.countOperation(ctx, "add", "not_found")
		return nil, err
	}

	if err := s.repo.Add(ctx, productID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store favorite")
		s.countOperation(ctx, "add", "failure")
		return nil, err
	}

	s.countOperation(ctx, "add", "success")

	s.logger.InfoContext(ctx, "Product favorited",
		slog.String("product_id", productID),
	)

	span.SetStatus(codes.Ok, "Favorite added successfully")
	return dto.ToProductResponse(product), nil
}

// RemoveFavorite unmarks a product as favorite
func (s *FavoriteService) RemoveFavorite(ctx context.Context, productID string) error {
	ctx, span := s.tracer.Start(ctx, "FavoriteService.RemoveFavorite")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", productID))

	if err := s.repo.Remove(ctx, productID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Favorite not found")
		s.logger.WarnContext(ctx, "Favorite not found",
			slog.String("product_id", productID),
		)
		s.countOperation(ctx, "remove", "not_found")
		return err
	}

	s.countOperation(ctx, "remove", "success")

	s.logger.InfoContext(ctx, "Product unfavorited",
		slog.String("product_id", productID),
	)

	span.SetStatus(codes.Ok, "Favorite removed successfully")
	return nil
}

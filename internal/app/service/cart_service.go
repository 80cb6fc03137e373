package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/store-api/internal/app/dto"
	"github.com/mrops-br/store-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CartService handles cart use cases. Totals are never stored; they are
// recomputed from current product prices on every read.
type CartService struct {
	repo           domain.CartRepository
	products       domain.ProductRepository
	tracer         trace.Tracer
	logger         *slog.Logger
	cartOperations metric.Int64Counter
	itemsAdded     metric.Int64Counter
}

// NewCartService creates a new cart service
func NewCartService(
	repo domain.CartRepository,
	products domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CartService {
	cartOperations, _ := meter.Int64Counter(
		"carts.operations",
		metric.WithDescription("Total number of cart operations"),
	)

	itemsAdded, _ := meter.Int64Counter(
		"carts.items.added.total",
		metric.WithDescription("Total number of items added to carts"),
	)

	return &CartService{
		repo:           repo,
		products:       products,
		tracer:         tracer,
		logger:         logger,
		cartOperations: cartOperations,
		itemsAdded:     itemsAdded,
	}
}

func (s *CartService) countOperation(ctx context.Context, operation, result string) {
	s.cartOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// priceIndex builds a product id to price mapping for total computation.
func (s *CartService) priceIndex(ctx context.Context) (map[string]float64, error) {
	products, err := s.products.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	return prices, nil
}

// CreateCart creates a new empty cart
func (s *CartService) CreateCart(ctx context.Context) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.CreateCart")
	defer span.End()

	cart := domain.NewCart()
	span.SetAttributes(attribute.String("cart.id", cart.ID))

	if err := s.repo.Create(ctx, cart); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store cart")
		s.logger.ErrorContext(ctx, "Failed to store cart",
			slog.String("error", err.Error()),
		)
		s.countOperation(ctx, "create", "failure")
		return nil, err
	}

	s.countOperation(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Cart created successfully",
		slog.String("cart_id", cart.ID),
	)

	span.SetStatus(codes.Ok, "Cart created successfully")
	return dto.ToCartResponse(cart, nil), nil
}

// GetCart retrieves a cart by ID with its computed total
func (s *CartService) GetCart(ctx context.Context, id string) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart")
	defer span.End()

	span.SetAttributes(attribute.String("cart.id", id))

	cart, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Cart not found")
		s.logger.WarnContext(ctx, "Cart not found",
			slog.String("cart_id", id),
		)
		s.countOperation(ctx, "read", "not_found")
		return nil, err
	}

	prices, err := s.priceIndex(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to compute cart total")
		s.countOperation(ctx, "read", "failure")
		return nil, err
	}

	s.countOperation(ctx, "read", "success")

	span.SetStatus(codes.Ok, "Cart retrieved successfully")
	return dto.ToCartResponse(cart, prices), nil
}

// ListCarts retrieves all carts with their computed totals
func (s *CartService) ListCarts(ctx context.Context) ([]*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ListCarts")
	defer span.End()

	carts, err := s.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve carts")
		s.logger.ErrorContext(ctx, "Failed to list carts",
			slog.String("error", err.Error()),
		)
		s.countOperation(ctx, "list", "failure")
		return nil, err
	}

	prices, err := s.priceIndex(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to compute cart totals")
		s.countOperation(ctx, "list", "failure")
		return nil, err
	}

	responses := make([]*dto.CartResponse, len(carts))
	for i, cart := range carts {
		responses[i] = dto.ToCartResponse(cart, prices)
	}

	span.SetAttributes(attribute.Int("cart.count", len(carts)))
	s.countOperation(ctx, "list", "success")

	span.SetStatus(codes.Ok, "Carts listed successfully")
	return responses, nil
}

// AddItem adds a product to a cart, accumulating the quantity when the
// product is already in it. The product must exist.
func (s *CartService) AddItem(ctx context.Context, cartID string, req *dto.AddCartItemRequest) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem")
	defer span.End()

	span.SetAttributes(
		attribute.String("cart.id", cartID),
		attribute.String("product.id", req.ProductID),
		attribute.Int("cart.item.quantity", req.Qty()),
	)

	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Cart not found")
		s.logger.WarnContext(ctx, "Cart not found",
			slog.String("cart_id", cartID),
		)
		s.countOperation(ctx, "add_item", "not_found")
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", req.ProductID),
		)
		s.countOperation(ctx, "add_item", "not_found")
		return nil, err
	}

	if err := cart.AddItem(req.ProductID, req.Qty()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid quantity")
		s.countOperation(ctx, "add_item", "failure")
		return nil, err
	}

	if err := s.repo.Update(ctx, cart); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update cart")
		s.countOperation(ctx, "add_item", "failure")
		return nil, err
	}

	prices, err := s.priceIndex(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to compute cart total")
		s.countOperation(ctx, "add_item", "failure")
		return nil, err
	}

	s.itemsAdded.Add(ctx, int64(req.Qty()))
	s.countOperation(ctx, "add_item", "success")

	s.logger.InfoContext(ctx, "Item added to cart",
		slog.String("cart_id", cartID),
		slog.String("product_id", req.ProductID),
		slog.Int("quantity", req.Qty()),
	)

	span.SetStatus(codes.Ok, "Item added successfully")
	return dto.ToCartResponse(cart, prices), nil
}

// RemoveItem removes a product line from a cart. Removing a product that is
// not in the cart is a no-op and still returns the cart.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (*dto.CartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem")
	defer span.End()

	span.SetAttributes(
		attribute.String("cart.id", cartID),
		attribute.String("product.id", productID),
	)

	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Cart not found")
		s.logger.WarnContext(ctx, "Cart not found",
			slog.String("cart_id", cartID),
		)
		s.countOperation(ctx, "remove_item", "not_found")
		return nil, err
	}

	if cart.RemoveItem(productID) {
		if err := s.repo.Update(ctx, cart); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to update cart")
			s.countOperation(ctx, "remove_item", "failure")
			return nil, err
		}
		s.logger.InfoContext(ctx, "Item removed from cart",
			slog.String("cart_id", cartID),
			slog.String("product_id", productID),
		)
	}

	prices, err := s.priceIndex(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to compute cart total")
		s.countOperation(ctx, "remove_item", "failure")
		return nil, err
	}

	s.countOperation(ctx, "remove_item", "success")

	span.SetStatus(codes.Ok, "Item removed successfully")
	return dto.ToCartResponse(cart, prices), nil
}

// DeleteCart removes a cart entirely
func (s *CartService) DeleteCart(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CartService.DeleteCart")
	defer span.End()

	span.SetAttributes(attribute.String("cart.id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Cart not found")
		s.logger.WarnContext(ctx, "Cart not found",
			slog.String("cart_id", id),
		)
		s.countOperation(ctx, "delete", "not_found")
		return err
	}

	s.countOperation(ctx, "delete", "success")

	s.logger.InfoContext(ctx, "Cart deleted successfully",
		slog.String("cart_id", id),
	)

	span.SetStatus(codes.Ok, "Cart deleted successfully")
	return nil
}

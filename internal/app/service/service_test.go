package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/store-api/internal/domain"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Shared test fixtures: no-op telemetry and map-backed fake repositories.

var (
	testTracer = tracenoop.NewTracerProvider().Tracer("test")
	testMeter  = metricnoop.NewMeterProvider().Meter("test")
	testLogger = slog.New(slog.DiscardHandler)
)

type fakeProductRepo struct {
	products   map[string]*domain.Product
	findErr    error
	findAllErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*domain.Product{}}
}

func (f *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, query string) ([]*domain.Product, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]*domain.Product, 0, len(f.products))
	for _, p := range f.products {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *domain.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeCartRepo struct {
	carts map[string]*domain.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*domain.Cart{}}
}

func (f *fakeCartRepo) Create(ctx context.Context, c *domain.Cart) error {
	f.carts[c.ID] = c
	return nil
}

func (f *fakeCartRepo) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	c, ok := f.carts[id]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return c, nil
}

func (f *fakeCartRepo) FindAll(ctx context.Context) ([]*domain.Cart, error) {
	out := make([]*domain.Cart, 0, len(f.carts))
	for _, c := range f.carts {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCartRepo) Update(ctx context.Context, c *domain.Cart) error {
	if _, ok := f.carts[c.ID]; !ok {
		return domain.ErrCartNotFound
	}
	f.carts[c.ID] = c
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.carts[id]; !ok {
		return domain.ErrCartNotFound
	}
	delete(f.carts, id)
	return nil
}

func (f *fakeCartRepo) RemoveProduct(ctx context.Context, productID string) error {
	for _, c := range f.carts {
		c.RemoveItem(productID)
	}
	return nil
}

type fakeFavoriteRepo struct {
	ids map[string]bool
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{ids: map[string]bool{}}
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, productID string) error {
	f.ids[productID] = true
	return nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, productID string) error {
	if !f.ids[productID] {
		return domain.ErrFavoriteNotFound
	}
	delete(f.ids, productID)
	return nil
}

func (f *fakeFavoriteRepo) List(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	return out, nil
}

package memory

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/mrops-br/store-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

var (
	testTracer = tracenoop.NewTracerProvider().Tracer("test")
	testLogger = slog.New(slog.DiscardHandler)
)

func mustProduct(t *testing.T, name string, price float64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, "", price)
	require.NoError(t, err)
	return p
}

func TestProductRepository_CRUD(t *testing.T) {
	repo := NewProductRepository(testTracer, testLogger)
	ctx := context.Background()

	p := mustProduct(t, "Keyboard", 49.90)
	require.NoError(t, repo.Create(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, found.Name)

	updated := *p
	updated.Price = 39.99
	require.NoError(t, repo.Update(ctx, &updated))

	found, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 39.99, found.Price)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_NotFound(t *testing.T) {
	repo := NewProductRepository(testTracer, testLogger)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrProductNotFound)
	assert.ErrorIs(t, repo.Update(ctx, mustProduct(t, "X", 1)), domain.ErrProductNotFound)
}

func TestProductRepository_FindAll(t *testing.T) {
	repo := NewProductRepository(testTracer, testLogger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, mustProduct(t, "Wireless Mouse", 20)))
	require.NoError(t, repo.Create(ctx, mustProduct(t, "Keyboard", 50)))

	all, err := repo.FindAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matched, err := repo.FindAll(ctx, "MOUSE")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Wireless Mouse", matched[0].Name)

	none, err := repo.FindAll(ctx, "monitor")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCartRepository_CRUD(t *testing.T) {
	repo := NewCartRepository(testTracer, testLogger)
	ctx := context.Background()

	cart := domain.NewCart()
	require.NoError(t, repo.Create(ctx, cart))

	found, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)

	require.NoError(t, cart.AddItem("p1", 2))
	require.NoError(t, repo.Update(ctx, cart))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Items, 1)

	require.NoError(t, repo.Delete(ctx, cart.ID))
	_, err = repo.FindByID(ctx, cart.ID)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestCartRepository_RemoveProduct(t *testing.T) {
	repo := NewCartRepository(testTracer, testLogger)
	ctx := context.Background()

	first := domain.NewCart()
	require.NoError(t, first.AddItem("p1", 2))
	require.NoError(t, first.AddItem("p2", 1))
	second := domain.NewCart()
	require.NoError(t, second.AddItem("p1", 5))

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, repo.RemoveProduct(ctx, "p1"))

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p2", got.Items[0].ProductID)

	got, err = repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	// Product in no cart is a no-op
	require.NoError(t, repo.RemoveProduct(ctx, "p3"))
}

func TestCartRepository_ReturnsIsolatedCopies(t *testing.T) {
	repo := NewCartRepository(testTracer, testLogger)
	ctx := context.Background()

	cart := domain.NewCart()
	require.NoError(t, cart.AddItem("p1", 1))
	require.NoError(t, repo.Create(ctx, cart))

	// Mutating the caller's cart after Create must not touch the stored one
	require.NoError(t, cart.AddItem("p2", 1))
	stored, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)

	// Mutating a FindByID result must not touch the stored cart either
	require.NoError(t, stored.AddItem("p3", 1))
	again, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, again.Items, 1)

	// Same for FindAll results
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	all[0].RemoveItem("p1")
	again, err = repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, again.Items, 1)
}

func TestCartRepository_ConcurrentAccess(t *testing.T) {
	repo := NewCartRepository(testTracer, testLogger)
	ctx := context.Background()

	cart := domain.NewCart()
	require.NoError(t, cart.AddItem("p1", 1))
	require.NoError(t, repo.Create(ctx, cart))

	// Readers, writers, and the delete-product cascade all touch the same
	// cart at once; cloning at the repository boundary keeps them off each
	// other's Items.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			got, err := repo.FindByID(ctx, cart.ID)
			if err != nil {
				return
			}
			_ = got.AddItem("p2", 1)
			_ = repo.Update(ctx, got)
		}()
		go func() {
			defer wg.Done()
			if got, err := repo.FindByID(ctx, cart.ID); err == nil {
				got.Total(map[string]float64{"p1": 1, "p2": 2})
			}
		}()
		go func() {
			defer wg.Done()
			_ = repo.RemoveProduct(ctx, "p2")
		}()
	}
	wg.Wait()

	got, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	require.NotEmpty(t, got.Items)
	assert.Equal(t, "p1", got.Items[0].ProductID)
}

func TestFavoriteRepository(t *testing.T) {
	repo := NewFavoriteRepository(testTracer, testLogger)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "p1"))
	require.NoError(t, repo.Add(ctx, "p2"))
	require.NoError(t, repo.Add(ctx, "p1")) // duplicate is a no-op

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)

	require.NoError(t, repo.Remove(ctx, "p1"))
	ids, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids)

	assert.ErrorIs(t, repo.Remove(ctx, "p1"), domain.ErrFavoriteNotFound)
}

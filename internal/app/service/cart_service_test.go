package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mrops-br/store-api/internal/app/dto"
	"github.com/mrops-br/store-api/internal/domain"
	"github.com/mrops-br/store-api/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*CartService, *fakeProductRepo, string) {
	t.Helper()

	products := newFakeProductRepo()
	carts := newFakeCartRepo()
	svc := NewCartService(carts, products, testTracer, testMeter, testLogger)

	created, err := svc.CreateCart(context.Background())
	require.NoError(t, err)

	return svc, products, created.ID
}

func addProduct(t *testing.T, repo *fakeProductRepo, name string, price float64) string {
	t.Helper()

	p, err := domain.NewProduct(name, "", price)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p.ID
}

func intPtr(v int) *int { return &v }

func TestCreateCart(t *testing.T) {
	svc, _, id := newCartFixture(t)

	cart, err := svc.GetCart(context.Background(), id)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestGetCart_NotFound(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	_, err := svc.GetCart(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestAddItem(t *testing.T) {
	svc, products, cartID := newCartFixture(t)
	productID := addProduct(t, products, "Keyboard", 49.90)

	cart, err := svc.AddItem(context.Background(), cartID, &dto.AddCartItemRequest{
		ProductID: productID,
		Quantity:  intPtr(2),
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 99.80, cart.Total)
}

func TestAddItem_AccumulatesQuantity(t *testing.T) {
	svc, products, cartID := newCartFixture(t)
	productID := addProduct(t, products, "Keyboard", 10)

	_, err := svc.AddItem(context.Background(), cartID, &dto.AddCartItemRequest{ProductID: productID, Quantity: intPtr(2)})
	require.NoError(t, err)

	cart, err := svc.AddItem(context.Background(), cartID, &dto.AddCartItemRequest{ProductID: productID, Quantity: intPtr(3)})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 50.0, cart.Total)
}

func TestAddItem_DefaultQuantity(t *testing.T) {
	svc, products, cartID := newCartFixture(t)
	productID := addProduct(t, products, "Keyboard", 10)

	// Quantity omitted defaults to 1
	cart, err := svc.AddItem(context.Background(), cartID, &dto.AddCartItemRequest{ProductID: productID})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	svc, products, cartID := newCartFixture(t)
	productID := addProduct(t, products, "Keyboard", 10)

	_, err := svc.AddItem(context.Background(), cartID, &dto.AddCartItemRequest{ProductID: productID, Quantity: intPtr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc, _, cartID := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), cartID, &dto.AddCartItemRequest{ProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddItem_UnknownCart(t *testing.T) {
	svc, products, _ := newCartFixture(t)
	productID := addProduct(t, products, "Keyboard", 10)

	_, err := svc.AddItem(context.Background(), "missing", &dto.AddCartItemRequest{ProductID: productID})
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc, products, cartID := newCartFixture(t)
	productID := addProduct(t, products, "Keyboard", 10)

	_, err := svc.AddItem(context.Background(), cartID, &dto.AddCartItemRequest{ProductID: productID, Quantity: intPtr(2)})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), cartID, productID)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	svc, _, cartID := newCartFixture(t)

	cart, err := svc.RemoveItem(context.Background(), cartID, "never-added")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestListCarts_Totals(t *testing.T) {
	products := newFakeProductRepo()
	carts := newFakeCartRepo()
	svc := NewCartService(carts, products, testTracer, testMeter, testLogger)

	p1 := addProduct(t, products, "Keyboard", 9.99)
	p2 := addProduct(t, products, "Mouse", 0.10)

	first, err := svc.CreateCart(context.Background())
	require.NoError(t, err)
	_, err = svc.CreateCart(context.Background())
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), first.ID, &dto.AddCartItemRequest{ProductID: p1, Quantity: intPtr(2)})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), first.ID, &dto.AddCartItemRequest{ProductID: p2, Quantity: intPtr(3)})
	require.NoError(t, err)

	all, err := svc.ListCarts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	totals := map[string]float64{}
	for _, c := range all {
		totals[c.ID] = c.Total
	}
	assert.Equal(t, 20.28, totals[first.ID])
}

func TestAddItem_PriceIndexError(t *testing.T) {
	products := newFakeProductRepo()
	carts := newFakeCartRepo()
	svc := NewCartService(carts, products, testTracer, testMeter, testLogger)

	productID := addProduct(t, products, "Keyboard", 10)
	created, err := svc.CreateCart(context.Background())
	require.NoError(t, err)

	// Product lookup succeeds, total computation fails
	products.findAllErr = errors.New("boom")

	_, err = svc.AddItem(context.Background(), created.ID, &dto.AddCartItemRequest{ProductID: productID})
	assert.EqualError(t, err, "boom")

	_, err = svc.RemoveItem(context.Background(), created.ID, productID)
	assert.EqualError(t, err, "boom")
}

func TestAddItem_ConcurrentRequests(t *testing.T) {
	productRepo := memory.NewProductRepository(testTracer, testLogger)
	cartRepo := memory.NewCartRepository(testTracer, testLogger)
	svc := NewCartService(cartRepo, productRepo, testTracer, testMeter, testLogger)

	product, err := domain.NewProduct("Keyboard", "", 10)
	require.NoError(t, err)
	require.NoError(t, productRepo.Create(context.Background(), product))

	created, err := svc.CreateCart(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.AddItem(context.Background(), created.ID, &dto.AddCartItemRequest{ProductID: product.ID})
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.GetCart(context.Background(), created.ID)
		}()
	}
	wg.Wait()

	cart, err := svc.GetCart(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].ProductID)
	assert.GreaterOrEqual(t, cart.Items[0].Quantity, 1)
}

func TestDeleteCart(t *testing.T) {
	svc, _, cartID := newCartFixture(t)

	require.NoError(t, svc.DeleteCart(context.Background(), cartID))

	_, err := svc.GetCart(context.Background(), cartID)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)

	assert.ErrorIs(t, svc.DeleteCart(context.Background(), cartID), domain.ErrCartNotFound)
}

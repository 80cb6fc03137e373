package service

import (
	"context"
	"testing"

	"github.com/mrops-br/store-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoriteFixture() (*FavoriteService, *fakeProductRepo, *fakeFavoriteRepo) {
	products := newFakeProductRepo()
	favorites := newFakeFavoriteRepo()
	svc := NewFavoriteService(favorites, products, testTracer, testMeter, testLogger)
	return svc, products, favorites
}

func TestAddFavorite(t *testing.T) {
	svc, products, favorites := newFavoriteFixture()
	productID := addProduct(t, products, "Keyboard", 10)

	resp, err := svc.AddFavorite(context.Background(), productID)
	require.NoError(t, err)

	assert.Equal(t, productID, resp.ID)
	assert.True(t, favorites.ids[productID])
}

func TestAddFavorite_Idempotent(t *testing.T) {
	svc, products, _ := newFavoriteFixture()
	productID := addProduct(t, products, "Keyboard", 10)

	_, err := svc.AddFavorite(context.Background(), productID)
	require.NoError(t, err)
	_, err = svc.AddFavorite(context.Background(), productID)
	require.NoError(t, err)

	listed, err := svc.ListFavorites(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestAddFavorite_UnknownProduct(t *testing.T) {
	svc, _, _ := newFavoriteFixture()

	_, err := svc.AddFavorite(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRemoveFavorite(t *testing.T) {
	svc, products, _ := newFavoriteFixture()
	productID := addProduct(t, products, "Keyboard", 10)

	_, err := svc.AddFavorite(context.Background(), productID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorite(context.Background(), productID))
	assert.ErrorIs(t, svc.RemoveFavorite(context.Background(), productID), domain.ErrFavoriteNotFound)
}

func TestListFavorites_SkipsDeletedProducts(t *testing.T) {
	svc, products, favorites := newFavoriteFixture()
	productID := addProduct(t, products, "Keyboard", 10)

	require.NoError(t, favorites.Add(context.Background(), productID))
	require.NoError(t, favorites.Add(context.Background(), "gone"))

	listed, err := svc.ListFavorites(context.Background())
	require.NoError(t, err)

	require.Len(t, listed, 1)
	assert.Equal(t, productID, listed[0].ID)
}

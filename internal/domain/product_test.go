package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct("Keyboard", "mechanical", 49.90)
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Keyboard", product.Name)
	assert.Equal(t, 49.90, product.Price)
	assert.False(t, product.CreatedAt.IsZero())
}

func TestNewProduct_UniqueIDs(t *testing.T) {
	a, err := NewProduct("A", "", 1)
	require.NoError(t, err)
	b, err := NewProduct("B", "", 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewProduct_Invalid(t *testing.T) {
	_, err := NewProduct("", "", 10)
	assert.ErrorIs(t, err, ErrInvalidProductName)

	_, err = NewProduct("Keyboard", "", 0)
	assert.ErrorIs(t, err, ErrInvalidProductPrice)

	_, err = NewProduct("Keyboard", "", -5)
	assert.ErrorIs(t, err, ErrInvalidProductPrice)
}

func TestProductMatches(t *testing.T) {
	product := &Product{
		Name:        "Wireless Mouse",
		Description: "ergonomic design",
		Brand:       "Logi",
		Category:    "peripherals",
	}

	assert.True(t, product.Matches(""))
	assert.True(t, product.Matches("mouse"))
	assert.True(t, product.Matches("ERGO"))
	assert.True(t, product.Matches("logi"))
	assert.True(t, product.Matches("periph"))
	assert.False(t, product.Matches("keyboard"))
}

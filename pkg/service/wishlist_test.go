package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/models"
)

func newWishlistFixture() (*WishlistService, *fakeProductStore) {
	products := newFakeProductStore()
	return NewWishlistService(newFakeWishlistStore(), products), products
}

func TestWishlistAddAndList(t *testing.T) {
	svc, products := newWishlistFixture()
	ctx := context.Background()
	owner := userPrincipal()

	productID := products.add(models.Product{Name: "Lamp", Price: 19.99, Stock: 5})

	item, err := svc.Add(ctx, owner, productID)
	require.NoError(t, err)
	require.NotNil(t, item.Product)
	assert.Equal(t, "Lamp", item.Product.Name)

	items, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Lamp", items[0].Product.Name)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc, _ := newWishlistFixture()

	_, err := svc.Add(context.Background(), userPrincipal(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistRejectsDuplicate(t *testing.T) {
	svc, products := newWishlistFixture()
	ctx := context.Background()
	owner := userPrincipal()

	productID := products.add(models.Product{Name: "Lamp", Price: 19.99, Stock: 5})

	_, err := svc.Add(ctx, owner, productID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, owner, productID)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestWishlistRemove(t *testing.T) {
	svc, products := newWishlistFixture()
	ctx := context.Background()
	owner := userPrincipal()

	productID := products.add(models.Product{Name: "Lamp", Price: 19.99, Stock: 5})

	_, err := svc.Add(ctx, owner, productID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, owner, productID))

	err = svc.Remove(ctx, owner, productID)
	assert.ErrorIs(t, err, ErrNotFound)
}

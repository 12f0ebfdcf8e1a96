package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/services"
	"storefront/store"
)

func TestWishlistAdd(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewWishlistService(st)
	product := seedProduct(t, st, 15, 5)
	userID := primitive.NewObjectID()

	wishlist, err := svc.AddItem(context.Background(), userID, product.ID)
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, product.ID, wishlist.Items[0].ProductID)
	assert.Equal(t, "Walnut Desk", wishlist.Items[0].Name)
	assert.Equal(t, "furniture", wishlist.Items[0].Category)
	assert.False(t, wishlist.Items[0].AddedAt.IsZero())
}

func TestWishlistAddValidation(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewWishlistService(st)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, primitive.NilObjectID)
	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.AddItem(context.Background(), userID, primitive.NewObjectID())
	var notFoundErr *services.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestWishlistDuplicateAddRejected(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewWishlistService(st)
	product := seedProduct(t, st, 15, 5)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), userID, product.ID)
	var duplicateErr *services.DuplicateError
	require.ErrorAs(t, err, &duplicateErr)

	wishlist, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, wishlist.Items, 1)
}

func TestWishlistReadIsLiveJoin(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewWishlistService(st)
	product := seedProduct(t, st, 15, 5)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID)
	require.NoError(t, err)

	// Unlike the cart, wishlist reads follow the current catalog price.
	product.Price = 99
	product.Title = "Walnut Desk XL"
	require.NoError(t, st.Products.Update(context.Background(), product))

	wishlist, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, 99.0, wishlist.Items[0].Price)
	assert.Equal(t, "Walnut Desk XL", wishlist.Items[0].Name)
}

func TestWishlistOmitsDeletedProducts(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewWishlistService(st)
	product := seedProduct(t, st, 15, 5)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID)
	require.NoError(t, err)
	require.NoError(t, st.Products.Delete(context.Background(), product.ID))

	wishlist, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, wishlist.Items)
}

func TestWishlistRemove(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewWishlistService(st)
	product := seedProduct(t, st, 15, 5)
	userID := primitive.NewObjectID()

	var notFoundErr *services.NotFoundError
	_, err := svc.RemoveItem(context.Background(), userID, product.ID)
	require.ErrorAs(t, err, &notFoundErr)

	_, err = svc.AddItem(context.Background(), userID, product.ID)
	require.NoError(t, err)

	_, err = svc.RemoveItem(context.Background(), userID, primitive.NewObjectID())
	require.ErrorAs(t, err, &notFoundErr)

	wishlist, err := svc.RemoveItem(context.Background(), userID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, wishlist.Items)
}

func TestWishlistGetSyntheticWhenAbsent(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewWishlistService(st)
	userID := primitive.NewObjectID()

	wishlist, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, wishlist.UserID)
	assert.Empty(t, wishlist.Items)
}

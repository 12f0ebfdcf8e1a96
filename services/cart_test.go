package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
	"storefront/services"
	"storefront/store"
)

func seedProduct(t *testing.T, st *store.Store, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:    "Walnut Desk",
		Image:    "/images/desk.jpg",
		Price:    price,
		Brand:    "Oakline",
		Category: "furniture",
		Stock:    stock,
		SKU:      "DESK-001",
	}
	require.NoError(t, st.Products.Insert(context.Background(), product))
	return product
}

func TestAddItemToEmptyCart(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 49.99, 10)
	userID := primitive.NewObjectID()

	cart, err := svc.AddItem(context.Background(), userID, product.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].ProductID)
	assert.Equal(t, "Walnut Desk", cart.Items[0].Name)
	assert.Equal(t, 49.99, cart.Items[0].Price)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, 149.97, cart.TotalPrice)
}

func TestAddItemDefaultsAndValidation(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 10, 5)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 0)
	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.AddItem(context.Background(), userID, primitive.NilObjectID, 1)
	require.ErrorAs(t, err, &validationErr)
}

func TestAddItemUnknownProduct(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)

	_, err := svc.AddItem(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 1)
	var notFoundErr *services.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestAddItemFirstInsertionOverStockFails(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 10, 5)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 6)
	var stockErr *services.StockError
	require.ErrorAs(t, err, &stockErr)

	// Nothing was persisted.
	_, err = st.Carts.GetByUser(context.Background(), userID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddItemIncrementClampsToStock(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 10, 5)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 3)
	require.NoError(t, err)

	// 3 + 4 exceeds stock 5: the sum is capped, not rejected.
	cart, err := svc.AddItem(context.Background(), userID, product.ID, 4)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalQuantity)
}

func TestAddItemSnapshotsPriceAtAddTime(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 20, 10)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 1)
	require.NoError(t, err)

	product.Price = 35
	require.NoError(t, st.Products.Update(context.Background(), product))

	cart, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cart.Items[0].Price)
	assert.Equal(t, 20.0, cart.TotalPrice)
}

func TestGetCartSyntheticWhenAbsent(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	userID := primitive.NewObjectID()

	cart, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalQuantity)
	assert.Equal(t, 0.0, cart.TotalPrice)

	// The synthetic cart is never written.
	_, err = st.Carts.GetByUser(context.Background(), userID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateItemReplacesQuantityExactly(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 10, 8)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateItem(context.Background(), userID, product.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateItemOverStockFailsAndLeavesLine(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 10, 5)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateItem(context.Background(), userID, product.ID, 6)
	var stockErr *services.StockError
	require.ErrorAs(t, err, &stockErr)

	cart, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestUpdateItemMissingCartOrLine(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 10, 5)
	userID := primitive.NewObjectID()

	var notFoundErr *services.NotFoundError
	_, err := svc.UpdateItem(context.Background(), userID, product.ID, 2)
	require.ErrorAs(t, err, &notFoundErr)

	_, err = svc.AddItem(context.Background(), userID, product.ID, 1)
	require.NoError(t, err)
	_, err = svc.UpdateItem(context.Background(), userID, primitive.NewObjectID(), 2)
	require.ErrorAs(t, err, &notFoundErr)
}

func TestRemoveItem(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 10, 5)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), userID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestRemoveMissingLineLeavesCartUnmodified(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	product := seedProduct(t, st, 10, 5)
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	_, err = svc.RemoveItem(context.Background(), userID, primitive.NewObjectID())
	var notFoundErr *services.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	cart, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartTotalsRounding(t *testing.T) {
	st := store.NewMemoryStore()
	svc := services.NewCartService(st)
	first := seedProduct(t, st, 10.005, 10)
	second := &models.Product{
		Title: "Lamp", Image: "/images/lamp.jpg", Price: 5, Stock: 10, SKU: "LAMP-001",
	}
	require.NoError(t, st.Products.Insert(context.Background(), second))
	userID := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), userID, first.ID, 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), userID, second.ID, 1)
	require.NoError(t, err)

	// 10.005*2 + 5 = 25.01 after rounding to 2 decimals.
	assert.Equal(t, 25.01, cart.TotalPrice)
	assert.Equal(t, 3, cart.TotalQuantity)
}

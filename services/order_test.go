package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/events"
	"storefront/models"
	"storefront/services"
	"storefront/store"
)

func newOrderService(st *store.Store) *services.OrderService {
	return services.NewOrderService(st, events.NopPublisher{}, nil)
}

func floatPtr(v float64) *float64 { return &v }

func validOrderInput(product *models.Product, quantity int) services.CreateOrderInput {
	itemsPrice := product.Price * float64(quantity)
	return services.CreateOrderInput{
		OrderItems: []models.OrderItem{{
			ProductID: product.ID,
			Name:      product.Title,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  quantity,
		}},
		ShippingAddress: models.ShippingAddress{
			Address:    "12 Canal St",
			City:       "Utrecht",
			PostalCode: "3511",
			Country:    "NL",
		},
		PaymentMethod: "PayPal",
		ItemsPrice:    floatPtr(itemsPrice),
		TotalPrice:    floatPtr(itemsPrice),
	}
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)
	product := seedProduct(t, st, 30, 10)
	userID := primitive.NewObjectID()

	order, err := svc.Create(context.Background(), userID, validOrderInput(product, 4))
	require.NoError(t, err)
	assert.False(t, order.ID.IsZero())
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	assert.Equal(t, 120.0, order.ItemsPrice)
	assert.Equal(t, 0.0, order.TaxPrice)
	assert.Equal(t, 0.0, order.ShippingPrice)

	updated, err := st.Products.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Stock)
}

func TestCreateOrderRequiresUser(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)
	product := seedProduct(t, st, 30, 10)

	_, err := svc.Create(context.Background(), primitive.NilObjectID, validOrderInput(product, 1))
	var authErr *services.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestCreateOrderValidation(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)
	product := seedProduct(t, st, 30, 10)
	userID := primitive.NewObjectID()
	var validationErr *services.ValidationError

	in := validOrderInput(product, 1)
	in.OrderItems = nil
	_, err := svc.Create(context.Background(), userID, in)
	require.ErrorAs(t, err, &validationErr)

	in = validOrderInput(product, 1)
	in.ShippingAddress.Country = ""
	_, err = svc.Create(context.Background(), userID, in)
	require.ErrorAs(t, err, &validationErr)

	in = validOrderInput(product, 1)
	in.PaymentMethod = ""
	_, err = svc.Create(context.Background(), userID, in)
	require.ErrorAs(t, err, &validationErr)

	in = validOrderInput(product, 1)
	in.ItemsPrice = nil
	_, err = svc.Create(context.Background(), userID, in)
	require.ErrorAs(t, err, &validationErr)

	in = validOrderInput(product, 1)
	in.ItemsPrice = floatPtr(-1)
	_, err = svc.Create(context.Background(), userID, in)
	require.ErrorAs(t, err, &validationErr)

	// No order was persisted by any of the rejected payloads.
	orders, err := svc.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	// Stock untouched.
	p, err := st.Products.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestCreateOrderDefaultsTaxAndShipping(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)
	product := seedProduct(t, st, 30, 10)
	userID := primitive.NewObjectID()

	in := validOrderInput(product, 1)
	in.TaxPrice = floatPtr(-3)
	in.ShippingPrice = nil

	order, err := svc.Create(context.Background(), userID, in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.TaxPrice)
	assert.Equal(t, 0.0, order.ShippingPrice)
}

func TestCreateOrderSkipsMissingProduct(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)
	product := seedProduct(t, st, 30, 10)
	userID := primitive.NewObjectID()
	ghostID := primitive.NewObjectID()

	in := validOrderInput(product, 2)
	in.OrderItems = append(in.OrderItems, models.OrderItem{
		ProductID: ghostID,
		Name:      "Discontinued Chair",
		Image:     "/images/chair.jpg",
		Price:     12,
		Quantity:  1,
	})

	order, err := svc.Create(context.Background(), userID, in)
	require.NoError(t, err)

	// Both lines are frozen as submitted even though one product is gone.
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "Discontinued Chair", order.OrderItems[1].Name)

	// Stock is decremented only for the product that still exists.
	p, err := st.Products.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Stock)
}

func TestCreateOrderSkipsLineBeyondStock(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)
	product := seedProduct(t, st, 30, 3)
	userID := primitive.NewObjectID()

	// The conditional decrement refuses to take stock below zero; the
	// order itself still goes through.
	order, err := svc.Create(context.Background(), userID, validOrderInput(product, 5))
	require.NoError(t, err)
	assert.Len(t, order.OrderItems, 1)

	p, err := st.Products.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestMarkPaidOverwritesOnRepeat(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)
	product := seedProduct(t, st, 30, 10)
	userID := primitive.NewObjectID()

	order, err := svc.Create(context.Background(), userID, validOrderInput(product, 1))
	require.NoError(t, err)

	first, err := svc.MarkPaid(context.Background(), order.ID, models.PaymentResult{
		ID: "PAY-1", Status: "COMPLETED", EmailAddress: "buyer@example.com",
	})
	require.NoError(t, err)
	assert.True(t, first.IsPaid)
	require.NotNil(t, first.PaidAt)
	firstPaidAt := *first.PaidAt

	time.Sleep(5 * time.Millisecond)

	second, err := svc.MarkPaid(context.Background(), order.ID, models.PaymentResult{
		ID: "PAY-2", Status: "COMPLETED", EmailAddress: "buyer@example.com",
	})
	require.NoError(t, err)
	assert.True(t, second.IsPaid)
	assert.Equal(t, "PAY-2", second.PaymentResult.ID)
	assert.True(t, second.PaidAt.After(firstPaidAt))
}

func TestMarkPaidUnknownOrder(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)

	_, err := svc.MarkPaid(context.Background(), primitive.NewObjectID(), models.PaymentResult{})
	var notFoundErr *services.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestMarkDeliveredRequiresPayment(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)
	product := seedProduct(t, st, 30, 10)
	userID := primitive.NewObjectID()

	order, err := svc.Create(context.Background(), userID, validOrderInput(product, 1))
	require.NoError(t, err)

	_, err = svc.MarkDelivered(context.Background(), order.ID)
	var stateErr *services.StateError
	require.ErrorAs(t, err, &stateErr)

	fetched, err := svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsDelivered)

	_, err = svc.MarkPaid(context.Background(), order.ID, models.PaymentResult{ID: "PAY-1"})
	require.NoError(t, err)

	delivered, err := svc.MarkDelivered(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	require.NotNil(t, delivered.DeliveredAt)
}

func TestListByUserNewestFirst(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)
	userID := primitive.NewObjectID()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		order := &models.Order{
			UserID:        userID,
			OrderItems:    []models.OrderItem{{ProductID: primitive.NewObjectID(), Name: "x", Quantity: 1}},
			PaymentMethod: "PayPal",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, st.Orders.Insert(context.Background(), order))
	}

	orders, err := svc.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.True(t, orders[0].CreatedAt.After(orders[1].CreatedAt))
	assert.True(t, orders[1].CreatedAt.After(orders[2].CreatedAt))
}

func TestListByUserRequiresUser(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newOrderService(st)

	_, err := svc.ListByUser(context.Background(), primitive.NilObjectID)
	var authErr *services.AuthError
	require.ErrorAs(t, err, &authErr)
}

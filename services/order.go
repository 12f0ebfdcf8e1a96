package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/events"
	"storefront/models"
	"storefront/store"
)

// Mailer sends order notifications. Nil disables mail.
type Mailer interface {
	SendOrderConfirmation(toEmail string, order *models.Order) error
}

// OrderService turns submitted line items into immutable order records,
// decrements catalog stock after the order is durable, and drives the
// paid -> delivered transitions.
type OrderService struct {
	orders    store.OrderStore
	products  store.ProductStore
	users     store.UserStore
	publisher events.Publisher
	mailer    Mailer
}

// NewOrderService creates a new OrderService. publisher must be non-nil
// (use events.NopPublisher{} when no broker is configured); mailer may be
// nil.
func NewOrderService(s *store.Store, publisher events.Publisher, mailer Mailer) *OrderService {
	return &OrderService{
		orders:    s.Orders,
		products:  s.Products,
		users:     s.Users,
		publisher: publisher,
		mailer:    mailer,
	}
}

// CreateOrderInput carries the client-submitted checkout payload. Pointer
// price fields distinguish absent from zero.
type CreateOrderInput struct {
	OrderItems      []models.OrderItem
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	ItemsPrice      *float64
	TaxPrice        *float64
	ShippingPrice   *float64
	TotalPrice      *float64
}

// Create validates the payload, persists the order, and then decrements
// stock per line. The decrement loop runs after the order is durable and
// is deliberately not transactional: a line whose product is gone, or
// whose stock no longer covers the quantity, is skipped without failing
// the order. itemsPrice and totalPrice are stored as submitted, they are
// not recomputed from the lines.
func (s *OrderService) Create(ctx context.Context, userID primitive.ObjectID, in CreateOrderInput) (*models.Order, error) {
	if userID.IsZero() {
		return nil, &AuthError{Message: "Not authorized, no user ID provided"}
	}
	if len(in.OrderItems) == 0 {
		return nil, &ValidationError{Message: "No order items"}
	}
	addr := in.ShippingAddress
	if addr.Address == "" || addr.City == "" || addr.PostalCode == "" || addr.Country == "" ||
		in.PaymentMethod == "" || in.ItemsPrice == nil || in.TotalPrice == nil {
		return nil, &ValidationError{Message: "Missing required order information (address, payment method, prices)"}
	}
	if *in.ItemsPrice < 0 || *in.TotalPrice < 0 {
		return nil, &ValidationError{Message: "Prices cannot be negative."}
	}
	for _, item := range in.OrderItems {
		if item.ProductID.IsZero() || item.Quantity < 1 || item.Price < 0 {
			return nil, &ValidationError{Message: "Invalid order item"}
		}
	}

	taxPrice := 0.0
	if in.TaxPrice != nil && *in.TaxPrice > 0 {
		taxPrice = *in.TaxPrice
	}
	shippingPrice := 0.0
	if in.ShippingPrice != nil && *in.ShippingPrice > 0 {
		shippingPrice = *in.ShippingPrice
	}

	order := &models.Order{
		UserID:          userID,
		OrderItems:      append([]models.OrderItem(nil), in.OrderItems...),
		ShippingAddress: addr,
		PaymentMethod:   in.PaymentMethod,
		ItemsPrice:      *in.ItemsPrice,
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      *in.TotalPrice,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.OrderItems {
		// An unmatched decrement (product gone, or stock already below the
		// line quantity) is skipped; the order stands either way.
		if _, err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("stock decrement failed for product %s: %v", item.ProductID.Hex(), err)
		}
	}

	s.notifyCreated(ctx, order)
	return order, nil
}

func (s *OrderService) notifyCreated(ctx context.Context, order *models.Order) {
	if err := s.publisher.PublishOrderEvent(ctx, events.OrderCreated, order); err != nil {
		log.Printf("failed to publish %s for order %s: %v", events.OrderCreated, order.ID.Hex(), err)
	}
	if s.mailer == nil {
		return
	}
	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		log.Printf("order confirmation skipped, user %s lookup failed: %v", order.UserID.Hex(), err)
		return
	}
	go func(email string, order models.Order) {
		if err := s.mailer.SendOrderConfirmation(email, &order); err != nil {
			log.Printf("failed to send order confirmation to %s: %v", email, err)
		}
	}(user.Email, *order)
}

// Get returns one order by id.
func (s *OrderService) Get(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Order not found"}
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	if userID.IsZero() {
		return nil, &AuthError{Message: "Not authorized, no user ID provided"}
	}
	return s.orders.ListByUser(ctx, userID)
}

// MarkPaid flags the order paid and stores the provider's payment result
// verbatim. Calling it again simply overwrites paidAt and the result.
func (s *OrderService) MarkPaid(ctx context.Context, orderID primitive.ObjectID, result models.PaymentResult) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Order not found"}
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = &result

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.publisher.PublishOrderEvent(ctx, events.OrderPaid, order); err != nil {
		log.Printf("failed to publish %s for order %s: %v", events.OrderPaid, order.ID.Hex(), err)
	}
	return order, nil
}

// MarkDelivered flags a paid order delivered. Delivering an unpaid order
// is the one illegal transition in the model.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Order not found"}
	}
	if err != nil {
		return nil, err
	}
	if !order.IsPaid {
		return nil, &StateError{Message: "Order is not paid yet, cannot mark as delivered."}
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.publisher.PublishOrderEvent(ctx, events.OrderDelivered, order); err != nil {
		log.Printf("failed to publish %s for order %s: %v", events.OrderDelivered, order.ID.Hex(), err)
	}
	return order, nil
}

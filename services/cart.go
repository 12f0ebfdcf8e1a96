package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
	"storefront/store"
)

// CartService keeps per-user carts consistent with catalog stock and
// computes the derived totals on every read and write.
type CartService struct {
	products store.ProductStore
	carts    store.CartStore
}

// NewCartService creates a new CartService.
func NewCartService(s *store.Store) *CartService {
	return &CartService{
		products: s.Products,
		carts:    s.Carts,
	}
}

// CartView is a cart together with its freshly computed totals.
type CartView struct {
	ID            primitive.ObjectID `json:"id,omitempty"`
	UserID        primitive.ObjectID `json:"userId"`
	Items         []models.CartItem  `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	TotalPrice    float64            `json:"totalPrice"`
}

func cartView(cart *models.Cart) *CartView {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return &CartView{
		ID:            cart.ID,
		UserID:        cart.UserID,
		Items:         items,
		TotalQuantity: cart.TotalQuantity(),
		TotalPrice:    cart.TotalPrice(),
	}
}

// Get returns the user's cart with recomputed totals. A user without a
// persisted cart gets a synthetic empty one; nothing is written.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*CartView, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return cartView(&models.Cart{UserID: userID, Items: []models.CartItem{}}), nil
	}
	if err != nil {
		return nil, err
	}
	return cartView(cart), nil
}

// AddItem puts quantity units of a product into the user's cart. A new
// line snapshots the product's current name, image and price. An existing
// line has the quantity added and then capped at the product's current
// stock instead of failing.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*CartView, error) {
	if productID.IsZero() {
		return nil, &ValidationError{Message: "Product ID is required."}
	}
	if quantity < 1 {
		return nil, &ValidationError{Message: "Quantity must be a positive number."}
	}

	product, err := s.products.Get(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Product not found"}
	}
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, &StockError{Message: "Not enough product in stock"}
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	} else if err != nil {
		return nil, err
	}

	existing := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			existing = i
			break
		}
	}

	if existing > -1 {
		cart.Items[existing].Quantity += quantity
		if cart.Items[existing].Quantity > product.Stock {
			// Cap at stock level when over-added.
			cart.Items[existing].Quantity = product.Stock
		}
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Name:      product.Title,
			Image:     product.Image,
			Price:     product.Price, // price at time of adding
			Quantity:  quantity,
		})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cartView(cart), nil
}

// UpdateItem sets a line's quantity exactly; unlike AddItem it never
// clamps, an over-stock quantity is rejected.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, &ValidationError{Message: "Quantity must be a positive number."}
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Cart not found"}
	}
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, &NotFoundError{Message: "Item not found in cart"}
	}

	product, err := s.products.Get(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Product not found"}
	}
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, &StockError{Message: "Not enough product in stock for desired quantity"}
	}

	cart.Items[index].Quantity = quantity
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cartView(cart), nil
}

// RemoveItem deletes a line from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*CartView, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Cart not found"}
	}
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(cart.Items) {
		return nil, &NotFoundError{Message: "Item not found in cart"}
	}
	cart.Items = kept

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cartView(cart), nil
}

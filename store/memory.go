package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
)

// NewMemoryStore returns a map-backed Store with the same semantics as the
// Mongo one. Used by tests and local experiments.
func NewMemoryStore() *Store {
	return &Store{
		Products:  &memoryProductStore{products: map[primitive.ObjectID]models.Product{}},
		Carts:     &memoryCartStore{carts: map[primitive.ObjectID]models.Cart{}},
		Wishlists: &memoryWishlistStore{wishlists: map[primitive.ObjectID]models.Wishlist{}},
		Orders:    &memoryOrderStore{orders: map[primitive.ObjectID]models.Order{}},
		Users:     &memoryUserStore{users: map[primitive.ObjectID]models.User{}},
	}
}

type memoryProductStore struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
}

func copyProduct(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	return p
}

func (s *memoryProductStore) List(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, copyProduct(p))
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (s *memoryProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = copyProduct(p)
	return &p, nil
}

func (s *memoryProductStore) Insert(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	s.products[product.ID] = copyProduct(*product)
	return nil
}

func (s *memoryProductStore) Update(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return ErrNotFound
	}
	product.UpdatedAt = time.Now()
	s.products[product.ID] = copyProduct(*product)
	return nil
}

func (s *memoryProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *memoryProductStore) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	s.products[id] = p
	return true, nil
}

type memoryCartStore struct {
	mu    sync.RWMutex
	carts map[primitive.ObjectID]models.Cart
}

func copyCart(c models.Cart) models.Cart {
	c.Items = append([]models.CartItem(nil), c.Items...)
	return c
}

func (s *memoryCartStore) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.carts {
		if c.UserID == userID {
			c = copyCart(c)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryCartStore) Save(ctx context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	cart.UpdatedAt = now
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
		cart.CreatedAt = now
	}
	s.carts[cart.ID] = copyCart(*cart)
	return nil
}

type memoryWishlistStore struct {
	mu        sync.RWMutex
	wishlists map[primitive.ObjectID]models.Wishlist
}

func copyWishlist(w models.Wishlist) models.Wishlist {
	w.Items = append([]models.WishlistItem(nil), w.Items...)
	return w
}

func (s *memoryWishlistStore) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.wishlists {
		if w.UserID == userID {
			w = copyWishlist(w)
			return &w, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryWishlistStore) Save(ctx context.Context, wishlist *models.Wishlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	wishlist.UpdatedAt = now
	if wishlist.ID.IsZero() {
		wishlist.ID = primitive.NewObjectID()
		wishlist.CreatedAt = now
	}
	s.wishlists[wishlist.ID] = copyWishlist(*wishlist)
	return nil
}

type memoryOrderStore struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]models.Order
}

func copyOrder(o models.Order) models.Order {
	o.OrderItems = append([]models.OrderItem(nil), o.OrderItems...)
	if o.PaymentResult != nil {
		pr := *o.PaymentResult
		o.PaymentResult = &pr
	}
	return o
}

func (s *memoryOrderStore) Insert(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	s.orders[order.ID] = copyOrder(*order)
	return nil
}

func (s *memoryOrderStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o = copyOrder(o)
	return &o, nil
}

func (s *memoryOrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, copyOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *memoryOrderStore) Save(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; !ok {
		return ErrNotFound
	}
	order.UpdatedAt = time.Now()
	s.orders[order.ID] = copyOrder(*order)
	return nil
}

type memoryUserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func (s *memoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memoryUserStore) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

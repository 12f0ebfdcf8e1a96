package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
)

// ErrNotFound is returned by a store when the requested document does not
// exist. Services translate it into their own error taxonomy.
var ErrNotFound = errors.New("document not found")

// ProductStore gives access to the catalog collection.
type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DecrementStock atomically subtracts quantity from a product's stock,
	// but only when the product exists and has at least that much stock.
	// It reports whether a document was updated.
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)
}

// CartStore gives access to per-user carts.
type CartStore interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// Save inserts the cart when it has no ID yet, otherwise replaces it.
	Save(ctx context.Context, cart *models.Cart) error
}

// WishlistStore gives access to per-user wishlists.
type WishlistStore interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error)
	Save(ctx context.Context, wishlist *models.Wishlist) error
}

// OrderStore gives access to the orders collection.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// ListByUser returns the user's orders newest-first.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	Save(ctx context.Context, order *models.Order) error
}

// UserStore gives access to accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

// Store bundles the five collections behind one handle.
type Store struct {
	Products  ProductStore
	Carts     CartStore
	Wishlists WishlistStore
	Orders    OrderStore
	Users     UserStore
}

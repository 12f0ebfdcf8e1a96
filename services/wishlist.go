package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
	"storefront/store"
)

// WishlistService manages per-user saved-product lists. Unlike the cart,
// wishlist reads re-resolve every entry against the live catalog, so the
// displayed price follows the product.
type WishlistService struct {
	products  store.ProductStore
	wishlists store.WishlistStore
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(s *store.Store) *WishlistService {
	return &WishlistService{
		products:  s.Products,
		wishlists: s.Wishlists,
	}
}

// WishlistView is the live-joined read form of a wishlist.
type WishlistView struct {
	ID     primitive.ObjectID     `json:"id,omitempty"`
	UserID primitive.ObjectID     `json:"userId"`
	Items  []models.WishlistEntry `json:"items"`
}

// view joins each stored item with the current product fields. Entries
// whose product no longer exists are left out of the view; they stay in
// the stored document.
func (s *WishlistService) view(ctx context.Context, wishlist *models.Wishlist) (*WishlistView, error) {
	entries := []models.WishlistEntry{}
	for _, item := range wishlist.Items {
		product, err := s.products.Get(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.WishlistEntry{
			ProductID: product.ID,
			Name:      product.Title,
			Image:     product.Image,
			Price:     product.Price,
			Category:  product.Category,
			AddedAt:   item.AddedAt,
		})
	}
	return &WishlistView{
		ID:     wishlist.ID,
		UserID: wishlist.UserID,
		Items:  entries,
	}, nil
}

// Get returns the user's wishlist joined with live catalog data. A user
// without a persisted wishlist gets an empty view; nothing is written.
func (s *WishlistService) Get(ctx context.Context, userID primitive.ObjectID) (*WishlistView, error) {
	wishlist, err := s.wishlists.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &WishlistView{UserID: userID, Items: []models.WishlistEntry{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.view(ctx, wishlist)
}

// AddItem appends a product reference to the user's wishlist. A product
// may appear at most once per user; the check happens here, not in the
// storage layer.
func (s *WishlistService) AddItem(ctx context.Context, userID, productID primitive.ObjectID) (*WishlistView, error) {
	if productID.IsZero() {
		return nil, &ValidationError{Message: "Product ID is required."}
	}

	product, err := s.products.Get(ctx, productID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Product not found"}
	}
	if err != nil {
		return nil, err
	}

	wishlist, err := s.wishlists.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		wishlist = &models.Wishlist{UserID: userID, Items: []models.WishlistItem{}}
	} else if err != nil {
		return nil, err
	}

	for _, item := range wishlist.Items {
		if item.ProductID == productID {
			return nil, &DuplicateError{Message: "Item already in wishlist"}
		}
	}

	wishlist.Items = append(wishlist.Items, models.WishlistItem{
		ProductID: productID,
		Name:      product.Title,
		Image:     product.Image,
		Price:     product.Price,
		AddedAt:   time.Now(),
	})

	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return s.view(ctx, wishlist)
}

// RemoveItem deletes a product reference from the user's wishlist.
func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*WishlistView, error) {
	wishlist, err := s.wishlists.GetByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Wishlist not found"}
	}
	if err != nil {
		return nil, err
	}

	kept := wishlist.Items[:0]
	for _, item := range wishlist.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(wishlist.Items) {
		return nil, &NotFoundError{Message: "Item not found in wishlist"}
	}
	wishlist.Items = kept

	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return s.view(ctx, wishlist)
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem is a saved product reference. The denormalized fields are
// captured at insertion for reference; reads re-resolve against the live
// catalog (see WishlistEntry).
type WishlistItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	AddedAt   time.Time          `bson:"added_at" json:"addedAt"`
}

// Wishlist represents a user's saved-for-later list, one per user.
type Wishlist struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Items     []WishlistItem     `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// WishlistEntry is the read view of a wishlist item, joined with the
// current product fields rather than the stored snapshot.
type WishlistEntry struct {
	ProductID primitive.ObjectID `json:"productId"`
	Name      string             `json:"name"`
	Image     string             `json:"image"`
	Price     float64            `json:"price"`
	Category  string             `json:"category"`
	AddedAt   time.Time          `json:"addedAt"`
}

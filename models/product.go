package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents an item in the catalog
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Image       string             `bson:"image" json:"image"`
	Images      []string           `bson:"images" json:"images"`
	ProductType string             `bson:"product_type" json:"productType"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Brand       string             `bson:"brand" json:"brand"`
	Category    string             `bson:"category" json:"category"`
	Rating      float64            `bson:"rating" json:"rating"`
	NumReviews  int                `bson:"num_reviews" json:"numReviews"`
	Stock       int                `bson:"stock" json:"stock"`
	SKU         string             `bson:"sku" json:"sku"`
	Dimensions  string             `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Weight      string             `bson:"weight,omitempty" json:"weight,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
	"storefront/store"
)

// ProductService handles catalog reads and admin mutations.
type ProductService struct {
	products store.ProductStore
}

// NewProductService creates a new ProductService.
func NewProductService(s *store.Store) *ProductService {
	return &ProductService{products: s.Products}
}

// List returns the whole catalog.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Product not found"}
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Create inserts a product, filling missing fields with sample values so
// an admin can flesh the record out afterwards.
func (s *ProductService) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	if product.Price < 0 {
		return nil, &ValidationError{Message: "Price cannot be negative"}
	}
	if product.Stock < 0 {
		return nil, &ValidationError{Message: "Stock cannot be negative"}
	}
	if product.Rating < 0 || product.Rating > 5 {
		return nil, &ValidationError{Message: "Rating must be between 0 and 5"}
	}

	if product.Title == "" {
		product.Title = "Sample Product"
	}
	if product.Image == "" {
		product.Image = "/images/sample.jpg"
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Brand == "" {
		product.Brand = "Sample Brand"
	}
	if product.Category == "" {
		product.Category = "Sample Category"
	}
	if product.ProductType == "" {
		product.ProductType = "Sample Type"
	}
	if product.Description == "" {
		product.Description = "Sample description"
	}
	if product.SKU == "" {
		product.SKU = fmt.Sprintf("SAMPLE-%s", uuid.NewString())
	}
	product.NumReviews = 0

	if err := s.products.Insert(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProductInput lists the updatable fields; nil means keep current.
type UpdateProductInput struct {
	Title       *string   `json:"title"`
	Image       *string   `json:"image"`
	Images      *[]string `json:"images"`
	ProductType *string   `json:"productType"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Brand       *string   `json:"brand"`
	Category    *string   `json:"category"`
	Stock       *int      `json:"stock"`
	SKU         *string   `json:"sku"`
	Dimensions  *string   `json:"dimensions"`
	Weight      *string   `json:"weight"`
}

// Update merges the provided fields into the product.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, in UpdateProductInput) (*models.Product, error) {
	product, err := s.products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Product not found"}
	}
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.Images != nil {
		product.Images = *in.Images
	}
	if in.ProductType != nil {
		product.ProductType = *in.ProductType
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, &ValidationError{Message: "Price cannot be negative"}
		}
		product.Price = *in.Price
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, &ValidationError{Message: "Stock cannot be negative"}
		}
		product.Stock = *in.Stock
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Dimensions != nil {
		product.Dimensions = *in.Dimensions
	}
	if in.Weight != nil {
		product.Weight = *in.Weight
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Message: "Product not found"}
		}
		return nil, err
	}
	return product, nil
}

// Delete removes a product from the catalog. Existing cart and order lines
// that reference it keep their snapshots.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Message: "Product not found"}
	}
	return err
}

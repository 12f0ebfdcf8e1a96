package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/services"
)

// CartController handles cart-related requests
type CartController struct {
	Service *services.CartService
}

// NewCartController creates a new CartController
func NewCartController(service *services.CartService) *CartController {
	return &CartController{Service: service}
}

// GetCart retrieves the user's cart with freshly computed totals
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r, "")
	if userID.IsZero() {
		writeErrorMessage(w, http.StatusBadRequest, "User ID is required to fetch cart.")
		return
	}

	cart, err := cc.Service.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddToCart adds a product to the user's cart or bumps an existing line
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    string `json:"userId"`
		ProductID string `json:"productId"`
		Quantity  *int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := resolveUserID(r, req.UserID)
	if userID.IsZero() {
		writeErrorMessage(w, http.StatusBadRequest, "User ID is required.")
		return
	}
	if req.ProductID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "Product ID is required.")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := cc.Service.AddItem(r.Context(), userID, productID, quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateCartItem replaces a line's quantity
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req struct {
		UserID   string `json:"userId"`
		Quantity *int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := resolveUserID(r, req.UserID)
	if userID.IsZero() {
		writeErrorMessage(w, http.StatusBadRequest, "User ID is required.")
		return
	}
	if req.Quantity == nil {
		writeErrorMessage(w, http.StatusBadRequest, "Quantity must be a positive number.")
		return
	}

	cart, err := cc.Service.UpdateItem(r.Context(), userID, productID, *req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveCartItem deletes a line from the user's cart
func (cc *CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["productId"])
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	userID := resolveUserID(r, "")
	if userID.IsZero() {
		writeErrorMessage(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	cart, err := cc.Service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

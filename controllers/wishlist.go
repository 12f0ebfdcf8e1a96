package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/services"
)

// WishlistController handles wishlist-related requests
type WishlistController struct {
	Service *services.WishlistService
}

// NewWishlistController creates a new WishlistController
func NewWishlistController(service *services.WishlistService) *WishlistController {
	return &WishlistController{Service: service}
}

// GetWishlist retrieves the user's wishlist joined with live product data
func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r, "")
	if userID.IsZero() {
		writeErrorMessage(w, http.StatusBadRequest, "User ID is required to fetch wishlist.")
		return
	}

	wishlist, err := wc.Service.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

// AddToWishlist appends a product reference to the user's wishlist
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    string `json:"userId"`
		ProductID string `json:"productId"`
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

	wishlist, err := wc.Service.AddItem(r.Context(), userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wishlist)
}

// RemoveFromWishlist deletes a product reference from the user's wishlist
func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
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

	wishlist, err := wc.Service.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

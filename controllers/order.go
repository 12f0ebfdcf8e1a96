package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
)

// OrderController handles order-related requests
type OrderController struct {
	Service *services.OrderService
}

// NewOrderController creates a new OrderController
func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

// CreateOrder persists a checkout snapshot and decrements catalog stock
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID          string                 `json:"userId"`
		OrderItems      []models.OrderItem     `json:"orderItems"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod"`
		ItemsPrice      *float64               `json:"itemsPrice"`
		TaxPrice        *float64               `json:"taxPrice"`
		ShippingPrice   *float64               `json:"shippingPrice"`
		TotalPrice      *float64               `json:"totalPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := resolveUserID(r, req.UserID)

	order, err := oc.Service.Create(r.Context(), userID, services.CreateOrderInput{
		OrderItems:      req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
	})
	middleware.RecordOrderOperation("create", err == nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// GetMyOrders lists the acting user's orders, newest first
func (oc *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r, "")

	orders, err := oc.Service.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrderByID retrieves one order
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := oc.Service.Get(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateOrderToPaid marks an order paid, storing the provider's payment
// result as submitted
func (oc *OrderController) UpdateOrderToPaid(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var result models.PaymentResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := oc.Service.MarkPaid(r.Context(), orderID, result)
	middleware.RecordOrderOperation("pay", err == nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateOrderToDelivered marks a paid order delivered
func (oc *OrderController) UpdateOrderToDelivered(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := oc.Service.MarkDelivered(r.Context(), orderID)
	middleware.RecordOrderOperation("deliver", err == nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

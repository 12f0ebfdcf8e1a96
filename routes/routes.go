// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/controllers"
	"storefront/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	wishlistController *controllers.WishlistController,
	orderController *controllers.OrderController,
) {
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.OptionalAuthMiddleware)
	api.Use(middleware.PrometheusMiddleware)

	// User routes
	api.HandleFunc("/users/register", userController.Register).Methods("POST")
	api.HandleFunc("/users/login", userController.Login).Methods("POST")

	profile := api.PathPrefix("/users/profile").Subrouter()
	profile.Use(middleware.AuthMiddleware)
	profile.HandleFunc("", userController.GetProfile).Methods("GET")

	// Product routes
	api.HandleFunc("/products", productController.GetProducts).Methods("GET")
	api.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Admin-gated product mutations
	admin := api.PathPrefix("/products").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/{id}", productController.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/{id}", productController.DeleteProduct).Methods("DELETE")

	// Cart routes
	api.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	api.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	api.HandleFunc("/cart/item/{productId}", cartController.UpdateCartItem).Methods("PUT")
	api.HandleFunc("/cart/item/{productId}", cartController.RemoveCartItem).Methods("DELETE")

	// Wishlist routes
	api.HandleFunc("/wishlist", wishlistController.GetWishlist).Methods("GET")
	api.HandleFunc("/wishlist", wishlistController.AddToWishlist).Methods("POST")
	api.HandleFunc("/wishlist/item/{productId}", wishlistController.RemoveFromWishlist).Methods("DELETE")

	// Order routes
	api.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")
	api.HandleFunc("/orders/myorders", orderController.GetMyOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", orderController.GetOrderByID).Methods("GET")
	api.HandleFunc("/orders/{id}/pay", orderController.UpdateOrderToPaid).Methods("PUT")
	api.HandleFunc("/orders/{id}/deliver", orderController.UpdateOrderToDelivered).Methods("PUT")
}

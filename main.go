// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"storefront/config"
	"storefront/controllers"
	"storefront/events"
	"storefront/routes"
	"storefront/services"
	"storefront/store"
	"storefront/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := config.Load()

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)

	// Connect to MongoDB
	client := utils.ConnectDB(cfg.MongoURI)
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	st := store.NewMongoStore(client, cfg.MongoDB)

	// Order events go to RabbitMQ when a broker is configured
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		rmq, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.OrderExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()
		publisher = rmq
		log.Println("Connected to RabbitMQ")
	}

	// Order confirmation mail goes through SendGrid when a key is configured
	var mailer services.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = utils.NewEmailService(cfg.SendGridAPIKey, cfg.EmailSender)
	}

	// Initialize services
	productService := services.NewProductService(st)
	cartService := services.NewCartService(st)
	wishlistService := services.NewWishlistService(st)
	orderService := services.NewOrderService(st, publisher, mailer)

	// Initialize controllers
	userController := controllers.NewUserController(st.Users)
	productController := controllers.NewProductController(productService)
	cartController := controllers.NewCartController(cartService)
	wishlistController := controllers.NewWishlistController(wishlistService)
	orderController := controllers.NewOrderController(orderService)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, productController, cartController, wishlistController, orderController)

	// Start the server
	fmt.Printf("Server is running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}

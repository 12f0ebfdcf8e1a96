package config

import "os"

// Config holds the runtime settings, all sourced from the environment.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	SendGridAPIKey string
	EmailSender    string
	RabbitMQURL    string
	OrderExchange  string
}

// Load reads the environment with sane local defaults. An empty
// RabbitMQURL or SendGridAPIKey disables the corresponding integration.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8000"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "storefront"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@storefront.local"),
		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		OrderExchange:  getEnv("ORDER_EXCHANGE", "orders_exchange"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "rentloop-backend/internal/api/http"
	"rentloop-backend/internal/config"
	"rentloop-backend/internal/logger"
	"rentloop-backend/internal/payment"
	"rentloop-backend/internal/repository/postgres"
	"rentloop-backend/internal/security"
	"rentloop-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentloop Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Payment Provider
	stripeClient := payment.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	bookingSvc := service.NewBookingService(
		store.Bookings,
		store.Items,
		store.Users,
		store.Notifications,
		stripeClient,
		emailSvc,
	)
	paymentSvc := service.NewPaymentService(
		store.Bookings,
		store.Items,
		store.Users,
		store.Notifications,
		bookingSvc,
		emailSvc,
		stripeClient,
		cfg.Stripe,
	)
	itemSvc := service.NewItemService(store.Items, store.Users, store.Notifications, emailSvc)
	reviewSvc := service.NewReviewService(store.Reviews, store.Bookings)
	noteSvc := service.NewNotificationService(store.Notifications)

	// Set up HTTP server
	router := httpapi.NewRouter(
		tokenManager,
		stripeClient,
		bookingSvc,
		paymentSvc,
		itemSvc,
		reviewSvc,
		noteSvc,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

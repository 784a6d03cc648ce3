package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/toshniwal-akshay/ecommerce-project/config"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/controller"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/repository"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/service"
	"github.com/toshniwal-akshay/ecommerce-project/internal/db"
	"github.com/toshniwal-akshay/ecommerce-project/internal/middleware"
	"github.com/toshniwal-akshay/ecommerce-project/internal/router"
	"github.com/toshniwal-akshay/ecommerce-project/internal/storage"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/logger"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/mailer"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Marketplace API Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs the token blacklist. The server still comes up
	// without it; logout then becomes best-effort.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	// Outgoing mail
	var mailClient mailer.Mailer
	if client, err := mailer.NewClient(mailer.Config{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		FromAddress: cfg.SMTP.FromAddress,
		FromName:    cfg.SMTP.FromName,
	}); err != nil {
		logger.Warn("Mailer disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		mailClient = client
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	vendorRepo := repository.NewVendorRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		db.GetDB(),
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	vendorService := service.NewVendorService(vendorRepo, categoryRepo, productRepo, mailClient)
	catalogService := service.NewCatalogService(categoryRepo, productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, db.GetDB(), cfg.Checkout.TaxRate)
	orderService := service.NewOrderService(orderRepo, cartRepo, vendorRepo, cartService, db.GetDB())
	paymentService := service.NewPaymentService(orderRepo, cartRepo, vendorRepo, mailClient, db.GetDB())

	// Initialize storage
	s3Storage := storage.NewS3Storage(cfg.S3)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.Secret)
	vendorController := controller.NewVendorController(vendorService)
	catalogController := controller.NewCatalogController(catalogService, vendorService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, cartService, authService, vendorService)
	paymentController := controller.NewPaymentController(paymentService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		vendorController,
		catalogController,
		cartController,
		orderController,
		paymentController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"travelex-backend/config"
	"travelex-backend/controllers"
	"travelex-backend/routes"
	"travelex-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Preference store: Redis when configured, in-memory otherwise
	var preferences services.PreferenceStore
	redisClient, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("❌ Redis connect failed: %v", err)
	}
	if redisClient != nil {
		preferences = services.NewRedisPreferenceStore(redisClient)
		log.Println("✅ Redis preference store enabled.")
	} else {
		preferences = services.NewMemoryPreferenceStore()
		log.Println("⚠️  REDIS_URL not set; currency preferences held in memory")
	}

	// Payment gateway: Stripe when a key is present
	var payments services.PaymentProvider = services.NoopPaymentProvider{}
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		payments = services.NewStripePaymentProvider(key)
		log.Println("✅ Stripe payment provider enabled.")
	} else {
		log.Println("⚠️  STRIPE_SECRET_KEY not set; bookings are stored without payment intents")
	}

	// Initialize services
	userService := services.NewUserService(db)
	destinationService := services.NewDestinationService(db)
	bookingService := services.NewBookingService(db)
	activityService := services.NewActivityLogService(db)
	reviewService := services.NewReviewService(db)
	analyticsService := services.NewAnalyticsService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(userService, activityService)
	userController := controllers.NewUserController(userService, activityService)
	destinationController := controllers.NewDestinationController(destinationService, activityService)
	bookingController := controllers.NewBookingController(bookingService, activityService, payments)
	reviewController := controllers.NewReviewController(reviewService)
	activityController := controllers.NewActivityController(activityService)
	analyticsController := controllers.NewAnalyticsController(analyticsService)
	currencyController := controllers.NewCurrencyController(preferences)

	// Build router
	router := routes.SetupRouter(
		authController,
		userController,
		destinationController,
		bookingController,
		reviewController,
		activityController,
		analyticsController,
		currencyController,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

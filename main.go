// File: festa/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festa/config"
	"festa/cron"
	"festa/database"
	bookingRepoPkg "festa/database/repository/booking"
	providerRepoPkg "festa/database/repository/provider"
	slotRepoPkg "festa/database/repository/slot"
	userRepoPkg "festa/database/repository/user"
	"festa/database/seed"
	"festa/handlers"
	"festa/middleware"
	"festa/routes"
	"festa/services/auth"
	"festa/services/availability"
	"festa/services/booking"
	"festa/services/catalog"
	"festa/services/notification"
	"festa/services/search"
	"festa/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitEventsClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	slotRepo := slotRepoPkg.NewMongoSlotRepo()

	// services.
	authService := &auth.DefaultAuthService{
		Repo:              userRepo,
		Sessions:          auth.NewRedisSessionStore(utils.GetSessionCacheClient()),
		MinPasswordLength: config.AppConfig.MinPasswordLength,
		SessionTTL:        time.Duration(config.AppConfig.SessionTTLHours) * time.Hour,
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:     providerRepo,
		Bookings: bookingRepo,
	}

	ledger := &availability.DefaultLedger{Repo: slotRepo}

	searchService := &search.DefaultSearchService{
		Repo:   providerRepo,
		Ledger: ledger,
	}

	publisher := notification.NewRedisPublisher(utils.GetEventsClient())
	scheduler := cron.NewCompletionScheduler()

	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		ProviderRepo: providerRepo,
		Ledger:       ledger,
		Publisher:    publisher,
		Scheduler:    scheduler,
	}

	cron.InitCompletionWorker(bookingService)

	if !config.IsProduction() {
		seed.Catalog(userRepo, providerRepo)
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		AuthService: authService,
		Auth:        handlers.NewAuthHandler(authService),
		Provider:    handlers.NewProviderHandler(catalogService, ledger),
		Search:      handlers.NewSearchHandler(searchService),
		Booking:     handlers.NewBookingHandler(bookingService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

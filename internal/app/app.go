package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/xnftpulse/config"
	"github.com/guttosm/xnftpulse/internal/api"
	"github.com/guttosm/xnftpulse/internal/middleware"
	"github.com/guttosm/xnftpulse/internal/publisher"
	"github.com/guttosm/xnftpulse/internal/service"
	"github.com/guttosm/xnftpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (AcceptancesRepository).
//   - Creates the service and HTTP handler layers.
//   - Configures the Gin router with all API routes and the rate limit.
//   - Registers health and readiness checks (Postgres, plus Kafka when enabled).
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Initialize repository layer (responsible for DB access)
	repo := storage.NewAcceptancesRepository(db)

	// Initialize service layer (business logic)
	svc := service.NewSalesService(repo)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	middleware.SetRateLimit(cfg.Server.RateLimit, time.Minute)
	router := api.NewRouter(handler)

	// Register health and readiness checks
	checks := []api.Check{{Name: "postgres", Fn: db.Ping}}
	if cfg.Kafka.Enabled {
		brokers := cfg.Kafka.Brokers
		checks = append(checks, api.Check{Name: "kafka", Fn: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return publisher.PingBrokers(ctx, brokers)
		}})
	}
	healthHandler := api.NewHealthHandler(checks...)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

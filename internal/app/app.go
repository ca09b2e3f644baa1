package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/openmrkt/nftpulse/config"
	"github.com/openmrkt/nftpulse/internal/aggregator"
	"github.com/openmrkt/nftpulse/internal/api"
	"github.com/openmrkt/nftpulse/internal/service"
	"github.com/openmrkt/nftpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns a fully
// configured Gin router, the aggregator (for the caller to schedule), a
// cleanup function for graceful shutdown, and any initialization error.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (StatsRepository).
//   - Creates the stat query service and the aggregation orchestrator.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (DB connection).
func InitializeApp() (*gin.Engine, *aggregator.Aggregator, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Initialize repository layer (responsible for DB access)
	repo := storage.NewStatsRepository(db)

	// Initialize service layer (read-side projections)
	svc := service.NewStatService(repo)

	// Initialize the aggregation orchestrator (write side, scheduled)
	agg := aggregator.New(repo, aggregator.WithMaxParallel(cfg.Stats.MaxParallel))

	// Initialize HTTP handler layer and router
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, agg, cleanup, nil
}

// NewAggregator wires an aggregation orchestrator on top of an existing DB
// connection. Used by the one-shot aggregate mode, which has no HTTP surface.
func NewAggregator(db *sql.DB, cfg config.Config) *aggregator.Aggregator {
	repo := storage.NewStatsRepository(db)
	return aggregator.New(repo, aggregator.WithMaxParallel(cfg.Stats.MaxParallel))
}

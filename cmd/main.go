package main

//
//  @title           nftpulse API
//  @version         1.0
//  @description     NFT collection statistics aggregation & query service.
//  @termsOfService  https://github.com/openmrkt/nftpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/openmrkt/nftpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        stat
//  @tag.description Endpoints for querying collection statistics
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openmrkt/nftpulse/config"
	_ "github.com/openmrkt/nftpulse/docs" // swagger docs
	"github.com/openmrkt/nftpulse/internal/aggregator"
	"github.com/openmrkt/nftpulse/internal/app"
	"github.com/openmrkt/nftpulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up
// resources when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (scheduler, DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the nftpulse application.
//
// Modes (selected via --mode flag):
//   - api:       Starts the REST API plus the scheduled stats aggregation job.
//   - aggregate: Runs a single aggregation pass over all collections and exits.
//
// Flags:
//   - --mode: Execution mode ("api" or "aggregate"). Default: "api".
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or aggregate")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "aggregate":
		// One-shot mode: recompute all collection stats once
		logger.L().Info().Msg("running one-shot stats aggregation")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		agg := app.NewAggregator(db, config.AppConfig)
		if err := agg.UpdateAllStats(ctx); err != nil {
			logger.L().Fatal().Err(err).Msg("aggregation failed")
		}
		logger.L().Info().Msg("aggregation completed successfully")

	case "api":
		// API mode: HTTP server plus the scheduled aggregation job
		logger.L().Info().Msg("starting API server")

		router, agg, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		scheduler := aggregator.NewScheduler(agg, config.AppConfig.Stats.Interval)
		if err := scheduler.Start(ctx); err != nil {
			logger.L().Fatal().Err(err).Msg("scheduler start error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, func() {
			scheduler.Stop()
			cleanup()
		})

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

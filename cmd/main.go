package main

//
//  @title           bhavpulse API
//  @version         1.0
//  @description     Daily bhavcopy archive merger and trailing-window gain analysis.
//  @termsOfService  https://github.com/guttosm/bhavpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/bhavpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        analysis
//  @tag.description Gain table, export and selection values
//
//  @tag.name        charts
//  @tag.description Bar and candlestick chart series
//
//  @tag.name        merge
//  @tag.description Archive upload, merge and combined table download
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

	"github.com/guttosm/bhavpulse/config"
	_ "github.com/guttosm/bhavpulse/docs" // swagger docs
	"github.com/guttosm/bhavpulse/internal/app"
	"github.com/guttosm/bhavpulse/internal/ingestion"
	"github.com/guttosm/bhavpulse/internal/logger"
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
		ReadTimeout:       2 * time.Minute, // archive uploads
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      6 * time.Minute, // outlives the merge request timeout
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

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., final state logging).
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

// runMerge executes one merge with cfg and reports the outcome.
// A run that finds no data is not a failure.
func runMerge(ctx context.Context, cfg config.Config) error {
	res, err := app.NewMergeService(cfg).Merge(ctx)
	if errors.Is(err, ingestion.ErrNoData) {
		logger.L().Warn().Str("dir", cfg.Paths.SourceDir).Msg(ingestion.ErrNoData.Error())
		return nil
	}
	if err != nil {
		return err
	}
	logger.L().Info().
		Int("archives", res.Archives).
		Int("files", res.Files).
		Int("rows", res.Rows).
		Msg("merged CSV saved at: " + res.Path)
	return nil
}

// main is the entry point of the bhavpulse application.
//
// Modes (selected via --mode flag):
//   - merge: Rebuilds the combined table from every archive in SOURCE_DIR and exits.
//   - api:   Starts the REST API for upload, merge, analysis and charts.
//
// Flags:
//   - --mode:     Execution mode ("merge" or "api"). Default: "merge".
//   - --dir:      Directory containing the archives. Defaults to SOURCE_DIR.
//   - --out:      Combined table path. Defaults to MERGED_FILE.
//   - --parallel: Archives processed concurrently (0=auto up to CPU, max 8). Defaults to MERGE_PARALLEL.
//   - --port:     Port for the API server. Defaults to SERVER_PORT.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "merge", "Mode: merge or api")
	dir := flag.String("dir", config.AppConfig.Paths.SourceDir, "Directory with the daily archives")
	out := flag.String("out", config.AppConfig.Paths.MergedFile, "Path of the combined CSV table")
	parallel := flag.Int("parallel", config.AppConfig.Merge.Parallel, "How many archives to process concurrently (0=auto up to CPU, max 8)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	config.AppConfig.Paths.SourceDir = *dir
	config.AppConfig.Paths.MergedFile = *out
	config.AppConfig.Merge.Parallel = max(*parallel, 0)

	switch *mode {
	case "merge":
		logger.L().Info().Str("dir", *dir).Str("out", *out).Msg("running merge")
		if err := runMerge(ctx, config.AppConfig); err != nil {
			logger.L().Fatal().Err(err).Msg("merge failed")
		}

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

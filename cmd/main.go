package main

//
//  @title           xnftpulse API
//  @version         1.0
//  @description     XRPL NFT sale reconstruction and query service.
//  @termsOfService  https://github.com/guttosm/xnftpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/xnftpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        sales
//  @tag.description Accepted offers (sales) per NFT
//
//  @tag.name        health
//  @tag.description Liveness and readiness checks

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/xnftpulse/config"
	_ "github.com/guttosm/xnftpulse/docs" // swagger docs
	"github.com/guttosm/xnftpulse/internal/app"
	"github.com/guttosm/xnftpulse/internal/ingestion"
	"github.com/guttosm/xnftpulse/internal/logger"
	"github.com/guttosm/xnftpulse/internal/reconcile"
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

// gracefulShutdown waits for SIGINT or SIGTERM, then drains the server for at
// most grace and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, grace time.Duration, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	if grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, grace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// parseIDs splits a comma separated --nft value, dropping blanks.
func parseIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// main is the entry point of the xnftpulse application.
//
// Modes (selected via --mode flag):
//   - ingest: Fetches nft_history for each NFT and persists the reconstructed sales.
//   - api:    Starts the REST API exposing sales and summaries.
//   - scan:   Reads a saved nft_history result from --file and prints one JSON event per line.
//
// Flags:
//   - --mode:     Execution mode ("ingest", "api" or "scan"). Default: "ingest".
//   - --nft:      Comma separated NFTokenIDs to ingest. Empty means the nftokens catalogue.
//   - --parallel: NFTs processed concurrently (0=auto, max 8).
//   - --force:    Re-ingest NFTs that already have an ingestion log entry.
//   - --isolate:  Skip malformed history entries instead of failing the NFT.
//   - --file:     nft_history JSON file for scan mode.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()
	defer logger.Close()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "ingest", "Mode: ingest, api or scan")
	nfts := flag.String("nft", "", "Comma separated NFTokenIDs (default: every row of nftokens)")
	parallel := flag.Int("parallel", 0, "How many NFTs to process concurrently (0=auto, max 8)")
	force := flag.Bool("force", false, "Re-ingest NFTs even if already ingested (deletes their stored sales)")
	isolate := flag.Bool("isolate", false, "Skip malformed history entries instead of failing the NFT")
	file := flag.String("file", "", "nft_history result file for scan mode")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "ingest":
		// Ingestion mode: fetch histories and persist sales
		logger.L().Info().Msg("running ingestion")
		opts := ingestion.Options{
			NFTIDs:   parseIDs(*nfts),
			Parallel: *parallel,
			Force:    *force,
			Isolate:  *isolate,
		}
		if err := app.RunIngestion(ctx, config.AppConfig, opts); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")
		stop() // the server handles its own signals

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(context.Background(), server, config.AppConfig.Server.ShutdownGrace, cleanup)

	case "scan":
		if *file == "" {
			logger.L().Fatal().Msg("scan mode requires --file")
		}
		var opts []reconcile.Option
		if *isolate {
			opts = append(opts, reconcile.WithIsolation())
		}
		res, err := ingestion.ScanFile(ctx, *file, os.Stdout, opts...)
		if err != nil {
			logger.L().Fatal().Err(err).Int("events", len(res.Events)).Msg("scan failed")
		}
		logger.L().Info().Int("events", len(res.Events)).Int("skipped", res.Skipped).Msg("scan completed")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

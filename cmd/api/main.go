// Command api is the RamadanKu API server. It serves prayer timings, zone
// resolution, and push subscription endpoints, and hosts the per-minute
// dispatch worker and maintenance tickers in the same process.
//
// Usage:
//
//	ramadanku-api
//	API_PORT=8080 ramadanku-api

// @title RamadanKu API
// @version 1.0.0
// @description Prayer timings, Ramadan status, and Web Push delivery for Malaysian JAKIM zones.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sienz16/ramadan-ku/internal/api"
	"github.com/Sienz16/ramadan-ku/internal/api/handler"
	"github.com/Sienz16/ramadan-ku/internal/cache"
	"github.com/Sienz16/ramadan-ku/internal/config"
	"github.com/Sienz16/ramadan-ku/internal/db"
	"github.com/Sienz16/ramadan-ku/internal/esolat"
	"github.com/Sienz16/ramadan-ku/internal/maintenance"
	"github.com/Sienz16/ramadan-ku/internal/push"

	_ "github.com/Sienz16/ramadan-ku/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Upstream timing authority client and subscription store
	esolatClient := esolat.NewClient(cfg.EsolatBaseURL, cfg.EsolatTimeout, cfg.EsolatRequestsPerMin, logger)
	store := push.NewStore(pool.Pool)

	// Web Push transport, if VAPID credentials are configured
	var sender *push.Sender
	if cfg.HasVAPID() {
		sender, err = push.NewSender(cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushTimeout, cfg.PushTTL)
		if err != nil {
			logger.Error("Failed to configure Web Push", "error", err)
			os.Exit(1)
		}
	}

	// Start dispatch worker (needs both the transport and the flag)
	if cfg.DispatchEnabled && sender != nil {
		dispatcher := push.NewDispatcher(store, esolatClient, sender, cfg.DispatchWorkers, logger)
		go dispatcher.Start(ctx, cfg.DispatchInterval)
	} else {
		logger.Info("Dispatch worker disabled",
			"dispatch_enabled", cfg.DispatchEnabled, "vapid_configured", sender != nil)
	}

	// Start maintenance tickers (delivery ledger pruning)
	maintCfg := maintenance.DefaultConfig()
	maintCfg.LedgerRetention = cfg.DeliveryLogRetention
	go maintenance.Start(ctx, store, maintCfg, logger)

	// Create router
	var transport handler.PushTransport
	if sender != nil {
		transport = sender
	}
	h := handler.New(pool.Pool, appCache, cfg, esolatClient, store, transport, logger)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting RamadanKu API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

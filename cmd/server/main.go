/*
main.go - Application entry point

PURPOSE:
  Starts the retroactive payroll HTTP server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, flags)
  2. Configure logging
  3. Create API handler with the record factory
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS (each overrides its environment variable):
  -port       PORT             HTTP server port (default: 8080)
  -max-rows   MAX_ROWS         Rows accepted per batch (default: 10000)
  -workers    WORKERS          Concurrent records per batch (default: CPUs)
  -cycle      CYCLE_DEFAULT    monthly | semi_monthly (default: monthly)
  -origins    ALLOWED_ORIGINS  Comma-separated CORS origins
  -log-level  LOG_LEVEL        debug | info | warn | error (default: info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  ./server -cycle=semi_monthly -port=3000
  MAX_ROWS=500 ./server

SEE ALSO:
  - config/config.go: Settings and defaults
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/warp/retro-payroll/api"
	"github.com/warp/retro-payroll/config"
	"github.com/warp/retro-payroll/factory"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.StandardLogger()
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	handler := api.NewHandler(factory.NewRecordFactory(cfg.MaxRows), cfg.DefaultCycle, cfg.Workers, logger)
	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		LogLevel:       slogLevel(cfg.LogLevel),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"port":     cfg.Port,
			"cycle":    cfg.DefaultCycle,
			"max_rows": cfg.MaxRows,
			"workers":  cfg.Workers,
		}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server stopped")
}

func slogLevel(l logrus.Level) slog.Level {
	switch {
	case l >= logrus.DebugLevel:
		return slog.LevelDebug
	case l == logrus.InfoLevel:
		return slog.LevelInfo
	case l == logrus.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

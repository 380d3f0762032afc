package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brightsmile-dental/booking-portal/internal/api/router"
	"github.com/brightsmile-dental/booking-portal/internal/booking"
	"github.com/brightsmile-dental/booking-portal/internal/clinicapi"
	"github.com/brightsmile-dental/booking-portal/internal/clinicdata"
	appconfig "github.com/brightsmile-dental/booking-portal/internal/config"
	"github.com/brightsmile-dental/booking-portal/internal/observability/metrics"
	"github.com/brightsmile-dental/booking-portal/internal/portal"
	"github.com/brightsmile-dental/booking-portal/pkg/logging"
)

func main() {
	// Load .env file if present, then configuration
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking portal",
		"env", cfg.Env,
		"port", cfg.Port,
		"mock_mode", cfg.UseMockData,
		"api_base_url", cfg.APIBaseURL,
	)

	// Wire the booking page controller
	bookingMetrics := metrics.NewBookingMetrics(nil)
	apiClient := clinicapi.New(cfg.APIBaseURL, cfg.UpstreamTimeout, logger.Component("clinicapi"))
	loader := clinicdata.NewLoader(apiClient, cfg.MockDataPath, cfg.UseMockData, bookingMetrics, logger.Component("loader"))
	submitter := booking.NewSubmitter(apiClient, cfg.UseMockData, bookingMetrics, logger.Component("submitter"))
	portalHandler := portal.NewHandler(loader, submitter, cfg.ClinicName, bookingMetrics, logger.Component("portal"))

	// Setup router
	r := router.New(&router.Config{
		Logger:         logger,
		PortalHandler:  portalHandler,
		MetricsHandler: promhttp.Handler(),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

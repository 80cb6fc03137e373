package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/store-api/internal/app/service"
	"github.com/mrops-br/store-api/internal/infrastructure/config"
	"github.com/mrops-br/store-api/internal/infrastructure/http"
	"github.com/mrops-br/store-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/store-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/store-api/internal/infrastructure/telemetry"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize OpenTelemetry
	var telem *telemetry.Telemetry
	if cfg.OTLP.ExporterDisabled {
		telem = telemetry.NewNoOpTelemetry(&cfg.OTLP)
	} else {
		var err error
		telem, err = telemetry.NewTelemetry(&cfg.OTLP)
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	// Get tracer, meter, and logger instances
	tracer := telem.TracerProvider.Tracer("store-api")
	meter := telem.MeterProvider.Meter("store-api")
	logger := telem.Logger

	logger.Info("Starting Store API")

	// Initialize repositories (dependency injection)
	productRepo := memory.NewProductRepository(tracer, logger)
	cartRepo := memory.NewCartRepository(tracer, logger)
	favoriteRepo := memory.NewFavoriteRepository(tracer, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, cartRepo, favoriteRepo, tracer, meter, logger)
	cartService := service.NewCartService(cartRepo, productRepo, tracer, meter, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo, tracer, meter, logger)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService, logger)

	// Initialize HTTP server
	server := http.NewServer(&cfg.Server, productHandler, cartHandler, favoriteHandler, logger, telem)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err.Error())
			cancel()
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err.Error())
	}

	logger.Info("Server stopped")
}

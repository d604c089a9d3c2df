// ShopKit Payments Service
//
// Integrates the Authorize.Net SIM hosted-checkout flow into the ShopKit
// order-completion pipeline. Wires up all dependencies and starts the
// HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shopkit/shopkit-payments/config"
	"github.com/shopkit/shopkit-payments/internal/adapters/gateway"
	"github.com/shopkit/shopkit-payments/internal/adapters/postgres"
	"github.com/shopkit/shopkit-payments/internal/adapters/settings"
	"github.com/shopkit/shopkit-payments/internal/api"
	"github.com/shopkit/shopkit-payments/internal/core/domain"
	"github.com/shopkit/shopkit-payments/internal/core/ports"
	"github.com/shopkit/shopkit-payments/internal/core/service"
	"github.com/shopkit/shopkit-payments/internal/shared/logger"
	"github.com/shopkit/shopkit-payments/internal/shared/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("starting shopkit-payments",
		zap.String("address", cfg.Server.Address),
		zap.String("bridge_url", cfg.Gateway.BridgeURL),
		zap.Bool("test_mode", cfg.Gateway.TestMode),
	)

	db, err := postgres.Open(cfg.Database.DSN())
	if err != nil {
		zlog.Fatal("database error", zap.Error(err))
	}

	// Wire up dependencies (manual dependency injection)
	//
	// Infrastructure layer
	registry := gateway.NewRegistry()
	registry.Register(domain.MethodCode, func() (ports.GatewayFacade, error) {
		return gateway.NewBridge(cfg.Gateway.BridgeURL, cfg.Gateway.BridgeAPIKey), nil
	})

	orderStore := postgres.NewOrderStore(db)
	transactionStore := postgres.NewTransactionStore(db)
	settingsProvider := settings.NewProvider(cfg.Gateway)
	m := metrics.New("shopkit_payments", nil)

	// Service layer
	checkout := service.NewCheckoutService(
		registry,
		orderStore,
		transactionStore,
		settingsProvider,
		cfg.Server.BaseURL,
		zlog,
		m,
	)

	// The activation-time precondition: refuse to start with a missing
	// or wrong-variant gateway instead of failing on the first payment.
	if err := checkout.ValidateGatewayAvailable(); err != nil {
		zlog.Fatal("gateway unavailable", zap.Error(err))
	}

	// API layer
	handler := api.NewHandler(checkout, orderStore, zlog)
	router := api.SetupRouter(handler, cfg.Server.GinMode, zlog, m)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("shutdown error", zap.Error(err))
	}
}

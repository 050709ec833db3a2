package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/malwarebo/balancegate/api"
	"github.com/malwarebo/balancegate/config"
	"github.com/malwarebo/balancegate/providers"
	"github.com/malwarebo/balancegate/services"
	"github.com/malwarebo/balancegate/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "balancegate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return utils.WrapError(err, "failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return utils.WrapError(err, "configuration validation failed")
	}

	logger, err := utils.NewLogger("balancegate", cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return utils.WrapError(err, "failed to initialize logger")
	}
	defer logger.Sync()

	ctx := context.Background()

	stripeClient := providers.NewStripeClient(providers.StripeClientConfig{
		APIKey:  cfg.Stripe.Secret,
		APIBase: cfg.Stripe.APIBase,
		Logger:  logger.Sugar(),
	})
	balanceService := services.CreateBalanceService(providers.NewStripeProvider(stripeClient))
	balanceHandler := api.CreateBalanceHandler(balanceService)

	router := api.NewRouter(balanceHandler, cfg.RateLimit, logger)

	server := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "starting HTTP server", map[string]interface{}{
			"port":        cfg.Server.Port,
			"environment": cfg.Environment,
			"rate_limit":  cfg.RateLimit.Enabled,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return utils.WrapError(err, "server failed")
		}
		return nil
	case sig := <-quit:
		logger.Info(ctx, "shutting down", map[string]interface{}{"signal": sig.String()})
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return utils.WrapError(err, "server forced to shutdown")
	}

	logger.Info(ctx, "server stopped")
	return nil
}

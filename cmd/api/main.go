package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mini-admin/internal/action"
	"mini-admin/internal/auth"
	"mini-admin/internal/cache"
	"mini-admin/internal/config"
	"mini-admin/internal/database"
	"mini-admin/internal/events"
	"mini-admin/internal/handler"
	"mini-admin/internal/password"
	"mini-admin/internal/repository"
	"mini-admin/internal/router"
	"mini-admin/internal/service"
	"mini-admin/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, cfg.App.Env)
	logger.Info().Msg("starting mini-admin server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.Migrate(cfg.Database.URL, logger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	views := cache.Open(ctx, cfg.Cache, logger)
	defer views.Close()

	publisher := events.Open(cfg.Events, logger)
	defer publisher.Close()

	// Repositories
	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	// Services
	userService := service.NewUserService(userRepo, logger)
	productService := service.NewProductService(productRepo, logger)

	// Mutations
	userActions := action.NewUserActions(userRepo, password.NewHasher(), views, publisher, logger)
	productActions := action.NewProductActions(productRepo, userRepo, views, publisher, logger)

	pages, err := web.NewPages(userService, productService, userActions, productActions, logger)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	dev := cfg.App.IsDevelopment()
	mux := router.New(router.Handlers{
		Users:          handler.NewUserHandler(userService, dev, logger),
		Products:       handler.NewProductHandler(productService, dev, logger),
		Actions:        handler.NewActionHandler(logger),
		Health:         handler.NewHealthHandler(pool, cfg.App.Env, logger),
		UserActions:    userActions,
		ProductActions: productActions,
		Pages:          pages,
	}, auth.NewTokens(cfg.Auth.JWTSecret), views, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("url", cfg.App.URL).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

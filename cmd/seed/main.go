// Command seed loads the demo dataset into the database. Records go through
// the same validation as the admin forms; users that already exist are
// skipped.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mini-admin/internal/action"
	"mini-admin/internal/cache"
	"mini-admin/internal/config"
	"mini-admin/internal/database"
	"mini-admin/internal/events"
	"mini-admin/internal/password"
	"mini-admin/internal/repository"
	"mini-admin/internal/seed"
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

	file := flag.String("file", cfg.Seed.File, "dataset path, relative to S3_PREFIX when S3 is enabled")
	flag.Parse()

	logger := config.NewLogger(cfg.Logger, cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Try S3 when enabled; the file system is always the fallback.
	var s3Loader seed.Loader
	if cfg.Seed.S3Enabled {
		s3Loader, err = seed.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			s3Loader = nil
		}
	}
	loader := seed.NewFallbackLoader(s3Loader, seed.NewFileLoader(logger), cfg.Seed.S3Prefix, cfg.Seed.S3Enabled, logger)

	ds, err := loader.Load(ctx, *file)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

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

	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	seeder := seed.NewSeeder(
		action.NewUserActions(userRepo, password.NewHasher(), views, publisher, logger),
		action.NewProductActions(productRepo, userRepo, views, publisher, logger),
		repository.NewPostRepository(pool, logger),
		userRepo,
		logger,
	)

	res, err := seeder.Apply(ctx, ds)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

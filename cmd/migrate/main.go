// Command migrate manages the database schema.
//
//	migrate up          apply all pending migrations
//	migrate down [n]    roll back n migrations (default 1)
//	migrate version     print the current version
//	migrate force v     mark version v as applied without running it
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"mini-admin/internal/config"
	"mini-admin/internal/database"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("usage: migrate up | down [n] | version | force <version>")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger, cfg.App.Env)

	m, err := database.NewMigrator(cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd := fs.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		n := 1
		if fs.NArg() > 1 {
			if n, err = strconv.Atoi(fs.Arg(1)); err != nil || n < 1 {
				return fmt.Errorf("invalid step count %q", fs.Arg(1))
			}
		}
		err = m.Steps(-n)
	case "force":
		if fs.NArg() < 2 {
			return errors.New("force requires a version")
		}
		v, convErr := strconv.Atoi(fs.Arg(1))
		if convErr != nil {
			return fmt.Errorf("invalid version %q", fs.Arg(1))
		}
		err = m.Force(v)
	case "version":
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	fmt.Printf("version %d (dirty=%t)\n", version, dirty)
	return nil
}

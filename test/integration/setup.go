package integration

import (
	"context"
	"testing"
	"time"

	"mini-admin/internal/config"
	"mini-admin/internal/database"
	"mini-admin/internal/model"
	"mini-admin/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container, applies the migrations and
// opens a pool through the application's own constructor.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	if err := database.Migrate(connStr, logger); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, config.DatabaseConfig{
		URL:             connStr,
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedUsers inserts Alice (admin) and Bob, Alice first, and returns them.
func SeedUsers(t *testing.T, pool *pgxpool.Pool) (alice, bob *model.User) {
	t.Helper()

	repo := repository.NewUserRepository(pool, zerolog.Nop())
	ctx := context.Background()

	alice = &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "$2a$04$hash", Role: model.RoleAdmin}
	bob = &model.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "$2a$04$hash", Role: model.RoleUser}

	for _, u := range []*model.User{alice, bob} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
	}
	return alice, bob
}

// CleanupDB removes all rows, dependents first.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	for _, table := range []string{"posts", "products", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

package repository

import (
	"context"
	"testing"
	"time"

	"mini-admin/internal/database"
	"mini-admin/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the application schema
// and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(connStr, zerolog.Nop()))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedUser inserts a user and returns it.
func seedUser(t *testing.T, repo UserRepository, name, email, role string) *model.User {
	t.Helper()

	u := &model.User{Name: name, Email: email, PasswordHash: "$2a$12$hash", Role: role}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// seedProduct inserts a product owned by owner and returns it.
func seedProduct(t *testing.T, repo ProductRepository, owner uuid.UUID, name string, price float64, category *string) *model.Product {
	t.Helper()

	p := &model.Product{Name: name, Price: price, Stock: 1, Category: category, UserID: owner}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// seedPost inserts a post directly; posts are read-only in the application.
func seedPost(t *testing.T, pool *pgxpool.Pool, owner uuid.UUID, title string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO posts (id, title, user_id) VALUES ($1, $2, $3)`,
		uuid.New(), title, owner)
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

package repository

import (
	"context"
	"fmt"

	"mini-admin/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postRepository implements the PostRepository interface using PostgreSQL.
type postRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostRepository creates a new PostgreSQL-backed post repository.
func NewPostRepository(pool *pgxpool.Pool, logger zerolog.Logger) PostRepository {
	return &postRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "post").Logger(),
	}
}

// Create inserts a new post. An unknown author is reported as
// model.ErrForeignKey.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	query := `
		INSERT INTO posts (id, title, content, published, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		post.ID, post.Title, post.Content, post.Published, post.UserID,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", post.ID.String()).Msg("failed to create post")
		return fmt.Errorf("failed to create post: %w", mapWriteError(err))
	}

	return nil
}

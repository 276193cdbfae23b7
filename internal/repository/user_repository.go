package repository

import (
	"context"
	"errors"
	"fmt"

	"mini-admin/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = `u.id, u.name, u.email, u.password_hash, u.role, u.created_at, u.updated_at`

const userCountColumns = `
	(SELECT COUNT(*) FROM posts po WHERE po.user_id = u.id),
	(SELECT COUNT(*) FROM products pr WHERE pr.user_id = u.id)`

func scanUser(row pgx.Row, u *model.User, extra ...any) error {
	dest := append([]any{&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt}, extra...)
	return row.Scan(dest...)
}

// List retrieves a page of users matching filter, newest first.
func (r *userRepository) List(ctx context.Context, filter UserFilter, limit, offset int) ([]model.UserSummary, error) {
	where := userWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM users u
		%s
		ORDER BY u.created_at DESC, u.id
		LIMIT %s OFFSET %s
	`, userColumns, userCountColumns, where, where.arg(limit), where.arg(offset))

	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.UserSummary{}
	for rows.Next() {
		var s model.UserSummary
		if err := scanUser(rows, &s.User, &s.Count.Posts, &s.Count.Products); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Count returns the number of users matching filter.
func (r *userRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	where := userWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM users u %s`, where)

	var total int64
	if err := r.pool.QueryRow(ctx, query, where.args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count users")
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single user by its ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	var u model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", id.String()).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a single user by its email address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1`

	var u model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, email), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user by email")
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return &u, nil
}

// GetDetail retrieves a user with its posts and products, newest first. The
// three reads are sent as one batch.
func (r *userRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.UserDetail, error) {
	batch := &pgx.Batch{}
	batch.Queue(`SELECT `+userColumns+`, `+userCountColumns+` FROM users u WHERE u.id = $1`, id)
	batch.Queue(`
		SELECT id, title, content, published, user_id, created_at, updated_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, id)
	batch.Queue(`
		SELECT `+productColumns+`
		FROM products p
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id
	`, id)

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	var d model.UserDetail
	if err := scanUser(results.QueryRow(), &d.User, &d.Count.Posts, &d.Count.Products); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", id.String()).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user detail")
		return nil, fmt.Errorf("failed to query user detail: %w", err)
	}

	posts, err := collectPosts(results)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user posts")
		return nil, err
	}
	d.Posts = posts

	products, err := collectProducts(results)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user products")
		return nil, err
	}
	d.Products = products

	return &d, nil
}

func collectPosts(results pgx.BatchResults) ([]model.Post, error) {
	rows, err := results.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

func collectProducts(results pgx.BatchResults) ([]model.Product, error) {
	rows, err := results.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// CountDependents returns how many posts and products reference the user.
func (r *userRepository) CountDependents(ctx context.Context, id uuid.UUID) (model.UserCount, error) {
	query := `SELECT ` + userCountColumns + ` FROM users u WHERE u.id = $1`

	var c model.UserCount
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.Posts, &c.Products); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserCount{}, model.ErrUserNotFound
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to count user dependents")
		return model.UserCount{}, fmt.Errorf("failed to count user dependents: %w", err)
	}
	return c, nil
}

// Create inserts a new user, filling in ID and timestamps.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Role).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", mapWriteError(err))
	}

	r.logger.Debug().Str("user_id", user.ID.String()).Msg("user created successfully")
	return nil
}

// Update writes name, email and role of an existing user.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, role = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.Role).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrUserNotFound
		}
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to update user")
		return fmt.Errorf("failed to update user: %w", mapWriteError(err))
	}

	r.logger.Debug().Str("user_id", user.ID.String()).Msg("user updated successfully")
	return nil
}

// Delete removes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", mapWriteError(err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	r.logger.Debug().Str("user_id", id.String()).Msg("user deleted successfully")
	return nil
}

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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `p.id, p.name, p.description, p.price, p.stock, p.category, p.image, p.user_id, p.created_at, p.updated_at`

func scanProduct(row pgx.Row, p *model.Product, extra ...any) error {
	dest := append([]any{
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.Image, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	}, extra...)
	return row.Scan(dest...)
}

func scanProductWithOwner(row pgx.Row, p *model.ProductWithOwner) error {
	return scanProduct(row, &p.Product, &p.User.ID, &p.User.Name, &p.User.Email)
}

// List retrieves a page of products matching filter, each with its owner.
func (r *productRepository) List(ctx context.Context, filter ProductFilter, sort ProductSort, limit, offset int) ([]model.ProductWithOwner, error) {
	where := productWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s, u.id, u.name, u.email
		FROM products p
		JOIN users u ON u.id = p.user_id
		%s
		%s
		LIMIT %s OFFSET %s
	`, productColumns, where, sort.orderBy(), where.arg(limit), where.arg(offset))

	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.ProductWithOwner{}
	for rows.Next() {
		var p model.ProductWithOwner
		if err := scanProductWithOwner(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the number of products matching filter.
func (r *productRepository) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	where := productWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM products p %s`, where)

	var total int64
	if err := r.pool.QueryRow(ctx, query, where.args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	var p model.Product
	if err := scanProduct(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetWithOwner retrieves a single product joined with its owner.
func (r *productRepository) GetWithOwner(ctx context.Context, id uuid.UUID) (*model.ProductWithOwner, error) {
	query := `
		SELECT ` + productColumns + `, u.id, u.name, u.email
		FROM products p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	var p model.ProductWithOwner
	if err := scanProductWithOwner(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product, filling in ID and timestamps.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	query := `
		INSERT INTO products (id, name, description, price, stock, category, image, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Stock, product.Category, product.Image, product.UserID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", mapWriteError(err))
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created successfully")
	return nil
}

// Update writes the editable fields of an existing product. The owner is
// left untouched and read back into product.UserID.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5,
		    category = $6, image = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING user_id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Stock, product.Category, product.Image,
	).Scan(&product.UserID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrProductNotFound
		}
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", mapWriteError(err))
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product updated successfully")
	return nil
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", mapWriteError(err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Str("product_id", id.String()).Msg("product deleted successfully")
	return nil
}

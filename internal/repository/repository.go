package repository

import (
	"context"

	"mini-admin/internal/model"

	"github.com/google/uuid"
)

// UserFilter is the predicate shared by the user list and count queries.
type UserFilter struct {
	// Search matches name or email as a substring.
	Search string
	Role   string
}

// ProductFilter is the predicate shared by the product list and count queries.
type ProductFilter struct {
	// Search matches name or description as a substring.
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// ProductSort orders the product list. Field must be one of the model.Sort*
// constants.
type ProductSort struct {
	Field string
	Desc  bool
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// List retrieves a page of users matching filter, newest first, each with
	// its dependent record counts.
	List(ctx context.Context, filter UserFilter, limit, offset int) ([]model.UserSummary, error)

	// Count returns the number of users matching filter.
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// GetByID retrieves a single user by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a single user by its email address.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetDetail retrieves a user with its posts and products.
	GetDetail(ctx context.Context, id uuid.UUID) (*model.UserDetail, error)

	// CountDependents returns how many records reference the user.
	CountDependents(ctx context.Context, id uuid.UUID) (model.UserCount, error)

	// Create inserts a new user, filling in ID and timestamps.
	Create(ctx context.Context, user *model.User) error

	// Update writes name, email and role of an existing user.
	Update(ctx context.Context, user *model.User) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves a page of products matching filter, each with its owner.
	List(ctx context.Context, filter ProductFilter, sort ProductSort, limit, offset int) ([]model.ProductWithOwner, error)

	// Count returns the number of products matching filter.
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetWithOwner retrieves a single product joined with its owner.
	GetWithOwner(ctx context.Context, id uuid.UUID) (*model.ProductWithOwner, error)

	// Create inserts a new product, filling in ID and timestamps.
	Create(ctx context.Context, product *model.Product) error

	// Update writes the editable fields of an existing product.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostRepository writes posts. Posts are only read through their author, see
// UserRepository.GetDetail.
type PostRepository interface {
	// Create inserts a new post, filling in ID and timestamps.
	Create(ctx context.Context, post *model.Post) error
}

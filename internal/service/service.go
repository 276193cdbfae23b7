package service

import (
	"context"

	"mini-admin/internal/model"

	"github.com/google/uuid"
)

// UserService defines the read operations for users.
type UserService interface {
	// List returns one page of users matching q together with page metadata.
	List(ctx context.Context, q model.UserQuery) (*model.UserList, error)

	// Get returns a user with its posts and products.
	Get(ctx context.Context, id uuid.UUID) (*model.UserDetail, error)
}

// ProductService defines the read operations for products.
type ProductService interface {
	// List returns one page of products matching q together with page
	// metadata and the filters that were applied.
	List(ctx context.Context, q model.ProductQuery) (*model.ProductList, error)

	// Get returns a product with its owner.
	Get(ctx context.Context, id uuid.UUID) (*model.ProductWithOwner, error)
}

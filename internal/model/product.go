package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is an item owned by a user.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    *string   `json:"category"`
	Image       *string   `json:"image"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductWithOwner is a product row joined with its owner.
type ProductWithOwner struct {
	Product
	User UserRef `json:"user"`
}

// CreateProductInput is a validated create-product submission.
type CreateProductInput struct {
	Name        string
	Description *string
	Price       float64
	Stock       int
	Category    *string
	Image       *string
	UserID      uuid.UUID
}

// UpdateProductInput is a validated update-product submission. The owner
// cannot be changed.
type UpdateProductInput struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Price       float64
	Stock       int
	Category    *string
	Image       *string
}

// Product sort fields accepted by the list endpoint.
const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortPrice     = "price"
	SortName      = "name"
)

// ProductQuery holds the list parameters for products. Price bounds and
// sorting are kept as received; the service decides whether they are usable.
type ProductQuery struct {
	Page      int
	Limit     int
	Search    string
	Category  string
	MinPrice  string
	MaxPrice  string
	SortBy    string
	SortOrder string
}

// ProductFilters echoes the filters a product list was produced with. Absent
// price bounds are null.
type ProductFilters struct {
	Search    string  `json:"search"`
	Category  string  `json:"category"`
	MinPrice  *string `json:"minPrice"`
	MaxPrice  *string `json:"maxPrice"`
	SortBy    string  `json:"sortBy"`
	SortOrder string  `json:"sortOrder"`
}

// ProductList is the products list envelope.
type ProductList struct {
	Products   []ProductWithOwner `json:"products"`
	Pagination Pagination         `json:"pagination"`
	Filters    ProductFilters     `json:"filters"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values accepted for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account managed by the admin application.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserCount holds the number of records that depend on a user.
type UserCount struct {
	Posts    int `json:"posts"`
	Products int `json:"products"`
}

// HasDependents reports whether anything still references the user.
func (c UserCount) HasDependents() bool {
	return c.Posts > 0 || c.Products > 0
}

// UserSummary is a user row in the list endpoint.
type UserSummary struct {
	User
	Count UserCount `json:"_count"`
}

// UserDetail is a user together with its dependent records.
type UserDetail struct {
	User
	Posts    []Post    `json:"posts"`
	Products []Product `json:"products"`
	Count    UserCount `json:"_count"`
}

// UserRef is the owner projection embedded in product rows.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CreateUserInput is a validated create-user submission.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput is a validated update-user submission.
type UpdateUserInput struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// UserQuery holds the list parameters for users.
type UserQuery struct {
	Page   int
	Limit  int
	Search string
	Role   string
}

// UserList is the users list envelope.
type UserList struct {
	Users      []UserSummary `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is authored by a user. Posts are read-only here; they are listed in
// user detail and block user deletion.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	Published bool      `json:"published"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

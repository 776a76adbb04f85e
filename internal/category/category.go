package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("category not found")
	ErrInvalid  = errors.New("invalid category")
)

// Category labels a user's transactions. Deleting one never cascades:
// referencing transactions become uncategorized instead.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

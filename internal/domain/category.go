package domain

import "time"

// DefaultCategories is the fixed set seeded at schema initialization.
var DefaultCategories = []string{"Food", "Transport", "Bills", "Shopping", "Other"}

type Category struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryRepository defines the interface for category persistence operations.
// Categories are reference data: created once, never deleted.
type CategoryRepository interface {
	// Create inserts a category, returning the existing row when the name
	// is already present (idempotent by name).
	Create(category *Category) (*Category, error)
	GetByID(id int32) (*Category, error)
	GetByName(name string) (*Category, error)
	GetAll() ([]*Category, error)
}

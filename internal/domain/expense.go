package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an append-only record. There is no update or delete path.
type Expense struct {
	ID           int32           `json:"id"`
	OwnerID      *int32          `json:"ownerId,omitempty"`
	CategoryID   int32           `json:"categoryId"`
	CategoryName string          `json:"category"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ExpenseFilters narrows List results. Nil fields mean "no constraint";
// both date bounds are inclusive. Categories filter by name.
type ExpenseFilters struct {
	OwnerID    *int32
	StartDate  *time.Time
	EndDate    *time.Time
	Categories []string
}

// CategoryTotal is the summed amount for a single category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyTotal is the summed amount for a single calendar month.
type MonthlyTotal struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// ExpenseRepository defines the interface for expense persistence operations
type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	// List returns expenses joined with their category name, ordered by
	// date descending, ties broken by id descending.
	List(filters *ExpenseFilters) ([]*Expense, error)
	// SumByMonth returns per-month totals, most recent month first.
	SumByMonth(ownerID *int32) ([]*MonthlyTotal, error)
}

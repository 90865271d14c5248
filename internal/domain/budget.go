package domain

import "github.com/shopspring/decimal"

// Budget is a monthly spending cap for one category.
type Budget struct {
	ID           int32           `json:"id"`
	OwnerID      *int32          `json:"ownerId,omitempty"`
	CategoryID   int32           `json:"categoryId"`
	CategoryName string          `json:"category"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
}

// BudgetStatus pairs a budget with the actual spend for its month.
type BudgetStatus struct {
	Category  string          `json:"category"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}

// BudgetRepository defines the interface for budget persistence operations
type BudgetRepository interface {
	// Upsert creates the budget or replaces the amount of an existing one
	// for the same (owner, category, year, month).
	Upsert(budget *Budget) (*Budget, error)
	GetByMonth(ownerID *int32, year, month int) ([]*Budget, error)
}

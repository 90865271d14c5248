package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"pocketledger/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Upsert creates or replaces the budget for one (owner, category, month).
// The conflict target matches idx_budgets_owner_category_month; a NULL
// owner collapses to 0 so single-user budgets stay unique too.
func (r *BudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	var ownerID pgtype.Int4
	if budget.OwnerID != nil {
		ownerID.Int32 = *budget.OwnerID
		ownerID.Valid = true
	}

	saved := &domain.Budget{
		OwnerID:      budget.OwnerID,
		CategoryID:   budget.CategoryID,
		CategoryName: budget.CategoryName,
		Year:         budget.Year,
		Month:        budget.Month,
		Amount:       budget.Amount,
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO budgets (owner_id, category_id, year, month, amount)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (COALESCE(owner_id, 0), category_id, year, month)
		 DO UPDATE SET amount = EXCLUDED.amount
		 RETURNING id`,
		ownerID, budget.CategoryID, budget.Year, budget.Month, amount).
		Scan(&saved.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}
	return saved, nil
}

// GetByMonth retrieves all budgets for a month joined with category names
func (r *BudgetRepository) GetByMonth(ownerID *int32, year, month int) ([]*domain.Budget, error) {
	ctx := context.Background()

	b := &whereBuilder{}
	if ownerID != nil {
		b.add("b.owner_id = ?", *ownerID)
	}
	b.add("b.year = ?", year)
	b.add("b.month = ?", month)
	where, args := b.build(1)

	query := `SELECT b.id, b.owner_id, b.category_id, c.name, b.year, b.month, b.amount
		FROM budgets b
		JOIN categories c ON c.id = b.category_id` +
		where +
		` ORDER BY c.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		var (
			owner  pgtype.Int4
			amount pgtype.Numeric
		)
		budget := &domain.Budget{}
		err := rows.Scan(&budget.ID, &owner, &budget.CategoryID, &budget.CategoryName,
			&budget.Year, &budget.Month, &amount)
		if err != nil {
			return nil, err
		}
		if owner.Valid {
			budget.OwnerID = &owner.Int32
		}
		budget.Amount = pgNumericToDecimal(amount)
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

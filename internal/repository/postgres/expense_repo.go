package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create persists a new expense and returns it with its assigned id
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	var expenseDate pgtype.Date
	expenseDate.Time = expense.Date
	expenseDate.Valid = true

	var notes pgtype.Text
	if expense.Notes != nil {
		notes.String = *expense.Notes
		notes.Valid = true
	}

	var ownerID pgtype.Int4
	if expense.OwnerID != nil {
		ownerID.Int32 = *expense.OwnerID
		ownerID.Valid = true
	}

	created := &domain.Expense{
		OwnerID:      expense.OwnerID,
		CategoryID:   expense.CategoryID,
		CategoryName: expense.CategoryName,
		Date:         expense.Date,
		Amount:       expense.Amount,
		Notes:        expense.Notes,
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO expenses (owner_id, category_id, expense_date, amount, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		ownerID, expense.CategoryID, expenseDate, amount, notes).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

// List retrieves expenses joined with their category name, newest first.
// Ties on the date are broken by insertion order, most recent insert first.
func (r *ExpenseRepository) List(filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	ctx := context.Background()

	where, args := expenseFilters(filters).build(1)
	query := `SELECT e.id, e.owner_id, e.category_id, c.name, e.expense_date, e.amount, e.notes, e.created_at
		FROM expenses e
		JOIN categories c ON c.id = e.category_id` +
		where +
		` ORDER BY e.expense_date DESC, e.id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		var (
			ownerID     pgtype.Int4
			expenseDate pgtype.Date
			amount      pgtype.Numeric
			notes       pgtype.Text
			createdAt   pgtype.Timestamptz
		)
		expense := &domain.Expense{}
		err := rows.Scan(&expense.ID, &ownerID, &expense.CategoryID, &expense.CategoryName,
			&expenseDate, &amount, &notes, &createdAt)
		if err != nil {
			return nil, err
		}
		if ownerID.Valid {
			expense.OwnerID = &ownerID.Int32
		}
		expense.Date = expenseDate.Time
		expense.Amount = pgNumericToDecimal(amount)
		if notes.Valid {
			expense.Notes = &notes.String
		}
		expense.CreatedAt = createdAt.Time
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// SumByMonth returns total spend grouped by calendar month, newest first
func (r *ExpenseRepository) SumByMonth(ownerID *int32) ([]*domain.MonthlyTotal, error) {
	ctx := context.Background()

	b := &whereBuilder{}
	if ownerID != nil {
		b.add("owner_id = ?", *ownerID)
	}
	where, args := b.build(1)

	query := `SELECT EXTRACT(YEAR FROM expense_date)::int AS year,
			EXTRACT(MONTH FROM expense_date)::int AS month,
			COALESCE(SUM(amount), 0)
		FROM expenses` +
		where +
		` GROUP BY 1, 2 ORDER BY 1 DESC, 2 DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []*domain.MonthlyTotal
	for rows.Next() {
		var total pgtype.Numeric
		mt := &domain.MonthlyTotal{}
		if err := rows.Scan(&mt.Year, &mt.Month, &total); err != nil {
			return nil, err
		}
		mt.Total = pgNumericToDecimal(total)
		totals = append(totals, mt)
	}
	return totals, rows.Err()
}

// Helper functions

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

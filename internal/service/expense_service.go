package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
	"pocketledger/internal/ws"
)

// ExpenseService handles expense-related business logic
type ExpenseService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
	publisher    ws.EventPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, categoryRepo domain.CategoryRepository, publisher ws.EventPublisher) *ExpenseService {
	if publisher == nil {
		publisher = &ws.NoOpPublisher{}
	}
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// CreateExpenseInput holds the input for creating an expense
type CreateExpenseInput struct {
	Date     time.Time
	Amount   decimal.Decimal
	Category string
	Notes    *string
}

// CreateExpense validates and persists a new expense. Validation happens
// before any write: no row exists after a failed create.
func (s *ExpenseService) CreateExpense(ownerID *int32, input CreateExpenseInput) (*domain.Expense, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if input.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	category, err := s.categoryRepo.GetByName(strings.TrimSpace(input.Category))
	if err != nil {
		return nil, err
	}

	var notes *string
	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		if trimmed != "" {
			if len(trimmed) > domain.MaxNotesLength {
				return nil, domain.ErrNotesTooLong
			}
			notes = &trimmed
		}
	}

	expense := &domain.Expense{
		OwnerID:      ownerID,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Date:         input.Date.Truncate(24 * time.Hour),
		Amount:       input.Amount,
		Notes:        notes,
	}

	created, err := s.expenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ws.OwnerKey(ownerID), ws.ExpenseCreated(created))
	return created, nil
}

// ListExpenses returns a filtered view, newest first. Both date bounds are
// inclusive; an empty category set means no category filtering.
func (s *ExpenseService) ListExpenses(ownerID *int32, start, end *time.Time, categories []string) ([]*domain.Expense, error) {
	if start != nil && end != nil && start.After(*end) {
		return nil, domain.ErrInvalidDateRange
	}

	return s.expenseRepo.List(&domain.ExpenseFilters{
		OwnerID:    ownerID,
		StartDate:  start,
		EndDate:    end,
		Categories: categories,
	})
}

// MonthlyTotals returns per-month spend, newest month first
func (s *ExpenseService) MonthlyTotals(ownerID *int32) ([]*domain.MonthlyTotal, error) {
	return s.expenseRepo.SumByMonth(ownerID)
}

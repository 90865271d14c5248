package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
	"pocketledger/internal/ws"
)

// BudgetService handles monthly budget business logic
type BudgetService struct {
	budgetRepo   domain.BudgetRepository
	categoryRepo domain.CategoryRepository
	expenseRepo  domain.ExpenseRepository
	publisher    ws.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository, expenseRepo domain.ExpenseRepository, publisher ws.EventPublisher) *BudgetService {
	if publisher == nil {
		publisher = &ws.NoOpPublisher{}
	}
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		publisher:    publisher,
	}
}

// SetBudget creates or replaces the budget for one category and month
func (s *BudgetService) SetBudget(ownerID *int32, category string, year, month int, amount decimal.Decimal) (*domain.Budget, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}
	if amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	cat, err := s.categoryRepo.GetByName(strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Upsert(&domain.Budget{
		OwnerID:      ownerID,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Year:         year,
		Month:        month,
		Amount:       amount,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ws.OwnerKey(ownerID), ws.BudgetUpdated(budget))
	return budget, nil
}

// GetBudgets retrieves all budgets for a month
func (s *BudgetService) GetBudgets(ownerID *int32, year, month int) ([]*domain.Budget, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}
	return s.budgetRepo.GetByMonth(ownerID, year, month)
}

// BudgetReport joins each budget for the month with the actual spend of
// its category. Categories with spend but no budget are included with a
// zero budgeted amount.
func (s *BudgetService) BudgetReport(ownerID *int32, year, month int) ([]*domain.BudgetStatus, error) {
	budgets, err := s.GetBudgets(ownerID, year, month)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	expenses, err := s.expenseRepo.List(&domain.ExpenseFilters{
		OwnerID:   ownerID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal)
	var spentOrder []string
	for _, ct := range SumByCategory(expenses) {
		spent[ct.Category] = ct.Total
		spentOrder = append(spentOrder, ct.Category)
	}

	var report []*domain.BudgetStatus
	budgeted := make(map[string]bool)
	for _, b := range budgets {
		actual := spent[b.CategoryName]
		report = append(report, &domain.BudgetStatus{
			Category:  b.CategoryName,
			Budgeted:  b.Amount,
			Spent:     actual,
			Remaining: b.Amount.Sub(actual),
		})
		budgeted[b.CategoryName] = true
	}
	for _, name := range spentOrder {
		if budgeted[name] {
			continue
		}
		report = append(report, &domain.BudgetStatus{
			Category:  name,
			Budgeted:  decimal.Zero,
			Spent:     spent[name],
			Remaining: spent[name].Neg(),
		})
	}

	return report, nil
}

package service

import (
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
)

// DashboardService aggregates the numbers the dashboard view renders
type DashboardService struct {
	expenseRepo domain.ExpenseRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(expenseRepo domain.ExpenseRepository) *DashboardService {
	return &DashboardService{expenseRepo: expenseRepo}
}

// DashboardSummary holds the current-month totals and the monthly trend
type DashboardSummary struct {
	Year         int                    `json:"year"`
	Month        int                    `json:"month"`
	TotalSpent   decimal.Decimal        `json:"totalSpent"`
	ByCategory   []domain.CategoryTotal `json:"byCategory"`
	MonthlyTrend []*domain.MonthlyTotal `json:"monthlyTrend"`
}

// GetSummary computes the summary for the month containing now
func (s *DashboardService) GetSummary(ownerID *int32, now time.Time) (*DashboardSummary, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	expenses, err := s.expenseRepo.List(&domain.ExpenseFilters{
		OwnerID:   ownerID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	trend, err := s.expenseRepo.SumByMonth(ownerID)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Year:         now.Year(),
		Month:        int(now.Month()),
		TotalSpent:   TotalAmount(expenses),
		ByCategory:   SumByCategory(expenses),
		MonthlyTrend: trend,
	}, nil
}

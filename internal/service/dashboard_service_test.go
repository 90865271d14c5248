package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
	"pocketledger/internal/testutil"
)

func TestGetSummary_CurrentMonthOnly(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	dashboardService := NewDashboardService(expenseRepo)

	seed := []struct {
		date, amount, category string
	}{
		{"2026-08-10", "100", "Food"},
		{"2026-08-20", "50", "Transport"},
		{"2026-07-15", "999", "Food"},
	}
	for _, s := range seed {
		if _, err := expenseRepo.Create(&domain.Expense{
			CategoryName: s.category,
			Date:         day(s.date),
			Amount:       decimal.RequireFromString(s.amount),
		}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	summary, err := dashboardService.GetSummary(nil, day("2026-08-29"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Year != 2026 || summary.Month != 8 {
		t.Errorf("Expected 2026-08, got %d-%d", summary.Year, summary.Month)
	}
	if !summary.TotalSpent.Equal(decimal.RequireFromString("150")) {
		t.Errorf("Expected total 150 for current month, got %s", summary.TotalSpent)
	}
	if len(summary.ByCategory) != 2 {
		t.Errorf("Expected 2 category groups, got %d", len(summary.ByCategory))
	}
}

func TestGetSummary_MonthlyTrendNewestFirst(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	dashboardService := NewDashboardService(expenseRepo)

	for _, d := range []string{"2026-06-01", "2026-08-01", "2026-07-01"} {
		if _, err := expenseRepo.Create(&domain.Expense{
			CategoryName: "Food",
			Date:         day(d),
			Amount:       decimal.RequireFromString("10"),
		}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	summary, err := dashboardService.GetSummary(nil, day("2026-08-29"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(summary.MonthlyTrend) != 3 {
		t.Fatalf("Expected 3 trend entries, got %d", len(summary.MonthlyTrend))
	}
	wantMonths := []int{8, 7, 6}
	for i, w := range wantMonths {
		if summary.MonthlyTrend[i].Month != w {
			t.Errorf("Expected position %d to be month %d, got %d", i, w, summary.MonthlyTrend[i].Month)
		}
	}
}

func TestGetSummary_EmptyMonth(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	dashboardService := NewDashboardService(expenseRepo)

	summary, err := dashboardService.GetSummary(nil, day("2026-08-29"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.TotalSpent.Equal(decimal.Zero) {
		t.Errorf("Expected zero total, got %s", summary.TotalSpent)
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("Expected no category groups, got %d", len(summary.ByCategory))
	}
}

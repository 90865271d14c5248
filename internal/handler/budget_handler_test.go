package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
	"pocketledger/internal/service"
	"pocketledger/internal/testutil"
)

func newBudgetHandlerFixture() (*BudgetHandler, *testutil.MockExpenseRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food"})
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, expenseRepo, nil)
	return NewBudgetHandler(budgetService), expenseRepo
}

func budgetContext(e *echo.Echo, method, body, year, month string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues(year, month)
	return c, rec
}

func TestSetBudgets_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetHandlerFixture()

	c, rec := budgetContext(e, http.MethodPut, `[{"category": "Food", "amount": "300"}]`, "2026", "8")

	if err := handler.SetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var budgets []*domain.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &budgets); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("Expected 1 budget, got %d", len(budgets))
	}
	if budgets[0].CategoryName != "Food" {
		t.Errorf("Expected category 'Food', got %s", budgets[0].CategoryName)
	}
}

func TestSetBudgets_InvalidYearParam(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetHandlerFixture()

	c, rec := budgetContext(e, http.MethodPut, `[]`, "not-a-year", "8")

	if err := handler.SetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestSetBudgets_InvalidMonth(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetHandlerFixture()

	c, rec := budgetContext(e, http.MethodPut, `[{"category": "Food", "amount": "300"}]`, "2026", "13")

	if err := handler.SetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetBudgets_EmptyIsJSONArray(t *testing.T) {
	e := echo.New()
	handler, _ := newBudgetHandlerFixture()

	c, rec := budgetContext(e, http.MethodGet, "", "2026", "8")

	if err := handler.GetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("Expected empty JSON array, got %s", got)
	}
}

func TestGetReport_IncludesSpend(t *testing.T) {
	e := echo.New()
	handler, expenseRepo := newBudgetHandlerFixture()

	c, _ := budgetContext(e, http.MethodPut, `[{"category": "Food", "amount": "300"}]`, "2026", "8")
	if err := handler.SetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	seedExpense(t, expenseRepo, "2026-08-10", "120.50", "Food")

	c, rec := budgetContext(e, http.MethodGet, "", "2026", "8")
	if err := handler.GetReport(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var report []*domain.BudgetStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("Expected 1 report row, got %d", len(report))
	}
	if !report[0].Spent.Equal(decimal.RequireFromString("120.50")) {
		t.Errorf("Expected spent 120.50, got %s", report[0].Spent)
	}
	if !report[0].Remaining.Equal(decimal.RequireFromString("179.50")) {
		t.Errorf("Expected remaining 179.50, got %s", report[0].Remaining)
	}
}

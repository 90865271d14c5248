package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"pocketledger/internal/domain"
	"pocketledger/internal/export"
)

func TestImportExpenses_Success(t *testing.T) {
	expenseService, expenseRepo, _ := newExpenseServiceFixture()

	rows := []export.Row{
		{Date: day("2026-08-01"), Amount: decimal.RequireFromString("12.50"), Category: "Food", Notes: "lunch"},
		{Date: day("2026-08-02"), Amount: decimal.RequireFromString("3.20"), Category: "Transport"},
	}

	result, err := expenseService.ImportExpenses(nil, rows)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no row errors, got %d", len(result.Errors))
	}
	if len(expenseRepo.Expenses) != 2 {
		t.Errorf("Expected 2 persisted expenses, got %d", len(expenseRepo.Expenses))
	}
	if expenseRepo.Expenses[0].Notes == nil || *expenseRepo.Expenses[0].Notes != "lunch" {
		t.Errorf("Expected notes 'lunch', got %v", expenseRepo.Expenses[0].Notes)
	}
}

func TestImportExpenses_CreatesUnknownCategories(t *testing.T) {
	expenseService, _, categoryRepo := newExpenseServiceFixture()

	rows := []export.Row{
		{Date: day("2026-08-01"), Amount: decimal.RequireFromString("9.99"), Category: "Books"},
		{Date: day("2026-08-02"), Amount: decimal.RequireFromString("4.00"), Category: "Books"},
	}

	result, err := expenseService.ImportExpenses(nil, rows)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if _, err := categoryRepo.GetByName("Books"); err != nil {
		t.Errorf("Expected 'Books' category to exist, got %v", err)
	}
}

func TestImportExpenses_BadRowDoesNotAbort(t *testing.T) {
	expenseService, expenseRepo, _ := newExpenseServiceFixture()

	rows := []export.Row{
		{Date: day("2026-08-01"), Amount: decimal.RequireFromString("12.50"), Category: "Food"},
		{Date: day("2026-08-02"), Amount: decimal.Zero, Category: "Food"},
		{Date: day("2026-08-03"), Amount: decimal.RequireFromString("3.20"), Category: "Food"},
	}

	result, err := expenseService.ImportExpenses(nil, rows)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 row error, got %d", len(result.Errors))
	}
	if result.Errors[0].Row != 2 {
		t.Errorf("Expected error on row 2, got row %d", result.Errors[0].Row)
	}
	if len(expenseRepo.Expenses) != 2 {
		t.Errorf("Expected 2 persisted expenses, got %d", len(expenseRepo.Expenses))
	}
}

func TestImportExpenses_NotesTooLong(t *testing.T) {
	expenseService, expenseRepo, _ := newExpenseServiceFixture()

	rows := []export.Row{
		{Date: day("2026-08-01"), Amount: decimal.RequireFromString("12.50"), Category: "Food", Notes: strings.Repeat("x", domain.MaxNotesLength+1)},
		{Date: day("2026-08-02"), Amount: decimal.RequireFromString("3.20"), Category: "Food"},
	}

	result, err := expenseService.ImportExpenses(nil, rows)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Imported != 1 {
		t.Errorf("Expected 1 imported, got %d", result.Imported)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 row error, got %d", len(result.Errors))
	}
	if result.Errors[0].Row != 1 {
		t.Errorf("Expected error on row 1, got row %d", result.Errors[0].Row)
	}
	if result.Errors[0].Err != domain.ErrNotesTooLong.Error() {
		t.Errorf("Expected %q, got %q", domain.ErrNotesTooLong.Error(), result.Errors[0].Err)
	}
	if len(expenseRepo.Expenses) != 1 {
		t.Errorf("Expected 1 persisted expense, got %d", len(expenseRepo.Expenses))
	}
}

func TestImportExpenses_NotesTrimmed(t *testing.T) {
	expenseService, expenseRepo, _ := newExpenseServiceFixture()

	rows := []export.Row{
		{Date: day("2026-08-01"), Amount: decimal.RequireFromString("12.50"), Category: "Food", Notes: "  lunch  "},
		{Date: day("2026-08-02"), Amount: decimal.RequireFromString("3.20"), Category: "Food", Notes: "   "},
	}

	result, err := expenseService.ImportExpenses(nil, rows)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("Expected 2 imported, got %d", result.Imported)
	}

	if expenseRepo.Expenses[0].Notes == nil || *expenseRepo.Expenses[0].Notes != "lunch" {
		t.Errorf("Expected trimmed notes 'lunch', got %v", expenseRepo.Expenses[0].Notes)
	}
	if expenseRepo.Expenses[1].Notes != nil {
		t.Errorf("Expected blank notes to be nil, got %q", *expenseRepo.Expenses[1].Notes)
	}
}

func TestImportExpenses_ZeroDate(t *testing.T) {
	expenseService, expenseRepo, _ := newExpenseServiceFixture()

	rows := []export.Row{
		{Amount: decimal.RequireFromString("12.50"), Category: "Food"},
	}

	result, err := expenseService.ImportExpenses(nil, rows)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Imported != 0 {
		t.Errorf("Expected 0 imported, got %d", result.Imported)
	}
	if len(result.Errors) != 1 || result.Errors[0].Err != domain.ErrInvalidDate.Error() {
		t.Fatalf("Expected one invalid-date row error, got %+v", result.Errors)
	}
	if len(expenseRepo.Expenses) != 0 {
		t.Errorf("Expected no persisted expenses, got %d", len(expenseRepo.Expenses))
	}
}

func TestImportExpenses_StorageFailureAborts(t *testing.T) {
	expenseService, expenseRepo, _ := newExpenseServiceFixture()

	storageErr := errors.New("connection reset")
	expenseRepo.CreateFn = func(expense *domain.Expense) (*domain.Expense, error) {
		return nil, storageErr
	}

	rows := []export.Row{
		{Date: day("2026-08-01"), Amount: decimal.RequireFromString("12.50"), Category: "Food"},
	}

	_, err := expenseService.ImportExpenses(nil, rows)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, storageErr) {
		t.Errorf("Expected wrapped storage error, got %v", err)
	}
}

func TestImportExpenses_Empty(t *testing.T) {
	expenseService, _, _ := newExpenseServiceFixture()

	result, err := expenseService.ImportExpenses(nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Imported != 0 || len(result.Errors) != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
}

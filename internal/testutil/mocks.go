package testutil

import (
	"sort"
	"time"

	"pocketledger/internal/domain"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*domain.Category
	NextID     int32
	CreateFn   func(category *domain.Category) (*domain.Category, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[string]*domain.Category),
		NextID:     1,
	}
}

// Create inserts a category, returning the existing row on a name collision
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(category)
	}
	if existing, ok := m.Categories[category.Name]; ok {
		return existing, nil
	}
	created := &domain.Category{
		ID:        m.NextID,
		Name:      category.Name,
		CreatedAt: time.Now(),
	}
	m.NextID++
	m.Categories[created.Name] = created
	return created, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int32) (*domain.Category, error) {
	for _, category := range m.Categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByName retrieves a category by name
func (m *MockCategoryRepository) GetByName(name string) (*domain.Category, error) {
	if category, ok := m.Categories[name]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories ordered by name
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	m.Categories[category.Name] = category
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses []*domain.Expense
	NextID   int32
	CreateFn func(expense *domain.Expense) (*domain.Expense, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{NextID: 1}
}

// Create persists an expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	if m.CreateFn != nil {
		return m.CreateFn(expense)
	}
	created := &domain.Expense{
		ID:           m.NextID,
		OwnerID:      expense.OwnerID,
		CategoryID:   expense.CategoryID,
		CategoryName: expense.CategoryName,
		Date:         expense.Date,
		Amount:       expense.Amount,
		Notes:        expense.Notes,
		CreatedAt:    time.Now(),
	}
	m.NextID++
	m.Expenses = append(m.Expenses, created)
	return created, nil
}

// List returns filtered expenses ordered by date descending, ties broken
// by id descending, matching the real repository's ordering contract.
func (m *MockExpenseRepository) List(filters *domain.ExpenseFilters) ([]*domain.Expense, error) {
	var result []*domain.Expense
	for _, e := range m.Expenses {
		if !matches(e, filters) {
			continue
		}
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// SumByMonth returns per-month totals, newest month first
func (m *MockExpenseRepository) SumByMonth(ownerID *int32) ([]*domain.MonthlyTotal, error) {
	type key struct{ year, month int }
	totals := make(map[key]*domain.MonthlyTotal)
	for _, e := range m.Expenses {
		if ownerID != nil && (e.OwnerID == nil || *e.OwnerID != *ownerID) {
			continue
		}
		k := key{e.Date.Year(), int(e.Date.Month())}
		if totals[k] == nil {
			totals[k] = &domain.MonthlyTotal{Year: k.year, Month: k.month}
		}
		totals[k].Total = totals[k].Total.Add(e.Amount)
	}
	var result []*domain.MonthlyTotal
	for _, t := range totals {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Month > result[j].Month
	})
	return result, nil
}

func matches(e *domain.Expense, filters *domain.ExpenseFilters) bool {
	if filters == nil {
		return true
	}
	if filters.OwnerID != nil {
		if e.OwnerID == nil || *e.OwnerID != *filters.OwnerID {
			return false
		}
	}
	if filters.StartDate != nil && e.Date.Before(*filters.StartDate) {
		return false
	}
	if filters.EndDate != nil && e.Date.After(*filters.EndDate) {
		return false
	}
	if len(filters.Categories) > 0 {
		found := false
		for _, name := range filters.Categories {
			if e.CategoryName == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts map[string]*domain.Account
	NextID   int32
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[string]*domain.Account),
		NextID:   1,
	}
}

// Create inserts an account, failing on username collision
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	if _, ok := m.Accounts[account.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	created := &domain.Account{
		ID:           m.NextID,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		CreatedAt:    time.Now(),
	}
	m.NextID++
	m.Accounts[created.Username] = created
	return created, nil
}

// GetByID retrieves an account by ID
func (m *MockAccountRepository) GetByID(id int32) (*domain.Account, error) {
	for _, account := range m.Accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// GetByUsername retrieves an account by username
func (m *MockAccountRepository) GetByUsername(username string) (*domain.Account, error) {
	if account, ok := m.Accounts[username]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets []*domain.Budget
	NextID  int32
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{NextID: 1}
}

// Upsert creates or replaces a budget for one (owner, category, month)
func (m *MockBudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	for _, b := range m.Budgets {
		if b.CategoryID == budget.CategoryID && b.Year == budget.Year && b.Month == budget.Month &&
			sameOwner(b.OwnerID, budget.OwnerID) {
			b.Amount = budget.Amount
			return b, nil
		}
	}
	created := &domain.Budget{
		ID:           m.NextID,
		OwnerID:      budget.OwnerID,
		CategoryID:   budget.CategoryID,
		CategoryName: budget.CategoryName,
		Year:         budget.Year,
		Month:        budget.Month,
		Amount:       budget.Amount,
	}
	m.NextID++
	m.Budgets = append(m.Budgets, created)
	return created, nil
}

// GetByMonth retrieves budgets for a month ordered by category name
func (m *MockBudgetRepository) GetByMonth(ownerID *int32, year, month int) ([]*domain.Budget, error) {
	var result []*domain.Budget
	for _, b := range m.Budgets {
		if b.Year != year || b.Month != month {
			continue
		}
		if ownerID != nil && !sameOwner(b.OwnerID, ownerID) {
			continue
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CategoryName < result[j].CategoryName
	})
	return result, nil
}

func sameOwner(a, b *int32) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

package service

import (
	"strings"
	"testing"

	"pocketledger/internal/domain"
	"pocketledger/internal/testutil"
)

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo, nil)

	category, err := categoryService.CreateCategory(nil, "Groceries")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Name != "Groceries" {
		t.Errorf("Expected name 'Groceries', got %s", category.Name)
	}
	if category.ID == 0 {
		t.Error("Expected category to be assigned an ID")
	}
}

func TestCreateCategory_EmptyName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo, nil)

	_, err := categoryService.CreateCategory(nil, "   ")
	if err != domain.ErrNameRequired {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestCreateCategory_TrimsName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo, nil)

	category, err := categoryService.CreateCategory(nil, "  Groceries  ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Name != "Groceries" {
		t.Errorf("Expected trimmed name 'Groceries', got '%s'", category.Name)
	}
}

func TestCreateCategory_NameTooLong(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo, nil)

	_, err := categoryService.CreateCategory(nil, strings.Repeat("a", domain.MaxCategoryNameLength+1))
	if err != domain.ErrNameTooLong {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}

func TestCreateCategory_ExistingNameIsIdempotent(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo, nil)

	first, err := categoryService.CreateCategory(nil, "Groceries")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := categoryService.CreateCategory(nil, "Groceries")
	if err != nil {
		t.Fatalf("Expected no error on repeat create, got %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("Expected same category ID %d, got %d", first.ID, second.ID)
	}
	if len(categoryRepo.Categories) != 1 {
		t.Errorf("Expected a single stored category, got %d", len(categoryRepo.Categories))
	}
}

func TestGetCategories_SortedByName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo, nil)

	for _, name := range []string{"Transport", "Bills", "Food"} {
		if _, err := categoryService.CreateCategory(nil, name); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	categories, err := categoryService.GetCategories()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"Bills", "Food", "Transport"}
	if len(categories) != len(want) {
		t.Fatalf("Expected %d categories, got %d", len(want), len(categories))
	}
	for i, w := range want {
		if categories[i].Name != w {
			t.Errorf("Expected position %d to be %s, got %s", i, w, categories[i].Name)
		}
	}
}

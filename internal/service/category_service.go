package service

import (
	"strings"

	"pocketledger/internal/domain"
	"pocketledger/internal/ws"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
	publisher    ws.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, publisher ws.EventPublisher) *CategoryService {
	if publisher == nil {
		publisher = &ws.NoOpPublisher{}
	}
	return &CategoryService{categoryRepo: categoryRepo, publisher: publisher}
}

// CreateCategory inserts a category by name; creating an existing name
// returns the existing row unchanged.
func (s *CategoryService) CreateCategory(ownerID *int32, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}

	category, err := s.categoryRepo.Create(&domain.Category{Name: name})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ws.OwnerKey(ownerID), ws.CategoryCreated(category))
	return category, nil
}

// GetCategories retrieves all categories ordered by name
func (s *CategoryService) GetCategories() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

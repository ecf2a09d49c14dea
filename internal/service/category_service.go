package service

import (
	"context"

	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/repository"
)

// CategoryService exposes the category lookup list. Categories are
// shared, not per-user, so reads need no identity.
type CategoryService struct {
	categories *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db database.PGXDB) *CategoryService {
	return &CategoryService{categories: repository.NewCategoryRepository(db)}
}

// GetCategories returns all categories ordered by name.
func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

// CreateCategory adds a category to the shared list. Creation still
// requires a signed-in caller.
func (s *CategoryService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if _, err := requireIdentity(ctx); err != nil {
		return nil, err
	}
	if name == "" || len(name) > models.MaxCategoryNameLength {
		return nil, ErrInvalidCategoryName
	}
	return s.categories.Create(ctx, name, description)
}

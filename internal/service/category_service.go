package service

import (
	"strings"

	"github.com/centime/centime-backend/internal/domain"
)

// CategoryService handles category and sub-category management.
type CategoryService struct {
	categoryRepo    domain.CategoryRepository
	subCategoryRepo domain.SubCategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, subCategoryRepo domain.SubCategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
	}
}

// CategoryInput holds the fields accepted when creating or updating a category.
type CategoryInput struct {
	Name      string
	Color     *string
	Icon      *string
	SortOrder int
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	return s.categoryRepo.Create(&domain.Category{
		Name:      name,
		Color:     input.Color,
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
	})
}

// UpdateCategory updates an existing category.
func (s *CategoryService) UpdateCategory(id string, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.categoryRepo.Update(id, &domain.Category{
		Name:      name,
		Color:     input.Color,
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
	})
}

// DeleteCategory removes a category. The persistence layer rejects the delete
// while transactions still reference it.
func (s *CategoryService) DeleteCategory(id string) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}

// GetCategories returns all categories.
func (s *CategoryService) GetCategories() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

// SubCategoryInput holds the fields accepted when creating or updating a
// sub-category.
type SubCategoryInput struct {
	Name       string
	CategoryID string
	SortOrder  int
}

// CreateSubCategory creates a sub-category under an existing category.
func (s *CategoryService) CreateSubCategory(input SubCategoryInput) (*domain.SubCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return nil, err
	}
	return s.subCategoryRepo.Create(&domain.SubCategory{
		Name:       name,
		CategoryID: input.CategoryID,
		SortOrder:  input.SortOrder,
	})
}

// UpdateSubCategory updates an existing sub-category.
func (s *CategoryService) UpdateSubCategory(id string, input SubCategoryInput) (*domain.SubCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if _, err := s.subCategoryRepo.GetByID(id); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return nil, err
	}
	return s.subCategoryRepo.Update(id, &domain.SubCategory{
		Name:       name,
		CategoryID: input.CategoryID,
		SortOrder:  input.SortOrder,
	})
}

// DeleteSubCategory removes a sub-category.
func (s *CategoryService) DeleteSubCategory(id string) error {
	if _, err := s.subCategoryRepo.GetByID(id); err != nil {
		return err
	}
	return s.subCategoryRepo.Delete(id)
}

// GetSubCategories returns the sub-categories of a category.
func (s *CategoryService) GetSubCategories(categoryID string) ([]*domain.SubCategory, error) {
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}
	return s.subCategoryRepo.GetByCategory(categoryID)
}

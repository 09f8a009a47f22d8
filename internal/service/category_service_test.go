package service

import (
	"testing"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryFixture() (*CategoryService, *testutil.MockCategoryRepository, *testutil.MockSubCategoryRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	subCategoryRepo := testutil.NewMockSubCategoryRepository()
	return NewCategoryService(categoryRepo, subCategoryRepo), categoryRepo, subCategoryRepo
}

func TestCreateCategory(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	category, err := svc.CreateCategory(CategoryInput{Name: " Courses "})

	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Courses", category.Name)
}

func TestCreateCategory_NameRequired(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	_, err := svc.CreateCategory(CategoryInput{Name: "  "})

	assert.ErrorIs(t, err, domain.ErrNameRequired)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	_, err := svc.UpdateCategory("missing", CategoryInput{Name: "Courses"})

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCreateSubCategory_ParentMustExist(t *testing.T) {
	svc, categoryRepo, _ := newCategoryFixture()

	_, err := svc.CreateSubCategory(SubCategoryInput{Name: "Bio", CategoryID: "missing"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	categoryRepo.AddCategory(&domain.Category{ID: "cat-courses", Name: "Courses"})
	subCategory, err := svc.CreateSubCategory(SubCategoryInput{Name: "Bio", CategoryID: "cat-courses"})
	require.NoError(t, err)
	assert.Equal(t, "cat-courses", subCategory.CategoryID)
}

func TestGetSubCategories(t *testing.T) {
	svc, categoryRepo, subCategoryRepo := newCategoryFixture()

	categoryRepo.AddCategory(&domain.Category{ID: "cat-courses", Name: "Courses"})
	subCategoryRepo.AddSubCategory(&domain.SubCategory{ID: "sub-1", Name: "Bio", CategoryID: "cat-courses"})
	subCategoryRepo.AddSubCategory(&domain.SubCategory{ID: "sub-2", Name: "Marché", CategoryID: "cat-courses"})
	subCategoryRepo.AddSubCategory(&domain.SubCategory{ID: "sub-3", Name: "Autre", CategoryID: "cat-other"})

	subCategories, err := svc.GetSubCategories("cat-courses")

	require.NoError(t, err)
	assert.Len(t, subCategories, 2)
}

func TestDeleteSubCategory_NotFound(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	err := svc.DeleteSubCategory("missing")

	assert.ErrorIs(t, err, domain.ErrSubCategoryNotFound)
}

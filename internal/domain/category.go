package domain

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color,omitempty"`
	Icon      *string   `json:"icon,omitempty"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"categoryId"`
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id string) (*Category, error)
	GetAll() ([]*Category, error)
	Update(id string, category *Category) (*Category, error)
	Delete(id string) error
}

type SubCategoryRepository interface {
	Create(subCategory *SubCategory) (*SubCategory, error)
	GetByID(id string) (*SubCategory, error)
	GetByCategory(categoryID string) ([]*SubCategory, error)
	Update(id string, subCategory *SubCategory) (*SubCategory, error)
	Delete(id string) error
}

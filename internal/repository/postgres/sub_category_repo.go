package postgres

import (
	"context"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubCategoryRepository implements domain.SubCategoryRepository using PostgreSQL
type SubCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewSubCategoryRepository creates a new SubCategoryRepository
func NewSubCategoryRepository(pool *pgxpool.Pool) *SubCategoryRepository {
	return &SubCategoryRepository{pool: pool}
}

const subCategoryColumns = `id, name, category_id, sort_order, created_at, updated_at`

func scanSubCategory(row pgx.Row) (*domain.SubCategory, error) {
	var sc domain.SubCategory
	err := row.Scan(&sc.ID, &sc.Name, &sc.CategoryID, &sc.SortOrder, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// Create creates a new sub-category
func (r *SubCategoryRepository) Create(subCategory *domain.SubCategory) (*domain.SubCategory, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO sub_categories (id, name, category_id, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING `+subCategoryColumns,
		uuid.NewString(), subCategory.Name, subCategory.CategoryID, subCategory.SortOrder,
	)
	return scanSubCategory(row)
}

// GetByID retrieves a sub-category by its ID
func (r *SubCategoryRepository) GetByID(id string) (*domain.SubCategory, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+subCategoryColumns+` FROM sub_categories WHERE id = $1`, id)
	subCategory, err := scanSubCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSubCategoryNotFound
		}
		return nil, err
	}
	return subCategory, nil
}

// GetByCategory retrieves the sub-categories of a category
func (r *SubCategoryRepository) GetByCategory(categoryID string) ([]*domain.SubCategory, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+subCategoryColumns+` FROM sub_categories WHERE category_id = $1 ORDER BY sort_order, name`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.SubCategory
	for rows.Next() {
		subCategory, err := scanSubCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, subCategory)
	}
	return result, rows.Err()
}

// Update updates an existing sub-category
func (r *SubCategoryRepository) Update(id string, subCategory *domain.SubCategory) (*domain.SubCategory, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE sub_categories
		SET name = $2, category_id = $3, sort_order = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+subCategoryColumns,
		id, subCategory.Name, subCategory.CategoryID, subCategory.SortOrder,
	)
	updated, err := scanSubCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSubCategoryNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete permanently removes a sub-category
func (r *SubCategoryRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubCategoryNotFound
	}
	return nil
}

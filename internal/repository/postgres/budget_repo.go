package postgres

import (
	"context"
	"fmt"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, category_id, year, month, amount, created_at, updated_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var amount pgtype.Numeric
	err := row.Scan(&b.ID, &b.CategoryID, &b.Year, &b.Month, &amount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Amount = pgNumericToDecimal(amount)
	return &b, nil
}

const upsertBudgetSQL = `
	INSERT INTO budgets (id, category_id, year, month, amount)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (category_id, year, month)
	DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()
	RETURNING ` + budgetColumns

// Upsert inserts or replaces the row keyed by (categoryId, year, month)
func (r *BudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, upsertBudgetSQL,
		uuid.NewString(), budget.CategoryID, budget.Year, budget.Month, amount,
	)
	return scanBudget(row)
}

// UpsertBatch upserts several budgets in a single round trip
func (r *BudgetRepository) UpsertBatch(budgets []*domain.Budget) error {
	ctx := context.Background()
	batch := &pgx.Batch{}
	for _, b := range budgets {
		amount, err := decimalToPgNumeric(b.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		batch.Queue(upsertBudgetSQL, uuid.NewString(), b.CategoryID, b.Year, b.Month, amount)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range budgets {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetByCategory retrieves the budget of a category for a period
func (r *BudgetRepository) GetByCategory(categoryID string, period domain.Period) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE category_id = $1 AND year = $2 AND month = $3`,
		categoryID, period.Year, period.Month,
	)
	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetByPeriod retrieves all budgets of a period
func (r *BudgetRepository) GetByPeriod(period domain.Period) ([]*domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE year = $1 AND month = $2`,
		period.Year, period.Month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, budget)
	}
	return result, rows.Err()
}

// Delete permanently removes a budget
func (r *BudgetRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget holds the monthly envelope for one category. At most one row exists
// per (category, year, month).
type Budget struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type BudgetRepository interface {
	// Upsert inserts or replaces the row keyed by (categoryId, year, month).
	Upsert(budget *Budget) (*Budget, error)
	UpsertBatch(budgets []*Budget) error
	GetByCategory(categoryID string, period Period) (*Budget, error)
	GetByPeriod(period Period) ([]*Budget, error)
	Delete(id string) error
}

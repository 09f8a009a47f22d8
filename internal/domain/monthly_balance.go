package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyBalance is the persisted reconciliation snapshot for one period. It
// is a derived cache keyed uniquely by (year, month): always reproducible by
// replaying the transactions and budgets of that month, and the only state the
// carry-over resolver reads.
type MonthlyBalance struct {
	ID        string          `json:"id"`
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Forecast  decimal.Decimal `json:"forecast"`
	Committed decimal.Decimal `json:"committed"`
	Surplus   decimal.Decimal `json:"surplus"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Period returns the snapshot's period.
func (m *MonthlyBalance) Period() Period {
	return Period{Year: m.Year, Month: m.Month}
}

type MonthlyBalanceRepository interface {
	// Upsert atomically inserts or replaces the snapshot keyed by
	// (year, month). A failed upsert must not leave a partial row.
	Upsert(balance *MonthlyBalance) (*MonthlyBalance, error)
	GetByPeriod(period Period) (*MonthlyBalance, error)
	// SumSurplusBefore sums surplus over every snapshot strictly before the
	// period in lexicographic (year, month) order.
	SumSurplusBefore(period Period) (decimal.Decimal, error)
}

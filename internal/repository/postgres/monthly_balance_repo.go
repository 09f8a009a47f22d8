package postgres

import (
	"context"
	"fmt"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// MonthlyBalanceRepository implements domain.MonthlyBalanceRepository using
// PostgreSQL
type MonthlyBalanceRepository struct {
	pool *pgxpool.Pool
}

// NewMonthlyBalanceRepository creates a new MonthlyBalanceRepository
func NewMonthlyBalanceRepository(pool *pgxpool.Pool) *MonthlyBalanceRepository {
	return &MonthlyBalanceRepository{pool: pool}
}

const monthlyBalanceColumns = `id, year, month, forecast, committed, surplus, created_at, updated_at`

func scanMonthlyBalance(row pgx.Row) (*domain.MonthlyBalance, error) {
	var b domain.MonthlyBalance
	var forecast, committed, surplus pgtype.Numeric
	err := row.Scan(&b.ID, &b.Year, &b.Month, &forecast, &committed, &surplus, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Forecast = pgNumericToDecimal(forecast)
	b.Committed = pgNumericToDecimal(committed)
	b.Surplus = pgNumericToDecimal(surplus)
	return &b, nil
}

// Upsert inserts or replaces the snapshot keyed by (year, month). The single
// INSERT ... ON CONFLICT statement is atomic: concurrent upserts serialize on
// the unique index and the row is never observable half-written.
func (r *MonthlyBalanceRepository) Upsert(balance *domain.MonthlyBalance) (*domain.MonthlyBalance, error) {
	ctx := context.Background()
	forecast, err := decimalToPgNumeric(balance.Forecast)
	if err != nil {
		return nil, fmt.Errorf("invalid forecast: %w", err)
	}
	committed, err := decimalToPgNumeric(balance.Committed)
	if err != nil {
		return nil, fmt.Errorf("invalid committed: %w", err)
	}
	surplus, err := decimalToPgNumeric(balance.Surplus)
	if err != nil {
		return nil, fmt.Errorf("invalid surplus: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO monthly_balances (id, year, month, forecast, committed, surplus)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (year, month)
		DO UPDATE SET forecast = EXCLUDED.forecast, committed = EXCLUDED.committed,
			surplus = EXCLUDED.surplus, updated_at = now()
		RETURNING `+monthlyBalanceColumns,
		uuid.NewString(), balance.Year, balance.Month, forecast, committed, surplus,
	)
	return scanMonthlyBalance(row)
}

// GetByPeriod retrieves the snapshot of a period
func (r *MonthlyBalanceRepository) GetByPeriod(period domain.Period) (*domain.MonthlyBalance, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+monthlyBalanceColumns+` FROM monthly_balances
		WHERE year = $1 AND month = $2`,
		period.Year, period.Month,
	)
	balance, err := scanMonthlyBalance(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return balance, nil
}

// SumSurplusBefore sums surplus over every snapshot strictly before the period
// in lexicographic (year, month) order
func (r *MonthlyBalanceRepository) SumSurplusBefore(period domain.Period) (decimal.Decimal, error) {
	ctx := context.Background()
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(surplus), 0) FROM monthly_balances
		WHERE year < $1 OR (year = $1 AND month < $2)`,
		period.Year, period.Month,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

package service

import (
	"github.com/centime/centime-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// The three ledger formulas below are the only place spend, forecast and
// committed totals are derived. Every service works from these instead of
// re-deriving sign or status predicates locally.

// forecastStatuses are the statuses that count toward monthly totals.
// Cancelled rows never count anywhere.
var forecastStatuses = []domain.TransactionStatus{domain.StatusCompleted, domain.StatusPending}

// LedgerTotal sums the signed amounts of rows having one of the given
// statuses. Transfers contribute their source-perspective amount once; over a
// whole month both sides live in the same period, so transfers cancel out of
// per-account views but not of this raw signed sum.
func LedgerTotal(rows []*domain.Transaction, statuses ...domain.TransactionStatus) decimal.Decimal {
	total := decimal.Zero
	for _, t := range rows {
		for _, s := range statuses {
			if t.Status == s {
				total = total.Add(t.Amount)
				break
			}
		}
	}
	return total
}

// ForecastTotal is the whole-ledger signed sum of Completed and Pending
// amounts for a month's rows. It drives the persisted snapshot's forecast.
func ForecastTotal(rows []*domain.Transaction) decimal.Decimal {
	return LedgerTotal(rows, forecastStatuses...)
}

// SpentByCategory computes per-category spend from a month's rows: the
// absolute value of the sum of negative Completed/Pending amounts. Transfers
// count when categorized; Cancelled rows and uncategorized rows never count.
func SpentByCategory(rows []*domain.Transaction) map[string]decimal.Decimal {
	spent := make(map[string]decimal.Decimal)
	for _, t := range rows {
		if t.CategoryID == nil {
			continue
		}
		if t.Status != domain.StatusCompleted && t.Status != domain.StatusPending {
			continue
		}
		if !t.Amount.IsNegative() {
			continue
		}
		spent[*t.CategoryID] = spent[*t.CategoryID].Add(t.Amount.Abs())
	}
	return spent
}

// CommittedTotal sums max(0, budgeted - spent) over every category that has a
// budget row or spend this month. Over-spent categories contribute zero, never
// a negative amount; what was already spent is accounted for by the forecast.
func CommittedTotal(budgets []*domain.Budget, spent map[string]decimal.Decimal) decimal.Decimal {
	budgeted := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		budgeted[b.CategoryID] = b.Amount
	}

	seen := make(map[string]bool, len(budgeted)+len(spent))
	for id := range budgeted {
		seen[id] = true
	}
	for id := range spent {
		seen[id] = true
	}

	total := decimal.Zero
	for id := range seen {
		remaining := budgeted[id].Sub(spent[id])
		if remaining.IsPositive() {
			total = total.Add(remaining)
		}
	}
	return total
}

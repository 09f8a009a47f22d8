package service

import (
	"sync"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SnapshotInvalidator is notified whenever a month's snapshot changes.
// Implementations must drop every cached read model, not just the notified
// period's: later periods embed the period's surplus via carry-over, and
// balances are all-time sums.
type SnapshotInvalidator interface {
	Invalidate(period domain.Period)
}

// ReconcileService recomputes and persists the MonthlyBalance snapshot for a
// period, and resolves the cumulative carry-over from the persisted snapshots.
// Recomputations for the same period are serialized so concurrent mutations
// converge on the same snapshot instead of overwriting each other with stale
// inputs.
type ReconcileService struct {
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
	balanceRepo     domain.MonthlyBalanceRepository
	invalidator     SnapshotInvalidator

	mu    sync.Mutex
	locks map[domain.Period]*sync.Mutex
}

// NewReconcileService creates a new ReconcileService. The invalidator may be nil.
func NewReconcileService(transactionRepo domain.TransactionRepository, budgetRepo domain.BudgetRepository, balanceRepo domain.MonthlyBalanceRepository, invalidator SnapshotInvalidator) *ReconcileService {
	return &ReconcileService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		balanceRepo:     balanceRepo,
		invalidator:     invalidator,
		locks:           make(map[domain.Period]*sync.Mutex),
	}
}

func (s *ReconcileService) periodLock(period domain.Period) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[period]
	if !ok {
		l = &sync.Mutex{}
		s.locks[period] = l
	}
	return l
}

// RecomputeMonth replays the period's transactions and budgets and upserts the
// snapshot. It is idempotent: unchanged inputs yield an identical snapshot.
// Any failure surfaces to the caller; a snapshot is never half-written because
// the repository upsert is a single atomic statement.
func (s *ReconcileService) RecomputeMonth(period domain.Period) (*domain.MonthlyBalance, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}

	l := s.periodLock(period)
	l.Lock()
	defer l.Unlock()

	rows, err := s.transactionRepo.ListByPeriod(period)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.GetByPeriod(period)
	if err != nil {
		return nil, err
	}

	forecast := ForecastTotal(rows)
	committed := CommittedTotal(budgets, SpentByCategory(rows))
	surplus := forecast.Sub(committed)

	snapshot, err := s.balanceRepo.Upsert(&domain.MonthlyBalance{
		Year:      period.Year,
		Month:     period.Month,
		Forecast:  forecast,
		Committed: committed,
		Surplus:   surplus,
	})
	if err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(period)
	}

	log.Debug().
		Int("year", period.Year).
		Int("month", period.Month).
		Str("forecast", forecast.StringFixed(2)).
		Str("committed", committed.StringFixed(2)).
		Str("surplus", surplus.StringFixed(2)).
		Msg("month reconciled")

	return snapshot, nil
}

// RecomputePeriods reconciles each distinct period exactly once. Batch
// mutations use this after all their writes, instead of reconciling per row.
func (s *ReconcileService) RecomputePeriods(periods ...domain.Period) error {
	seen := make(map[domain.Period]bool, len(periods))
	for _, p := range periods {
		if seen[p] {
			continue
		}
		seen[p] = true
		if _, err := s.RecomputeMonth(p); err != nil {
			return err
		}
	}
	return nil
}

// BackfillAllMonths replays every distinct period present in the ledger and
// returns the number of reconciled months.
func (s *ReconcileService) BackfillAllMonths() (int, error) {
	periods, err := s.transactionRepo.DistinctPeriods()
	if err != nil {
		return 0, err
	}
	for _, p := range periods {
		if _, err := s.RecomputeMonth(p); err != nil {
			return 0, err
		}
	}
	return len(periods), nil
}

// CarryOver sums the surplus of every snapshot strictly before the period. It
// is a pure read over persisted snapshots: it never re-scans the ledger and
// never triggers reconciliation. No prior months means zero.
func (s *ReconcileService) CarryOver(period domain.Period) (decimal.Decimal, error) {
	if !period.Valid() {
		return decimal.Zero, domain.ErrInvalidPeriod
	}
	return s.balanceRepo.SumSurplusBefore(period)
}

// GetMonth returns the persisted snapshot for a period, if any.
func (s *ReconcileService) GetMonth(period domain.Period) (*domain.MonthlyBalance, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}
	return s.balanceRepo.GetByPeriod(period)
}

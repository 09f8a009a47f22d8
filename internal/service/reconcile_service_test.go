package service

import (
	"sync"
	"testing"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReconcileFixture() (*ReconcileService, *testutil.MockTransactionRepository, *testutil.MockBudgetRepository, *testutil.MockMonthlyBalanceRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	balanceRepo := testutil.NewMockMonthlyBalanceRepository()
	svc := NewReconcileService(transactionRepo, budgetRepo, balanceRepo, nil)
	return svc, transactionRepo, budgetRepo, balanceRepo
}

func TestRecomputeMonth_ForecastCommittedSurplus(t *testing.T) {
	svc, transactionRepo, budgetRepo, _ := newReconcileFixture()

	groceries := "cat-groceries"
	transactionRepo.AddTransaction(&domain.Transaction{
		Label:     "Salary",
		Amount:    decimal.NewFromInt(2500),
		Year:      2026,
		Month:     3,
		Status:    domain.StatusCompleted,
		AccountID: "acc-checking",
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		Label:      "Supermarket",
		Amount:     decimal.NewFromInt(-60),
		Year:       2026,
		Month:      3,
		Status:     domain.StatusCompleted,
		AccountID:  "acc-checking",
		CategoryID: &groceries,
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		Label:     "Rent",
		Amount:    decimal.NewFromInt(-900),
		Year:      2026,
		Month:     3,
		Status:    domain.StatusPending,
		AccountID: "acc-checking",
	})
	budgetRepo.AddBudget(&domain.Budget{
		CategoryID: groceries,
		Year:       2026,
		Month:      3,
		Amount:     decimal.NewFromInt(150),
	})

	snapshot, err := svc.RecomputeMonth(domain.Period{Year: 2026, Month: 3})

	require.NoError(t, err)
	assert.Equal(t, "1540.00", snapshot.Forecast.StringFixed(2))
	assert.Equal(t, "90.00", snapshot.Committed.StringFixed(2))
	assert.Equal(t, "1450.00", snapshot.Surplus.StringFixed(2))
}

func TestRecomputeMonth_CancelledRowsNeverCount(t *testing.T) {
	svc, transactionRepo, _, _ := newReconcileFixture()

	transactionRepo.AddTransaction(&domain.Transaction{
		Label:     "Income",
		Amount:    decimal.NewFromInt(1000),
		Year:      2026,
		Month:     1,
		Status:    domain.StatusCompleted,
		AccountID: "acc-checking",
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		Label:     "Cancelled order",
		Amount:    decimal.NewFromInt(-400),
		Year:      2026,
		Month:     1,
		Status:    domain.StatusCancelled,
		AccountID: "acc-checking",
	})

	snapshot, err := svc.RecomputeMonth(domain.Period{Year: 2026, Month: 1})

	require.NoError(t, err)
	assert.Equal(t, "1000.00", snapshot.Forecast.StringFixed(2))
}

func TestRecomputeMonth_Idempotent(t *testing.T) {
	svc, transactionRepo, _, balanceRepo := newReconcileFixture()

	transactionRepo.AddTransaction(&domain.Transaction{
		Label:     "Income",
		Amount:    decimal.NewFromInt(300),
		Year:      2026,
		Month:     2,
		Status:    domain.StatusCompleted,
		AccountID: "acc-checking",
	})

	period := domain.Period{Year: 2026, Month: 2}
	first, err := svc.RecomputeMonth(period)
	require.NoError(t, err)
	second, err := svc.RecomputeMonth(period)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Forecast.StringFixed(2), second.Forecast.StringFixed(2))
	assert.Equal(t, first.Surplus.StringFixed(2), second.Surplus.StringFixed(2))
	assert.Len(t, balanceRepo.Balances, 1)
}

func TestRecomputeMonth_InvalidPeriod(t *testing.T) {
	svc, _, _, _ := newReconcileFixture()

	_, err := svc.RecomputeMonth(domain.Period{Year: 2026, Month: 13})

	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestRecomputeMonth_ConcurrentSamePeriod(t *testing.T) {
	svc, transactionRepo, _, balanceRepo := newReconcileFixture()

	transactionRepo.AddTransaction(&domain.Transaction{
		Label:     "Income",
		Amount:    decimal.NewFromInt(100),
		Year:      2026,
		Month:     4,
		Status:    domain.StatusCompleted,
		AccountID: "acc-checking",
	})

	period := domain.Period{Year: 2026, Month: 4}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecomputeMonth(period)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, balanceRepo.Balances, 1)
	snapshot := balanceRepo.Balances[period]
	assert.Equal(t, "100.00", snapshot.Forecast.StringFixed(2))
}

func TestRecomputePeriods_DeduplicatesPeriods(t *testing.T) {
	svc, transactionRepo, _, balanceRepo := newReconcileFixture()

	transactionRepo.AddTransaction(&domain.Transaction{
		Label:     "Income",
		Amount:    decimal.NewFromInt(50),
		Year:      2026,
		Month:     5,
		Status:    domain.StatusCompleted,
		AccountID: "acc-checking",
	})

	upserts := 0
	balanceRepo.UpsertFn = func(balance *domain.MonthlyBalance) (*domain.MonthlyBalance, error) {
		upserts++
		balanceRepo.Balances[balance.Period()] = balance
		return balance, nil
	}

	p := domain.Period{Year: 2026, Month: 5}
	err := svc.RecomputePeriods(p, p, p)

	require.NoError(t, err)
	assert.Equal(t, 1, upserts)
}

func TestBackfillAllMonths(t *testing.T) {
	svc, transactionRepo, _, balanceRepo := newReconcileFixture()

	transactionRepo.AddTransaction(&domain.Transaction{
		Label: "Jan", Amount: decimal.NewFromInt(100), Year: 2026, Month: 1,
		Status: domain.StatusCompleted, AccountID: "acc-checking",
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		Label: "Feb", Amount: decimal.NewFromInt(-40), Year: 2026, Month: 2,
		Status: domain.StatusCompleted, AccountID: "acc-checking",
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		Label: "Dec", Amount: decimal.NewFromInt(10), Year: 2025, Month: 12,
		Status: domain.StatusPending, AccountID: "acc-checking",
	})

	count, err := svc.BackfillAllMonths()

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, balanceRepo.Balances, 3)
	assert.Equal(t, "100.00", balanceRepo.Balances[domain.Period{Year: 2026, Month: 1}].Surplus.StringFixed(2))
	assert.Equal(t, "-40.00", balanceRepo.Balances[domain.Period{Year: 2026, Month: 2}].Surplus.StringFixed(2))
}

func TestCarryOver_SumsStrictlyPriorSurpluses(t *testing.T) {
	svc, _, _, balanceRepo := newReconcileFixture()

	balanceRepo.AddBalance(&domain.MonthlyBalance{
		Year: 2026, Month: 1, Surplus: decimal.NewFromInt(120),
	})
	balanceRepo.AddBalance(&domain.MonthlyBalance{
		Year: 2026, Month: 2, Surplus: decimal.NewFromInt(-30),
	})
	balanceRepo.AddBalance(&domain.MonthlyBalance{
		Year: 2026, Month: 3, Surplus: decimal.NewFromInt(999),
	})

	carryOver, err := svc.CarryOver(domain.Period{Year: 2026, Month: 3})

	require.NoError(t, err)
	assert.Equal(t, "90.00", carryOver.StringFixed(2))
}

func TestCarryOver_LaterMonthDoesNotContribute(t *testing.T) {
	svc, _, _, balanceRepo := newReconcileFixture()

	balanceRepo.AddBalance(&domain.MonthlyBalance{
		Year: 2026, Month: 1, Surplus: decimal.NewFromInt(120),
	})
	balanceRepo.AddBalance(&domain.MonthlyBalance{
		Year: 2026, Month: 2, Surplus: decimal.NewFromInt(-30),
	})

	before, err := svc.CarryOver(domain.Period{Year: 2026, Month: 3})
	require.NoError(t, err)

	balanceRepo.AddBalance(&domain.MonthlyBalance{
		Year: 2026, Month: 5, Surplus: decimal.NewFromInt(700),
	})

	after, err := svc.CarryOver(domain.Period{Year: 2026, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, before.StringFixed(2), after.StringFixed(2))
}

func TestCarryOver_CrossYearOrdering(t *testing.T) {
	svc, _, _, balanceRepo := newReconcileFixture()

	balanceRepo.AddBalance(&domain.MonthlyBalance{
		Year: 2025, Month: 12, Surplus: decimal.NewFromInt(80),
	})
	balanceRepo.AddBalance(&domain.MonthlyBalance{
		Year: 2026, Month: 1, Surplus: decimal.NewFromInt(20),
	})

	carryOver, err := svc.CarryOver(domain.Period{Year: 2026, Month: 2})

	require.NoError(t, err)
	assert.Equal(t, "100.00", carryOver.StringFixed(2))
}

func TestCarryOver_NoPriorMonths(t *testing.T) {
	svc, _, _, _ := newReconcileFixture()

	carryOver, err := svc.CarryOver(domain.Period{Year: 2026, Month: 1})

	require.NoError(t, err)
	assert.True(t, carryOver.IsZero())
}

func TestGetMonth_NotFound(t *testing.T) {
	svc, _, _, _ := newReconcileFixture()

	_, err := svc.GetMonth(domain.Period{Year: 2026, Month: 6})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type recordingInvalidator struct {
	periods []domain.Period
}

func (r *recordingInvalidator) Invalidate(period domain.Period) {
	r.periods = append(r.periods, period)
}

func TestRecomputeMonth_NotifiesInvalidator(t *testing.T) {
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	balanceRepo := testutil.NewMockMonthlyBalanceRepository()
	invalidator := &recordingInvalidator{}
	svc := NewReconcileService(transactionRepo, budgetRepo, balanceRepo, invalidator)

	_, err := svc.RecomputeMonth(domain.Period{Year: 2026, Month: 7})

	require.NoError(t, err)
	require.Len(t, invalidator.periods, 1)
	assert.Equal(t, domain.Period{Year: 2026, Month: 7}, invalidator.periods[0])
}

package service

import (
	"encoding/json"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DashboardCache caches rendered dashboard payloads per period. Implementations
// are best-effort: a miss or a failed write only costs a recomputation.
type DashboardCache interface {
	Get(period domain.Period) ([]byte, bool)
	Set(period domain.Period, payload []byte)
}

// DashboardService assembles the month overview shown on the home screen.
type DashboardService struct {
	accountRepo     domain.AccountRepository
	bucketRepo      domain.BucketRepository
	transactionRepo domain.TransactionRepository
	balanceService  *BalanceService
	budgetService   *BudgetService
	reconciler      *ReconcileService
	cache           DashboardCache
}

// NewDashboardService creates a new DashboardService. The cache may be nil.
func NewDashboardService(
	accountRepo domain.AccountRepository,
	bucketRepo domain.BucketRepository,
	transactionRepo domain.TransactionRepository,
	balanceService *BalanceService,
	budgetService *BudgetService,
	reconciler *ReconcileService,
	cache DashboardCache,
) *DashboardService {
	return &DashboardService{
		accountRepo:     accountRepo,
		bucketRepo:      bucketRepo,
		transactionRepo: transactionRepo,
		balanceService:  balanceService,
		budgetService:   budgetService,
		reconciler:      reconciler,
		cache:           cache,
	}
}

// AccountOverview is one account line on the dashboard, with its display
// balance.
type AccountOverview struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Kind    domain.AccountKind `json:"kind"`
	Color   *string            `json:"color,omitempty"`
	Balance decimal.Decimal    `json:"balance"`
}

// Dashboard is the month overview payload.
type Dashboard struct {
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	Real       decimal.Decimal    `json:"real"`
	Pending    decimal.Decimal    `json:"pending"`
	Forecast   decimal.Decimal    `json:"forecast"`
	CarryOver  decimal.Decimal    `json:"carryOver"`
	Available  decimal.Decimal    `json:"available"`
	Accounts   []*AccountOverview `json:"accounts"`
	OverBudget []*CategoryBudget  `json:"overBudgetCategories"`
}

// GetDashboard builds the overview for a period: whole-ledger month totals,
// the carry-over of prior surpluses, the resulting amount available to spend,
// per-account display balances, and the over-budget categories.
func (s *DashboardService) GetDashboard(period domain.Period) (*Dashboard, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}

	if s.cache != nil {
		if payload, ok := s.cache.Get(period); ok {
			var cached Dashboard
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
			log.Warn().Int("year", period.Year).Int("month", period.Month).Msg("discarding unreadable dashboard cache entry")
		}
	}

	rows, err := s.transactionRepo.ListByPeriod(period)
	if err != nil {
		return nil, err
	}

	real := LedgerTotal(rows, domain.StatusCompleted)
	pending := LedgerTotal(rows, domain.StatusPending)
	forecast := real.Add(pending)

	carryOver, err := s.reconciler.CarryOver(period)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountOverviews()
	if err != nil {
		return nil, err
	}

	summary, err := s.budgetService.Summary(period)
	if err != nil {
		return nil, err
	}
	overBudget := make([]*CategoryBudget, 0)
	for _, row := range summary {
		if row.Spent.GreaterThan(row.Budgeted) && row.Spent.IsPositive() {
			overBudget = append(overBudget, row)
		}
	}

	dashboard := &Dashboard{
		Year:       period.Year,
		Month:      period.Month,
		Real:       real,
		Pending:    pending,
		Forecast:   forecast,
		CarryOver:  carryOver,
		Available:  forecast.Add(carryOver),
		Accounts:   accounts,
		OverBudget: overBudget,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(dashboard); err == nil {
			s.cache.Set(period, payload)
		}
	}
	return dashboard, nil
}

func (s *DashboardService) accountOverviews() ([]*AccountOverview, error) {
	accounts, err := s.accountRepo.GetAll()
	if err != nil {
		return nil, err
	}

	result := make([]*AccountOverview, len(accounts))
	for i, a := range accounts {
		balance, err := s.displayBalance(a)
		if err != nil {
			return nil, err
		}
		result[i] = &AccountOverview{
			ID:      a.ID,
			Name:    a.Name,
			Kind:    a.Kind,
			Color:   a.Color,
			Balance: balance,
		}
	}
	return result, nil
}

// displayBalance converts the core's raw source-perspective balance into what
// the user expects to read. Savings and investment accounts negate the raw
// transaction amounts on both columns, so money moved into savings shows as a
// gain whichever side of the row carries the account; bucket base amounts stay
// positive. This is the single place the inversion happens.
func (s *DashboardService) displayBalance(account *domain.Account) (decimal.Decimal, error) {
	if !account.Kind.IsBucketed() {
		return s.balanceService.AccountBalance(account.ID)
	}

	rows, err := s.transactionRepo.ListByAccount(account.ID, completedOnly)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range rows {
		total = total.Sub(t.Amount)
	}

	buckets, err := s.bucketRepo.GetByAccount(account.ID)
	if err != nil {
		return decimal.Zero, err
	}
	for _, b := range buckets {
		total = total.Add(b.BaseAmount)
	}
	return total, nil
}

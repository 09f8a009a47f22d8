package service

import (
	"sort"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget upserts and per-category consumption.
type BudgetService struct {
	budgetRepo      domain.BudgetRepository
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
	reconciler      *ReconcileService
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository, transactionRepo domain.TransactionRepository, reconciler *ReconcileService) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		reconciler:      reconciler,
	}
}

// CategoryBudget is one row of the monthly budget summary.
type CategoryBudget struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Budgeted     decimal.Decimal `json:"budgeted"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
}

// UpsertBudget sets the monthly envelope of a category and reconciles the
// month. Amount must be non-negative.
func (s *BudgetService) UpsertBudget(categoryID string, period domain.Period, amount decimal.Decimal) (*domain.Budget, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}
	if amount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Upsert(&domain.Budget{
		CategoryID: categoryID,
		Year:       period.Year,
		Month:      period.Month,
		Amount:     amount,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.reconciler.RecomputeMonth(period); err != nil {
		return nil, err
	}
	return budget, nil
}

// Summary returns budgeted, spent and remaining per category for a month.
// Every category appears, including those without a budget row.
func (s *BudgetService) Summary(period domain.Period) ([]*CategoryBudget, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}

	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.GetByPeriod(period)
	if err != nil {
		return nil, err
	}
	rows, err := s.transactionRepo.ListByPeriod(period)
	if err != nil {
		return nil, err
	}

	budgeted := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		budgeted[b.CategoryID] = b.Amount
	}
	spent := SpentByCategory(rows)

	result := make([]*CategoryBudget, 0, len(categories))
	for _, c := range categories {
		result = append(result, &CategoryBudget{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Budgeted:     budgeted[c.ID],
			Spent:        spent[c.ID],
			Remaining:    budgeted[c.ID].Sub(spent[c.ID]),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CategoryName < result[j].CategoryName
	})
	return result, nil
}

// CopyFromPreviousMonth replicates the previous month's budgets into the
// target month, then reconciles the target once. Existing rows are replaced.
func (s *BudgetService) CopyFromPreviousMonth(period domain.Period) (int, error) {
	if !period.Valid() {
		return 0, domain.ErrInvalidPeriod
	}

	previous, err := s.budgetRepo.GetByPeriod(period.Previous())
	if err != nil {
		return 0, err
	}
	if len(previous) == 0 {
		return 0, domain.ErrNothingToCopy
	}

	copies := make([]*domain.Budget, len(previous))
	for i, b := range previous {
		copies[i] = &domain.Budget{
			CategoryID: b.CategoryID,
			Year:       period.Year,
			Month:      period.Month,
			Amount:     b.Amount,
		}
	}
	if err := s.budgetRepo.UpsertBatch(copies); err != nil {
		return 0, err
	}

	if _, err := s.reconciler.RecomputeMonth(period); err != nil {
		return 0, err
	}
	return len(copies), nil
}

// Calibrate raises every over-spent budget up to its spend, then reconciles
// the month once.
func (s *BudgetService) Calibrate(period domain.Period) (int, error) {
	summary, err := s.Summary(period)
	if err != nil {
		return 0, err
	}

	var adjusted []*domain.Budget
	for _, row := range summary {
		if row.Spent.GreaterThan(row.Budgeted) && row.Spent.IsPositive() {
			adjusted = append(adjusted, &domain.Budget{
				CategoryID: row.CategoryID,
				Year:       period.Year,
				Month:      period.Month,
				Amount:     row.Spent,
			})
		}
	}
	if len(adjusted) == 0 {
		return 0, domain.ErrNothingToCalibrate
	}

	if err := s.budgetRepo.UpsertBatch(adjusted); err != nil {
		return 0, err
	}
	if _, err := s.reconciler.RecomputeMonth(period); err != nil {
		return 0, err
	}
	return len(adjusted), nil
}

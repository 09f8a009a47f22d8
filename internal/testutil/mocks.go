package testutil

import (
	"sort"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts map[string]*domain.Account
	DeleteFn func(id string) error
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{Accounts: make(map[string]*domain.Account)}
}

// AddAccount adds an account to the mock repository (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.Accounts[account.ID] = account
}

// Create creates a new account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	m.Accounts[account.ID] = account
	return account, nil
}

// GetByID retrieves an account by ID
func (m *MockAccountRepository) GetByID(id string) (*domain.Account, error) {
	if a, ok := m.Accounts[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetAll retrieves all accounts ordered by sort order then name
func (m *MockAccountRepository) GetAll() ([]*domain.Account, error) {
	result := make([]*domain.Account, 0, len(m.Accounts))
	for _, a := range m.Accounts {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Update updates an existing account
func (m *MockAccountRepository) Update(id string, account *domain.Account) (*domain.Account, error) {
	if _, ok := m.Accounts[id]; !ok {
		return nil, domain.ErrAccountNotFound
	}
	account.ID = id
	m.Accounts[id] = account
	return account, nil
}

// Delete removes an account
func (m *MockAccountRepository) Delete(id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	if _, ok := m.Accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.Accounts, id)
	return nil
}

// MockBucketRepository is a mock implementation of domain.BucketRepository
type MockBucketRepository struct {
	Buckets map[string]*domain.Bucket
}

// NewMockBucketRepository creates a new MockBucketRepository
func NewMockBucketRepository() *MockBucketRepository {
	return &MockBucketRepository{Buckets: make(map[string]*domain.Bucket)}
}

// AddBucket adds a bucket to the mock repository (helper for tests)
func (m *MockBucketRepository) AddBucket(bucket *domain.Bucket) {
	m.Buckets[bucket.ID] = bucket
}

// Create creates a new bucket
func (m *MockBucketRepository) Create(bucket *domain.Bucket) (*domain.Bucket, error) {
	if bucket.ID == "" {
		bucket.ID = uuid.NewString()
	}
	m.Buckets[bucket.ID] = bucket
	return bucket, nil
}

// GetByID retrieves a bucket by ID
func (m *MockBucketRepository) GetByID(id string) (*domain.Bucket, error) {
	if b, ok := m.Buckets[id]; ok {
		return b, nil
	}
	return nil, domain.ErrBucketNotFound
}

// GetByAccount retrieves the buckets of an account
func (m *MockBucketRepository) GetByAccount(accountID string) ([]*domain.Bucket, error) {
	var result []*domain.Bucket
	for _, b := range m.Buckets {
		if b.AccountID == accountID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

// Update updates an existing bucket
func (m *MockBucketRepository) Update(id string, bucket *domain.Bucket) (*domain.Bucket, error) {
	if _, ok := m.Buckets[id]; !ok {
		return nil, domain.ErrBucketNotFound
	}
	bucket.ID = id
	m.Buckets[id] = bucket
	return bucket, nil
}

// Delete removes a bucket
func (m *MockBucketRepository) Delete(id string) error {
	if _, ok := m.Buckets[id]; !ok {
		return domain.ErrBucketNotFound
	}
	delete(m.Buckets, id)
	return nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]*domain.Category)}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id string) (*domain.Category, error) {
	if c, ok := m.Categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	result := make([]*domain.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update updates an existing category
func (m *MockCategoryRepository) Update(id string, category *domain.Category) (*domain.Category, error) {
	if _, ok := m.Categories[id]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	category.ID = id
	m.Categories[id] = category
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id string) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockSubCategoryRepository is a mock implementation of domain.SubCategoryRepository
type MockSubCategoryRepository struct {
	SubCategories map[string]*domain.SubCategory
}

// NewMockSubCategoryRepository creates a new MockSubCategoryRepository
func NewMockSubCategoryRepository() *MockSubCategoryRepository {
	return &MockSubCategoryRepository{SubCategories: make(map[string]*domain.SubCategory)}
}

// AddSubCategory adds a sub-category to the mock repository (helper for tests)
func (m *MockSubCategoryRepository) AddSubCategory(subCategory *domain.SubCategory) {
	m.SubCategories[subCategory.ID] = subCategory
}

// Create creates a new sub-category
func (m *MockSubCategoryRepository) Create(subCategory *domain.SubCategory) (*domain.SubCategory, error) {
	if subCategory.ID == "" {
		subCategory.ID = uuid.NewString()
	}
	m.SubCategories[subCategory.ID] = subCategory
	return subCategory, nil
}

// GetByID retrieves a sub-category by ID
func (m *MockSubCategoryRepository) GetByID(id string) (*domain.SubCategory, error) {
	if sc, ok := m.SubCategories[id]; ok {
		return sc, nil
	}
	return nil, domain.ErrSubCategoryNotFound
}

// GetByCategory retrieves the sub-categories of a category
func (m *MockSubCategoryRepository) GetByCategory(categoryID string) ([]*domain.SubCategory, error) {
	var result []*domain.SubCategory
	for _, sc := range m.SubCategories {
		if sc.CategoryID == categoryID {
			result = append(result, sc)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update updates an existing sub-category
func (m *MockSubCategoryRepository) Update(id string, subCategory *domain.SubCategory) (*domain.SubCategory, error) {
	if _, ok := m.SubCategories[id]; !ok {
		return nil, domain.ErrSubCategoryNotFound
	}
	subCategory.ID = id
	m.SubCategories[id] = subCategory
	return subCategory, nil
}

// Delete removes a sub-category
func (m *MockSubCategoryRepository) Delete(id string) error {
	if _, ok := m.SubCategories[id]; !ok {
		return domain.ErrSubCategoryNotFound
	}
	delete(m.SubCategories, id)
	return nil
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[string]*domain.Transaction
	CreateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	UpdateFn     func(id string, transaction *domain.Transaction) (*domain.Transaction, error)
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{Transactions: make(map[string]*domain.Transaction)}
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	m.Transactions[transaction.ID] = transaction
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction)
	}
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// CreateBatch creates several transactions
func (m *MockTransactionRepository) CreateBatch(transactions []*domain.Transaction) error {
	for _, t := range transactions {
		if _, err := m.Create(t); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id string) (*domain.Transaction, error) {
	if t, ok := m.Transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// Update updates an existing transaction
func (m *MockTransactionRepository) Update(id string, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(id, transaction)
	}
	if _, ok := m.Transactions[id]; !ok {
		return nil, domain.ErrTransactionNotFound
	}
	transaction.ID = id
	m.Transactions[id] = transaction
	return transaction, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id string) error {
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// ListByPeriod returns every transaction budgeted into the period
func (m *MockTransactionRepository) ListByPeriod(period domain.Period) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, t := range m.Transactions {
		if t.Year == period.Year && t.Month == period.Month {
			result = append(result, t)
		}
	}
	return result, nil
}

func statusIn(s domain.TransactionStatus, statuses []domain.TransactionStatus) bool {
	for _, candidate := range statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// ListByAccount returns rows where the account is source or destination
func (m *MockTransactionRepository) ListByAccount(accountID string, statuses []domain.TransactionStatus) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, t := range m.Transactions {
		if !statusIn(t.Status, statuses) {
			continue
		}
		if t.AccountID == accountID || (t.DestinationAccountID != nil && *t.DestinationAccountID == accountID) {
			result = append(result, t)
		}
	}
	return result, nil
}

// ListByBucket returns rows assigned to the bucket
func (m *MockTransactionRepository) ListByBucket(bucketID string, statuses []domain.TransactionStatus) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, t := range m.Transactions {
		if !statusIn(t.Status, statuses) {
			continue
		}
		if t.BucketID != nil && *t.BucketID == bucketID {
			result = append(result, t)
		}
	}
	return result, nil
}

// ListRecurring returns the recurring rows of a period
func (m *MockTransactionRepository) ListRecurring(period domain.Period) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, t := range m.Transactions {
		if t.Recurring && t.Year == period.Year && t.Month == period.Month {
			result = append(result, t)
		}
	}
	return result, nil
}

// DeleteRecurring removes the recurring rows of a period
func (m *MockTransactionRepository) DeleteRecurring(period domain.Period) error {
	for id, t := range m.Transactions {
		if t.Recurring && t.Year == period.Year && t.Month == period.Month {
			delete(m.Transactions, id)
		}
	}
	return nil
}

// CompleteAmex marks the period's pending deferred-debit rows completed
func (m *MockTransactionRepository) CompleteAmex(period domain.Period) (int64, error) {
	var count int64
	for _, t := range m.Transactions {
		if t.IsAmex && t.Status == domain.StatusPending && t.Year == period.Year && t.Month == period.Month {
			t.Status = domain.StatusCompleted
			count++
		}
	}
	return count, nil
}

// DistinctPeriods returns every (year, month) present in the ledger, ascending
func (m *MockTransactionRepository) DistinctPeriods() ([]domain.Period, error) {
	seen := make(map[domain.Period]bool)
	for _, t := range m.Transactions {
		seen[t.Period()] = true
	}
	result := make([]domain.Period, 0, len(seen))
	for p := range seen {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return result, nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets  map[string]*domain.Budget
	UpsertFn func(budget *domain.Budget) (*domain.Budget, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{Budgets: make(map[string]*domain.Budget)}
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	m.Budgets[budget.ID] = budget
}

// Upsert inserts or replaces the row keyed by (categoryId, year, month)
func (m *MockBudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(budget)
	}
	for _, b := range m.Budgets {
		if b.CategoryID == budget.CategoryID && b.Year == budget.Year && b.Month == budget.Month {
			b.Amount = budget.Amount
			return b, nil
		}
	}
	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// UpsertBatch upserts several budgets
func (m *MockBudgetRepository) UpsertBatch(budgets []*domain.Budget) error {
	for _, b := range budgets {
		if _, err := m.Upsert(b); err != nil {
			return err
		}
	}
	return nil
}

// GetByCategory retrieves the budget of a category for a period
func (m *MockBudgetRepository) GetByCategory(categoryID string, period domain.Period) (*domain.Budget, error) {
	for _, b := range m.Budgets {
		if b.CategoryID == categoryID && b.Year == period.Year && b.Month == period.Month {
			return b, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// GetByPeriod retrieves all budgets of a period
func (m *MockBudgetRepository) GetByPeriod(period domain.Period) ([]*domain.Budget, error) {
	var result []*domain.Budget
	for _, b := range m.Budgets {
		if b.Year == period.Year && b.Month == period.Month {
			result = append(result, b)
		}
	}
	return result, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(id string) error {
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// MockMonthlyBalanceRepository is a mock implementation of domain.MonthlyBalanceRepository
type MockMonthlyBalanceRepository struct {
	Balances map[domain.Period]*domain.MonthlyBalance
	UpsertFn func(balance *domain.MonthlyBalance) (*domain.MonthlyBalance, error)
}

// NewMockMonthlyBalanceRepository creates a new MockMonthlyBalanceRepository
func NewMockMonthlyBalanceRepository() *MockMonthlyBalanceRepository {
	return &MockMonthlyBalanceRepository{Balances: make(map[domain.Period]*domain.MonthlyBalance)}
}

// AddBalance adds a snapshot to the mock repository (helper for tests)
func (m *MockMonthlyBalanceRepository) AddBalance(balance *domain.MonthlyBalance) {
	if balance.ID == "" {
		balance.ID = uuid.NewString()
	}
	m.Balances[balance.Period()] = balance
}

// Upsert atomically inserts or replaces the snapshot keyed by (year, month)
func (m *MockMonthlyBalanceRepository) Upsert(balance *domain.MonthlyBalance) (*domain.MonthlyBalance, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(balance)
	}
	existing, ok := m.Balances[balance.Period()]
	if ok {
		existing.Forecast = balance.Forecast
		existing.Committed = balance.Committed
		existing.Surplus = balance.Surplus
		return existing, nil
	}
	if balance.ID == "" {
		balance.ID = uuid.NewString()
	}
	m.Balances[balance.Period()] = balance
	return balance, nil
}

// GetByPeriod retrieves the snapshot of a period
func (m *MockMonthlyBalanceRepository) GetByPeriod(period domain.Period) (*domain.MonthlyBalance, error) {
	if b, ok := m.Balances[period]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

// SumSurplusBefore sums surplus over every snapshot strictly before the period
func (m *MockMonthlyBalanceRepository) SumSurplusBefore(period domain.Period) (decimal.Decimal, error) {
	total := decimal.Zero
	for p, b := range m.Balances {
		if p.Before(period) {
			total = total.Add(b.Surplus)
		}
	}
	return total, nil
}

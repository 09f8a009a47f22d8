package service

import (
	"github.com/centime/centime-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BalanceService computes account and bucket balances from the ledger.
// Balances are raw source-perspective signed sums; any display inversion for
// savings-type accounts happens exactly once, in the presentation layer.
type BalanceService struct {
	accountRepo     domain.AccountRepository
	bucketRepo      domain.BucketRepository
	transactionRepo domain.TransactionRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(accountRepo domain.AccountRepository, bucketRepo domain.BucketRepository, transactionRepo domain.TransactionRepository) *BalanceService {
	return &BalanceService{
		accountRepo:     accountRepo,
		bucketRepo:      bucketRepo,
		transactionRepo: transactionRepo,
	}
}

var completedOnly = []domain.TransactionStatus{domain.StatusCompleted}

// AccountBalance returns the Completed balance of an account: the sum of
// SignedEffect over every row touching the account, plus the base amounts of
// its buckets. A row touches the account through at most one of its two
// columns, so nothing is counted twice.
func (s *BalanceService) AccountBalance(accountID string) (decimal.Decimal, error) {
	return s.AccountBalanceWithStatus(accountID, completedOnly)
}

// AccountBalanceWithStatus is AccountBalance restricted to the given statuses.
func (s *BalanceService) AccountBalanceWithStatus(accountID string, statuses []domain.TransactionStatus) (decimal.Decimal, error) {
	if _, err := s.accountRepo.GetByID(accountID); err != nil {
		return decimal.Zero, err
	}

	rows, err := s.transactionRepo.ListByAccount(accountID, statuses)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range rows {
		if effect, ok := t.SignedEffect(accountID); ok {
			total = total.Add(effect)
		}
	}

	buckets, err := s.bucketRepo.GetByAccount(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	for _, b := range buckets {
		total = total.Add(b.BaseAmount)
	}

	return total, nil
}

// BucketBalance returns the bucket's base amount plus the Completed effect of
// its rows on the bucket's parent account. The rows are selected by bucket,
// but the sign still depends on which side of each row the parent account is.
func (s *BalanceService) BucketBalance(bucketID string) (decimal.Decimal, error) {
	bucket, err := s.bucketRepo.GetByID(bucketID)
	if err != nil {
		return decimal.Zero, err
	}

	rows, err := s.transactionRepo.ListByBucket(bucketID, completedOnly)
	if err != nil {
		return decimal.Zero, err
	}

	total := bucket.BaseAmount
	for _, t := range rows {
		if effect, ok := t.SignedEffect(bucket.AccountID); ok {
			total = total.Add(effect)
		}
	}
	return total, nil
}

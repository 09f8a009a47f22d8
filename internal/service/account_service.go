package service

import (
	"strings"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountService handles account and bucket management.
type AccountService struct {
	accountRepo domain.AccountRepository
	bucketRepo  domain.BucketRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository, bucketRepo domain.BucketRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		bucketRepo:  bucketRepo,
	}
}

// AccountInput holds the fields accepted when creating or updating an account.
type AccountInput struct {
	Name            string
	Kind            domain.AccountKind
	Color           *string
	Icon            *string
	SortOrder       int
	LinkedAccountID *string
}

func (s *AccountService) validateAccount(input *AccountInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if !domain.ValidAccountKind(input.Kind) {
		return nil, domain.ErrInvalidAccountKind
	}
	if input.LinkedAccountID != nil {
		if _, err := s.accountRepo.GetByID(*input.LinkedAccountID); err != nil {
			return nil, err
		}
	}
	return &domain.Account{
		Name:            name,
		Kind:            input.Kind,
		Color:           input.Color,
		Icon:            input.Icon,
		SortOrder:       input.SortOrder,
		LinkedAccountID: input.LinkedAccountID,
	}, nil
}

// CreateAccount creates a new account.
func (s *AccountService) CreateAccount(input AccountInput) (*domain.Account, error) {
	account, err := s.validateAccount(&input)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.Create(account)
}

// UpdateAccount updates an existing account.
func (s *AccountService) UpdateAccount(id string, input AccountInput) (*domain.Account, error) {
	if _, err := s.accountRepo.GetByID(id); err != nil {
		return nil, err
	}
	account, err := s.validateAccount(&input)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.Update(id, account)
}

// DeleteAccount removes an account. The persistence layer rejects the delete
// while transactions still reference the account.
func (s *AccountService) DeleteAccount(id string) error {
	if _, err := s.accountRepo.GetByID(id); err != nil {
		return err
	}
	return s.accountRepo.Delete(id)
}

// GetAccount returns one account.
func (s *AccountService) GetAccount(id string) (*domain.Account, error) {
	return s.accountRepo.GetByID(id)
}

// GetAccounts returns all accounts.
func (s *AccountService) GetAccounts() ([]*domain.Account, error) {
	return s.accountRepo.GetAll()
}

// BucketInput holds the fields accepted when creating or updating a bucket.
type BucketInput struct {
	Name       string
	AccountID  string
	Color      *string
	Goal       *decimal.Decimal
	BaseAmount decimal.Decimal
	SortOrder  int
}

func (s *AccountService) validateBucket(input *BucketInput) (*domain.Bucket, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	account, err := s.accountRepo.GetByID(input.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.Kind.IsBucketed() {
		return nil, domain.ErrBucketAccountKind
	}
	if input.Goal != nil && input.Goal.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	return &domain.Bucket{
		Name:       name,
		AccountID:  input.AccountID,
		Color:      input.Color,
		Goal:       input.Goal,
		BaseAmount: input.BaseAmount,
		SortOrder:  input.SortOrder,
	}, nil
}

// CreateBucket creates a bucket inside a savings or investment account.
func (s *AccountService) CreateBucket(input BucketInput) (*domain.Bucket, error) {
	bucket, err := s.validateBucket(&input)
	if err != nil {
		return nil, err
	}
	return s.bucketRepo.Create(bucket)
}

// UpdateBucket updates an existing bucket.
func (s *AccountService) UpdateBucket(id string, input BucketInput) (*domain.Bucket, error) {
	if _, err := s.bucketRepo.GetByID(id); err != nil {
		return nil, err
	}
	bucket, err := s.validateBucket(&input)
	if err != nil {
		return nil, err
	}
	return s.bucketRepo.Update(id, bucket)
}

// DeleteBucket removes a bucket. Transactions keep their rows; the bucket
// reference is cleared by the schema's on-delete rule.
func (s *AccountService) DeleteBucket(id string) error {
	if _, err := s.bucketRepo.GetByID(id); err != nil {
		return err
	}
	return s.bucketRepo.Delete(id)
}

// GetBuckets returns the buckets of an account.
func (s *AccountService) GetBuckets(accountID string) ([]*domain.Bucket, error) {
	if _, err := s.accountRepo.GetByID(accountID); err != nil {
		return nil, err
	}
	return s.bucketRepo.GetByAccount(accountID)
}

package service

import (
	"strings"
	"time"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionService handles ledger mutations. Every write reconciles the
// affected month(s) before the operation is reported successful.
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	categoryRepo    domain.CategoryRepository
	subCategoryRepo domain.SubCategoryRepository
	bucketRepo      domain.BucketRepository
	reconciler      *ReconcileService
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo domain.TransactionRepository,
	accountRepo domain.AccountRepository,
	categoryRepo domain.CategoryRepository,
	subCategoryRepo domain.SubCategoryRepository,
	bucketRepo domain.BucketRepository,
	reconciler *ReconcileService,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		bucketRepo:      bucketRepo,
		reconciler:      reconciler,
	}
}

// TransactionInput holds the fields accepted when creating or updating a
// transaction.
type TransactionInput struct {
	Label                string
	Amount               decimal.Decimal
	Date                 *time.Time
	Month                int
	Year                 int
	Status               domain.TransactionStatus
	Note                 *string
	AccountID            string
	DestinationAccountID *string
	CategoryID           *string
	SubCategoryID        *string
	BucketID             *string
	IsAmex               bool
	Recurring            bool
}

func (s *TransactionService) validate(input *TransactionInput) (*domain.Transaction, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, domain.ErrLabelRequired
	}
	if input.Amount.IsZero() {
		return nil, domain.ErrZeroAmount
	}

	period := domain.Period{Year: input.Year, Month: input.Month}
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}

	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	var note *string
	if input.Note != nil {
		trimmed := strings.TrimSpace(*input.Note)
		if trimmed != "" {
			note = &trimmed
		}
	}
	if status == domain.StatusCancelled && note == nil {
		return nil, domain.ErrNoteRequired
	}

	if input.AccountID == "" {
		return nil, domain.ErrAccountNotFound
	}
	if _, err := s.accountRepo.GetByID(input.AccountID); err != nil {
		return nil, err
	}

	if input.DestinationAccountID != nil {
		if *input.DestinationAccountID == input.AccountID {
			return nil, domain.ErrSameAccountTransfer
		}
		if _, err := s.accountRepo.GetByID(*input.DestinationAccountID); err != nil {
			return nil, err
		}
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*input.CategoryID); err != nil {
			return nil, err
		}
	}
	if input.SubCategoryID != nil {
		if _, err := s.subCategoryRepo.GetByID(*input.SubCategoryID); err != nil {
			return nil, err
		}
	}
	if input.BucketID != nil {
		if _, err := s.bucketRepo.GetByID(*input.BucketID); err != nil {
			return nil, err
		}
	}

	return &domain.Transaction{
		Label:                label,
		Amount:               input.Amount,
		Date:                 input.Date,
		Month:                input.Month,
		Year:                 input.Year,
		Status:               status,
		Note:                 note,
		AccountID:            input.AccountID,
		DestinationAccountID: input.DestinationAccountID,
		CategoryID:           input.CategoryID,
		SubCategoryID:        input.SubCategoryID,
		BucketID:             input.BucketID,
		IsAmex:               input.IsAmex,
		Recurring:            input.Recurring,
	}, nil
}

// Create validates, writes and reconciles the transaction's month.
func (s *TransactionService) Create(input TransactionInput) (*domain.Transaction, error) {
	tx, err := s.validate(&input)
	if err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(tx)
	if err != nil {
		return nil, err
	}
	if _, err := s.reconciler.RecomputeMonth(created.Period()); err != nil {
		return nil, err
	}
	return created, nil
}

// Update validates, writes, and reconciles both the old and the new month
// when the budgeting period moved.
func (s *TransactionService) Update(id string, input TransactionInput) (*domain.Transaction, error) {
	old, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	tx, err := s.validate(&input)
	if err != nil {
		return nil, err
	}
	// Manual ordering is not part of the input; keep the stored position.
	tx.SortOrder = old.SortOrder

	updated, err := s.transactionRepo.Update(id, tx)
	if err != nil {
		return nil, err
	}

	if err := s.reconciler.RecomputePeriods(updated.Period(), old.Period()); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the row and reconciles its month.
func (s *TransactionService) Delete(id string) error {
	tx, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.transactionRepo.Delete(id); err != nil {
		return err
	}
	_, err = s.reconciler.RecomputeMonth(tx.Period())
	return err
}

// GetByID returns a single transaction.
func (s *TransactionService) GetByID(id string) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(id)
}

// ListByPeriod returns every transaction budgeted into the period.
func (s *TransactionService) ListByPeriod(period domain.Period) ([]*domain.Transaction, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}
	return s.transactionRepo.ListByPeriod(period)
}

// Complete marks a transaction Completed and reconciles its month.
func (s *TransactionService) Complete(id string) (*domain.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	tx.Status = domain.StatusCompleted
	updated, err := s.transactionRepo.Update(id, tx)
	if err != nil {
		return nil, err
	}
	if _, err := s.reconciler.RecomputeMonth(updated.Period()); err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel marks a transaction Cancelled. The note is mandatory: a cancelled
// row without an explanation is indistinguishable from a mistake.
func (s *TransactionService) Cancel(id string, note string) (*domain.Transaction, error) {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return nil, domain.ErrNoteRequired
	}

	tx, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	tx.Status = domain.StatusCancelled
	tx.Note = &trimmed
	updated, err := s.transactionRepo.Update(id, tx)
	if err != nil {
		return nil, err
	}
	if _, err := s.reconciler.RecomputeMonth(updated.Period()); err != nil {
		return nil, err
	}
	return updated, nil
}

// CompleteAmex settles every pending deferred-debit row of the month in one
// statement, then reconciles the month once.
func (s *TransactionService) CompleteAmex(period domain.Period) (int64, error) {
	if !period.Valid() {
		return 0, domain.ErrInvalidPeriod
	}

	count, err := s.transactionRepo.CompleteAmex(period)
	if err != nil {
		return 0, err
	}
	if _, err := s.reconciler.RecomputeMonth(period); err != nil {
		return 0, err
	}
	return count, nil
}

// CopyRecurring replicates the previous month's recurring rows into the
// target month as undated Pending rows, replacing the target's existing
// recurring rows, then reconciles the target month once.
func (s *TransactionService) CopyRecurring(period domain.Period) (int, error) {
	if !period.Valid() {
		return 0, domain.ErrInvalidPeriod
	}

	previous, err := s.transactionRepo.ListRecurring(period.Previous())
	if err != nil {
		return 0, err
	}
	if len(previous) == 0 {
		return 0, domain.ErrNothingToCopy
	}

	if err := s.transactionRepo.DeleteRecurring(period); err != nil {
		return 0, err
	}

	copies := make([]*domain.Transaction, len(previous))
	for i, t := range previous {
		copies[i] = &domain.Transaction{
			Label:                t.Label,
			Amount:               t.Amount,
			Date:                 nil,
			Month:                period.Month,
			Year:                 period.Year,
			Status:               domain.StatusPending,
			Note:                 nil,
			AccountID:            t.AccountID,
			DestinationAccountID: t.DestinationAccountID,
			CategoryID:           t.CategoryID,
			SubCategoryID:        t.SubCategoryID,
			BucketID:             t.BucketID,
			IsAmex:               t.IsAmex,
			Recurring:            true,
		}
	}
	if err := s.transactionRepo.CreateBatch(copies); err != nil {
		return 0, err
	}

	if _, err := s.reconciler.RecomputeMonth(period); err != nil {
		return 0, err
	}
	return len(copies), nil
}

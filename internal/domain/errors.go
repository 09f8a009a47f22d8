package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrBucketNotFound      = errors.New("bucket not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("sub-category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrLabelRequired       = errors.New("label is required")
	ErrNameRequired        = errors.New("name is required")
	ErrZeroAmount          = errors.New("amount cannot be zero")
	ErrNegativeAmount      = errors.New("amount cannot be negative")
	ErrInvalidPeriod       = errors.New("invalid year/month")
	ErrInvalidStatus       = errors.New("invalid transaction status")
	ErrInvalidAccountKind  = errors.New("invalid account kind")
	ErrNoteRequired        = errors.New("a note is required to cancel a transaction")
	ErrSameAccountTransfer = errors.New("source and destination accounts must differ")
	ErrBucketAccountKind   = errors.New("buckets require a savings or investment account")
	ErrNothingToCopy       = errors.New("nothing to copy from the previous month")
	ErrNothingToCalibrate  = errors.New("no over-budget category to calibrate")
)

// Year bounds accepted for budgeting periods.
const (
	MinYear = 2000
	MaxYear = 2100
)
